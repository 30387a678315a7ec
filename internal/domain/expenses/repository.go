package expenses

import "context"

type Repository interface {
	ListExpenses(ctx context.Context, filter ListFilter) ([]ExpenseWithCategory, int64, error)
	GetExpenseByID(ctx context.Context, expenseID uint) (*ExpenseWithCategory, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	UpdateExpense(ctx context.Context, expense *Expense) error
	SoftDeleteExpense(ctx context.Context, expenseID uint) (bool, error)
	CountActiveExpensesByCategory(ctx context.Context, categoryID uint) (int64, error)

	ListActiveCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, categoryID uint) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	CountCategoriesByName(ctx context.Context, name string, excludeID uint) (int64, error)
}
