package statistics

import (
	"context"

	"gastos-bcn-go/internal/domain/expenses"
)

type Repository interface {
	// ListActiveExpenses returns every active expense joined with its
	// category, regardless of the category's own active flag.
	ListActiveExpenses(ctx context.Context) ([]ExpenseRow, error)
	// GetActiveCategory returns expenses.ErrCategoryNotFound when the
	// category is missing or soft-deleted.
	GetActiveCategory(ctx context.Context, categoryID uint) (*expenses.Category, error)
}
