package expenses

import (
	"context"
	"errors"

	"gorm.io/gorm"

	expensesdomain "gastos-bcn-go/internal/domain/expenses"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, filter expensesdomain.ListFilter) ([]expensesdomain.ExpenseWithCategory, int64, error) {
	query := r.db.WithContext(ctx).Model(&expensesdomain.Expense{}).Where("active = ?", true)
	if filter.Person != "" {
		query = query.Where("person = ?", filter.Person)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if filter.AmountMin != nil {
		query = query.Where("amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		query = query.Where("amount <= ?", *filter.AmountMax)
	}
	if filter.Description != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Description+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, id desc")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	var items []expensesdomain.Expense
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	joined, err := r.attachCategories(ctx, items)
	if err != nil {
		return nil, 0, err
	}
	return joined, total, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, expenseID uint) (*expensesdomain.ExpenseWithCategory, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", expenseID, true).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}

	joined, err := r.attachCategories(ctx, []expensesdomain.Expense{expense})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"amount":      expense.Amount,
			"description": expense.Description,
			"category_id": expense.CategoryID,
			"person":      expense.Person,
			"date":        expense.Date,
			"active":      expense.Active,
		}).Error
}

func (r *PostgresRepository) SoftDeleteExpense(ctx context.Context, expenseID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ? AND active = ?", expenseID, true).
		Update("active", false)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountActiveExpensesByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("category_id = ? AND active = ?", categoryID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListActiveCategories(ctx context.Context) ([]expensesdomain.Category, error) {
	var categories []expensesdomain.Category
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name asc").
		Find(&categories).Error
	return categories, err
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, categoryID uint) (*expensesdomain.Category, error) {
	var category expensesdomain.Category
	if err := r.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *expensesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"color":       category.Color,
			"active":      category.Active,
		}).Error
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, name string, excludeID uint) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&expensesdomain.Category{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PostgresRepository) attachCategories(ctx context.Context, items []expensesdomain.Expense) ([]expensesdomain.ExpenseWithCategory, error) {
	joined := make([]expensesdomain.ExpenseWithCategory, 0, len(items))
	if len(items) == 0 {
		return joined, nil
	}

	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.CategoryID]; ok {
			continue
		}
		seen[item.CategoryID] = struct{}{}
		ids = append(ids, item.CategoryID)
	}

	var categories []expensesdomain.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]expensesdomain.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	for _, item := range items {
		joined = append(joined, expensesdomain.ExpenseWithCategory{
			Expense:  item,
			Category: byID[item.CategoryID],
		})
	}
	return joined, nil
}
