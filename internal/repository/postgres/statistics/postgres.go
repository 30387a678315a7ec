package statistics

import (
	"context"
	"errors"

	"gorm.io/gorm"

	expensesdomain "gastos-bcn-go/internal/domain/expenses"
	statisticsdomain "gastos-bcn-go/internal/domain/statistics"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActiveExpenses(ctx context.Context) ([]statisticsdomain.ExpenseRow, error) {
	var rows []statisticsdomain.ExpenseRow
	err := r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Select("expenses.id, expenses.amount, expenses.person, expenses.date, expenses.category_id, categories.name AS category_name, categories.color AS category_color").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.active = ?", true).
		Order("expenses.date asc, expenses.id asc").
		Scan(&rows).Error
	return rows, err
}

func (r *PostgresRepository) GetActiveCategory(ctx context.Context, categoryID uint) (*expensesdomain.Category, error) {
	var category expensesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", categoryID, true).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}
