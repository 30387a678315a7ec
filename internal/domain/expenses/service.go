package expenses

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	maxNameLen        = 100
	maxDescriptionLen = 500
)

var colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListExpenses(ctx context.Context, filter ListFilter) (Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	items, total, err := s.repo.ListExpenses(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return Page{
		Items:         items,
		TotalElements: total,
		PageNumber:    filter.Page,
		PageSize:      filter.PageSize,
		TotalPages:    totalPages,
		HasPrevious:   filter.Page > 1,
		HasNext:       filter.Page < totalPages,
	}, nil
}

func (s *Service) GetExpense(ctx context.Context, expenseID uint) (*ExpenseWithCategory, error) {
	return s.repo.GetExpenseByID(ctx, expenseID)
}

func (s *Service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*ExpenseWithCategory, error) {
	amount, err := validateAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" || len([]rune(description)) > maxDescriptionLen {
		return nil, ErrEmptyDescription
	}
	if !input.Person.Valid() {
		return nil, ErrInvalidPerson
	}

	category, err := s.repo.GetCategoryByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrCategoryInactive
		}
		return nil, err
	}
	if !category.Active {
		return nil, ErrCategoryInactive
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := Expense{
		Amount:      amount,
		Description: description,
		CategoryID:  input.CategoryID,
		Person:      input.Person,
		Date:        date,
		CreatedAt:   s.now(),
		Active:      true,
	}

	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}

	return &ExpenseWithCategory{Expense: expense, Category: *category}, nil
}

// CreateExpenses creates the given expenses sequentially and returns how many
// were created before the first failure. Records created before a failure are
// kept; the caller reconciles partial imports manually.
func (s *Service) CreateExpenses(ctx context.Context, inputs []CreateExpenseInput) (int, error) {
	created := 0
	for _, input := range inputs {
		if _, err := s.CreateExpense(ctx, input); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Service) UpdateExpense(ctx context.Context, input UpdateExpenseInput) (*ExpenseWithCategory, error) {
	amount, err := validateAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" || len([]rune(description)) > maxDescriptionLen {
		return nil, ErrEmptyDescription
	}
	if !input.Person.Valid() {
		return nil, ErrInvalidPerson
	}

	existing, err := s.repo.GetExpenseByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategoryByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrCategoryInactive
		}
		return nil, err
	}
	if !category.Active {
		return nil, ErrCategoryInactive
	}

	expense := existing.Expense
	expense.Amount = amount
	expense.Description = description
	expense.CategoryID = input.CategoryID
	expense.Person = input.Person
	expense.Date = input.Date
	expense.Active = input.Active

	if err := s.repo.UpdateExpense(ctx, &expense); err != nil {
		return nil, err
	}

	return &ExpenseWithCategory{Expense: expense, Category: *category}, nil
}

func (s *Service) DeleteExpense(ctx context.Context, expenseID uint) error {
	deleted, err := s.repo.SoftDeleteExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListActiveCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, categoryID uint) (*Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !category.Active {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if !colorRegex.MatchString(input.Color) {
		return nil, ErrInvalidCategoryColor
	}

	// Uniqueness is checked against every category, including soft-deleted
	// ones, so a deactivated name cannot be silently reused.
	count, err := s.repo.CountCategoriesByName(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category := Category{
		Name:        name,
		Description: trimOptional(input.Description),
		Color:       input.Color,
		Active:      true,
		CreatedAt:   s.now(),
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if !colorRegex.MatchString(input.Color) {
		return nil, ErrInvalidCategoryColor
	}

	category, err := s.repo.GetCategoryByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountCategoriesByName(ctx, name, category.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category.Name = name
	category.Description = trimOptional(input.Description)
	category.Color = input.Color
	category.Active = input.Active

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID uint) error {
	category, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}

	inUse, err := s.repo.CountActiveExpensesByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	category.Active = false
	return s.repo.UpdateCategory(ctx, category)
}

// validateAmount rejects non-positive amounts and normalizes the value to
// two-decimal currency precision.
func validateAmount(amount float64) (float64, error) {
	rounded := decimal.NewFromFloat(amount).Round(2)
	if !rounded.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return rounded.InexactFloat64(), nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLen {
		return "", ErrEmptyCategoryName
	}
	return name, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
