package expenses

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"
)

type fakeExpensesRepo struct {
	expenses     map[uint]*Expense
	categories   map[uint]*Category
	nextExpense  uint
	nextCategory uint
}

func newFakeExpensesRepo() *fakeExpensesRepo {
	return &fakeExpensesRepo{
		expenses:     make(map[uint]*Expense),
		categories:   make(map[uint]*Category),
		nextExpense:  1,
		nextCategory: 1,
	}
}

func (r *fakeExpensesRepo) addCategory(name string, active bool) *Category {
	category := &Category{ID: r.nextCategory, Name: name, Color: "#FF5733", Active: active}
	r.categories[category.ID] = category
	r.nextCategory++
	return category
}

func (r *fakeExpensesRepo) ListExpenses(ctx context.Context, filter ListFilter) ([]ExpenseWithCategory, int64, error) {
	items := make([]ExpenseWithCategory, 0)
	for _, expense := range r.expenses {
		if !expense.Active {
			continue
		}
		if filter.Person != "" && expense.Person != filter.Person {
			continue
		}
		if filter.CategoryID != nil && expense.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.DateFrom != nil && expense.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && expense.Date.After(*filter.DateTo) {
			continue
		}
		if filter.AmountMin != nil && expense.Amount < *filter.AmountMin {
			continue
		}
		if filter.AmountMax != nil && expense.Amount > *filter.AmountMax {
			continue
		}
		if filter.Description != "" && !strings.Contains(expense.Description, filter.Description) {
			continue
		}
		items = append(items, ExpenseWithCategory{Expense: *expense, Category: *r.categories[expense.CategoryID]})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	total := int64(len(items))
	offset := (filter.Page - 1) * filter.PageSize
	if offset >= len(items) {
		return []ExpenseWithCategory{}, total, nil
	}
	items = items[offset:]
	if filter.PageSize < len(items) {
		items = items[:filter.PageSize]
	}

	return items, total, nil
}

func (r *fakeExpensesRepo) GetExpenseByID(ctx context.Context, expenseID uint) (*ExpenseWithCategory, error) {
	expense, ok := r.expenses[expenseID]
	if !ok || !expense.Active {
		return nil, ErrExpenseNotFound
	}
	return &ExpenseWithCategory{Expense: *expense, Category: *r.categories[expense.CategoryID]}, nil
}

func (r *fakeExpensesRepo) CreateExpense(ctx context.Context, expense *Expense) error {
	expense.ID = r.nextExpense
	r.nextExpense++
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *fakeExpensesRepo) UpdateExpense(ctx context.Context, expense *Expense) error {
	if _, ok := r.expenses[expense.ID]; !ok {
		return ErrExpenseNotFound
	}
	stored := *expense
	r.expenses[expense.ID] = &stored
	return nil
}

func (r *fakeExpensesRepo) SoftDeleteExpense(ctx context.Context, expenseID uint) (bool, error) {
	expense, ok := r.expenses[expenseID]
	if !ok || !expense.Active {
		return false, nil
	}
	expense.Active = false
	return true, nil
}

func (r *fakeExpensesRepo) CountActiveExpensesByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	for _, expense := range r.expenses {
		if expense.Active && expense.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeExpensesRepo) ListActiveCategories(ctx context.Context) ([]Category, error) {
	result := make([]Category, 0)
	for _, category := range r.categories {
		if category.Active {
			result = append(result, *category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeExpensesRepo) GetCategoryByID(ctx context.Context, categoryID uint) (*Category, error) {
	category, ok := r.categories[categoryID]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeExpensesRepo) CreateCategory(ctx context.Context, category *Category) error {
	category.ID = r.nextCategory
	r.nextCategory++
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeExpensesRepo) UpdateCategory(ctx context.Context, category *Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return ErrCategoryNotFound
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeExpensesRepo) CountCategoriesByName(ctx context.Context, name string, excludeID uint) (int64, error) {
	var count int64
	for _, category := range r.categories {
		if excludeID != 0 && category.ID == excludeID {
			continue
		}
		if strings.EqualFold(category.Name, name) {
			count++
		}
	}
	return count, nil
}

func TestCreateExpenseSuccess(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	date := time.Date(2025, 9, 16, 10, 12, 0, 0, time.UTC)
	result, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      12.505,
		Description: "  Compra semanal  ",
		CategoryID:  category.ID,
		Person:      PersonValen,
		Date:        &date,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Amount != 12.51 {
		t.Fatalf("expected amount rounded to 12.51, got %v", result.Amount)
	}
	if result.Description != "Compra semanal" {
		t.Fatalf("expected description trimmed, got %q", result.Description)
	}
	if !result.Date.Equal(date) {
		t.Fatalf("expected date %v, got %v", date, result.Date)
	}
	if repo.expenses[result.ID] == nil {
		t.Fatalf("expense not stored")
	}
}

func TestCreateExpenseDefaultsDateToNow(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	result, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      5,
		Description: "Cafe",
		CategoryID:  category.ID,
		Person:      PersonAna,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Date.Equal(now) {
		t.Fatalf("expected date defaulted to %v, got %v", now, result.Date)
	}
}

func TestCreateExpenseInvalidAmount(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	for _, amount := range []float64{0, -3.5, 0.001} {
		_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
			Amount:      amount,
			Description: "Cafe",
			CategoryID:  category.ID,
			Person:      PersonAna,
		})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestCreateExpenseInvalidPerson(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      5,
		Description: "Cafe",
		CategoryID:  category.ID,
		Person:      "Pedro",
	})
	if !errors.Is(err, ErrInvalidPerson) {
		t.Fatalf("expected ErrInvalidPerson, got %v", err)
	}
}

func TestCreateExpenseInactiveCategory(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", false)
	svc := NewService(repo)

	_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      5,
		Description: "Cafe",
		CategoryID:  category.ID,
		Person:      PersonAna,
	})
	if !errors.Is(err, ErrCategoryInactive) {
		t.Fatalf("expected ErrCategoryInactive, got %v", err)
	}

	_, err = svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      5,
		Description: "Cafe",
		CategoryID:  999,
		Person:      PersonAna,
	})
	if !errors.Is(err, ErrCategoryInactive) {
		t.Fatalf("expected ErrCategoryInactive for missing category, got %v", err)
	}
}

func TestCreateExpensesPartialFailure(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	inputs := []CreateExpenseInput{
		{Amount: 1.5, Description: "Pa", CategoryID: category.ID, Person: PersonAna},
		{Amount: 2.5, Description: "Llet", CategoryID: category.ID, Person: PersonAna},
		{Amount: -1, Description: "Mal", CategoryID: category.ID, Person: PersonAna},
		{Amount: 3, Description: "Ous", CategoryID: category.ID, Person: PersonAna},
	}

	created, err := svc.CreateExpenses(context.Background(), inputs)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created before failure, got %d", created)
	}
	if len(repo.expenses) != 2 {
		t.Fatalf("expected 2 expenses stored, got %d", len(repo.expenses))
	}
}

func TestDeleteExpenseIsSoft(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	result, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      5,
		Description: "Cafe",
		CategoryID:  category.ID,
		Person:      PersonAna,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeleteExpense(context.Background(), result.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.expenses[result.ID].Active {
		t.Fatalf("expected expense deactivated, not removed")
	}
	if _, err := svc.GetExpense(context.Background(), result.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound after delete, got %v", err)
	}
	if err := svc.DeleteExpense(context.Background(), result.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound on second delete, got %v", err)
	}
}

func TestListExpensesPagination(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	for i := 0; i < 45; i++ {
		_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
			Amount:      1,
			Description: "Cafe",
			CategoryID:  category.ID,
			Person:      PersonAna,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	page, err := svc.ListExpenses(context.Background(), ListFilter{Page: 2, PageSize: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.TotalElements != 45 {
		t.Fatalf("expected 45 total, got %d", page.TotalElements)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
	if !page.HasPrevious || !page.HasNext {
		t.Fatalf("expected middle page to have both neighbours, got %+v", page)
	}
	if len(page.Items) != 20 {
		t.Fatalf("expected 20 items, got %d", len(page.Items))
	}

	// Out-of-range values fall back to the defaults.
	page, err = svc.ListExpenses(context.Background(), ListFilter{Page: -3, PageSize: 1000})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if page.PageNumber != 1 || page.PageSize != 100 {
		t.Fatalf("expected page 1 size 100, got page %d size %d", page.PageNumber, page.PageSize)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	repo := newFakeExpensesRepo()
	repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name:  "SUPERMERCADO",
		Color: "#00FF00",
	})
	if !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCreateCategoryInvalidColor(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo)

	for _, color := range []string{"", "#12345", "#GGGGGG", "FF5733"} {
		_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
			Name:  "Ocio",
			Color: color,
		})
		if !errors.Is(err, ErrInvalidCategoryColor) {
			t.Fatalf("color %q: expected ErrInvalidCategoryColor, got %v", color, err)
		}
	}
}

func TestUpdateCategoryKeepsOwnName(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	result, err := svc.UpdateCategory(context.Background(), UpdateCategoryInput{
		ID:     category.ID,
		Name:   "Supermercado",
		Color:  "#123ABC",
		Active: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Color != "#123ABC" {
		t.Fatalf("expected color updated, got %q", result.Color)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	_, err := svc.CreateExpense(context.Background(), CreateExpenseInput{
		Amount:      5,
		Description: "Cafe",
		CategoryID:  category.ID,
		Person:      PersonAna,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeleteCategory(context.Background(), category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if !repo.categories[category.ID].Active {
		t.Fatalf("category should remain active")
	}
}

func TestDeleteCategoryDeactivates(t *testing.T) {
	repo := newFakeExpensesRepo()
	category := repo.addCategory("Supermercado", true)
	svc := NewService(repo)

	if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.categories[category.ID].Active {
		t.Fatalf("expected category deactivated, not removed")
	}
	if _, err := svc.GetCategory(context.Background(), category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}
