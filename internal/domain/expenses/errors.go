package expenses

import "errors"

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInactive     = errors.New("category does not exist or is not active")
	ErrCategoryNameTaken    = errors.New("category name already exists")
	ErrCategoryInUse        = errors.New("category has active expenses")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrEmptyDescription     = errors.New("description is required")
	ErrInvalidPerson        = errors.New("person must be 'Ana' or 'Valen'")
	ErrEmptyCategoryName    = errors.New("category name is required")
	ErrInvalidCategoryColor = errors.New("color must be in #RRGGBB format")
)
