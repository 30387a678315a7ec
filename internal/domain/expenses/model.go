package expenses

import "time"

// Person is one of the two fixed participants an expense can be attributed to.
type Person string

const (
	PersonAna   Person = "Ana"
	PersonValen Person = "Valen"
)

func (p Person) Valid() bool {
	return p == PersonAna || p == PersonValen
}

type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description *string   `gorm:"size:500"`
	Color       string    `gorm:"size:7;not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

type Expense struct {
	ID          uint      `gorm:"primaryKey"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"`
	Description string    `gorm:"size:500;not null"`
	CategoryID  uint      `gorm:"index;not null"`
	Person      Person    `gorm:"size:10;not null"`
	Date        time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	Active      bool      `gorm:"not null;default:true"`
}

type ExpenseWithCategory struct {
	Expense
	Category Category
}

// ListFilter holds the query filters for listing expenses. Ranges are
// inclusive on both ends; Description is a case-sensitive substring match.
type ListFilter struct {
	Person      Person
	CategoryID  *uint
	DateFrom    *time.Time
	DateTo      *time.Time
	AmountMin   *float64
	AmountMax   *float64
	Description string
	Page        int
	PageSize    int
}

type Page struct {
	Items         []ExpenseWithCategory
	TotalElements int64
	PageNumber    int
	PageSize      int
	TotalPages    int
	HasPrevious   bool
	HasNext       bool
}

type CreateExpenseInput struct {
	Amount      float64
	Description string
	CategoryID  uint
	Person      Person
	Date        *time.Time
}

type UpdateExpenseInput struct {
	ID          uint
	Amount      float64
	Description string
	CategoryID  uint
	Person      Person
	Date        time.Time
	Active      bool
}

type CreateCategoryInput struct {
	Name        string
	Description *string
	Color       string
}

type UpdateCategoryInput struct {
	ID          uint
	Name        string
	Description *string
	Color       string
	Active      bool
}
