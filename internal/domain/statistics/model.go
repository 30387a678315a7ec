package statistics

import (
	"time"

	"gastos-bcn-go/internal/domain/expenses"
)

// ExpenseRow is the flattened join of an active expense and its category,
// the only input the aggregations need.
type ExpenseRow struct {
	ID            uint
	Amount        float64
	Person        expenses.Person
	Date          time.Time
	CategoryID    uint
	CategoryName  string
	CategoryColor string
}

type CategoryBreakdown struct {
	CategoryID     uint    `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	CategoryColor  string  `json:"category_color"`
	TotalAmount    float64 `json:"total_amount"`
	Count          int64   `json:"count"`
	PercentOfTotal float64 `json:"percent_of_total"`
}

type PersonBreakdown struct {
	Person         expenses.Person `json:"person"`
	TotalAmount    float64         `json:"total_amount"`
	Count          int64           `json:"count"`
	Average        float64         `json:"average"`
	PercentOfTotal float64         `json:"percent_of_total"`
	FirstExpense   *time.Time      `json:"first_expense"`
	LastExpense    *time.Time      `json:"last_expense"`
}

type Summary struct {
	TotalAmount float64             `json:"total_amount"`
	Count       int64               `json:"count"`
	Average     float64             `json:"average"`
	ByCategory  []CategoryBreakdown `json:"by_category"`
	ByPerson    []PersonBreakdown   `json:"by_person"`
}

type CategoryStatistics struct {
	CategoryID     uint              `json:"category_id"`
	CategoryName   string            `json:"category_name"`
	CategoryColor  string            `json:"category_color"`
	TotalAmount    float64           `json:"total_amount"`
	Count          int64             `json:"count"`
	Average        float64           `json:"average"`
	PercentOfTotal float64           `json:"percent_of_total"`
	ByPerson       []PersonBreakdown `json:"by_person"`
}

type CategoryUsage struct {
	CategoryID    uint    `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	CategoryColor string  `json:"category_color"`
	Count         int64   `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
}
