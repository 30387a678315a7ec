package statistics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"gastos-bcn-go/internal/domain/expenses"
)

const defaultMostUsedCount = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary aggregates the whole active expense set: overall totals plus
// per-category and per-person breakdowns with their share of the total.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	rows, err := s.repo.ListActiveExpenses(ctx)
	if err != nil {
		return Summary{}, err
	}

	total := sumAmounts(rows)
	summary := Summary{
		TotalAmount: roundMoney(total),
		Count:       int64(len(rows)),
		Average:     averageOf(total, int64(len(rows))),
		ByCategory:  buildCategoryBreakdowns(rows, total),
		ByPerson:    buildPersonBreakdowns(rows, total),
	}
	return summary, nil
}

// Category aggregates a single category against the whole active set so the
// percentage still relates to the global total.
func (s *Service) Category(ctx context.Context, categoryID uint) (CategoryStatistics, error) {
	category, err := s.repo.GetActiveCategory(ctx, categoryID)
	if err != nil {
		return CategoryStatistics{}, err
	}

	rows, err := s.repo.ListActiveExpenses(ctx)
	if err != nil {
		return CategoryStatistics{}, err
	}

	total := sumAmounts(rows)

	categoryRows := make([]ExpenseRow, 0)
	for _, row := range rows {
		if row.CategoryID == categoryID {
			categoryRows = append(categoryRows, row)
		}
	}

	categoryTotal := sumAmounts(categoryRows)
	return CategoryStatistics{
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		CategoryColor:  category.Color,
		TotalAmount:    roundMoney(categoryTotal),
		Count:          int64(len(categoryRows)),
		Average:        averageOf(categoryTotal, int64(len(categoryRows))),
		PercentOfTotal: percentOf(categoryTotal, total),
		ByPerson:       buildPersonBreakdowns(categoryRows, categoryTotal),
	}, nil
}

// MostUsed ranks categories by how many active expenses reference them.
func (s *Service) MostUsed(ctx context.Context, top int) ([]CategoryUsage, error) {
	if top <= 0 {
		top = defaultMostUsedCount
	}

	rows, err := s.repo.ListActiveExpenses(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint]*CategoryUsage)
	totals := make(map[uint]decimal.Decimal)
	for _, row := range rows {
		usage, ok := byCategory[row.CategoryID]
		if !ok {
			usage = &CategoryUsage{
				CategoryID:    row.CategoryID,
				CategoryName:  row.CategoryName,
				CategoryColor: row.CategoryColor,
			}
			byCategory[row.CategoryID] = usage
		}
		usage.Count++
		totals[row.CategoryID] = totals[row.CategoryID].Add(decimal.NewFromFloat(row.Amount))
	}

	result := make([]CategoryUsage, 0, len(byCategory))
	for id, usage := range byCategory {
		usage.TotalAmount = roundMoney(totals[id])
		result = append(result, *usage)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if result[i].TotalAmount != result[j].TotalAmount {
			return result[i].TotalAmount > result[j].TotalAmount
		}
		return result[i].CategoryID < result[j].CategoryID
	})

	if len(result) > top {
		result = result[:top]
	}
	return result, nil
}

func buildCategoryBreakdowns(rows []ExpenseRow, total decimal.Decimal) []CategoryBreakdown {
	byCategory := make(map[uint]*CategoryBreakdown)
	totals := make(map[uint]decimal.Decimal)
	for _, row := range rows {
		breakdown, ok := byCategory[row.CategoryID]
		if !ok {
			breakdown = &CategoryBreakdown{
				CategoryID:    row.CategoryID,
				CategoryName:  row.CategoryName,
				CategoryColor: row.CategoryColor,
			}
			byCategory[row.CategoryID] = breakdown
		}
		breakdown.Count++
		totals[row.CategoryID] = totals[row.CategoryID].Add(decimal.NewFromFloat(row.Amount))
	}

	result := make([]CategoryBreakdown, 0, len(byCategory))
	for id, breakdown := range byCategory {
		breakdown.TotalAmount = roundMoney(totals[id])
		breakdown.PercentOfTotal = percentOf(totals[id], total)
		result = append(result, *breakdown)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalAmount != result[j].TotalAmount {
			return result[i].TotalAmount > result[j].TotalAmount
		}
		return result[i].CategoryID < result[j].CategoryID
	})
	return result
}

func buildPersonBreakdowns(rows []ExpenseRow, total decimal.Decimal) []PersonBreakdown {
	byPerson := make(map[expenses.Person]*PersonBreakdown)
	totals := make(map[expenses.Person]decimal.Decimal)
	for _, row := range rows {
		breakdown, ok := byPerson[row.Person]
		if !ok {
			breakdown = &PersonBreakdown{Person: row.Person}
			byPerson[row.Person] = breakdown
		}
		breakdown.Count++
		totals[row.Person] = totals[row.Person].Add(decimal.NewFromFloat(row.Amount))

		date := row.Date
		if breakdown.FirstExpense == nil || date.Before(*breakdown.FirstExpense) {
			first := date
			breakdown.FirstExpense = &first
		}
		if breakdown.LastExpense == nil || date.After(*breakdown.LastExpense) {
			last := date
			breakdown.LastExpense = &last
		}
	}

	result := make([]PersonBreakdown, 0, len(byPerson))
	for person, breakdown := range byPerson {
		breakdown.TotalAmount = roundMoney(totals[person])
		breakdown.Average = averageOf(totals[person], breakdown.Count)
		breakdown.PercentOfTotal = percentOf(totals[person], total)
		result = append(result, *breakdown)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalAmount != result[j].TotalAmount {
			return result[i].TotalAmount > result[j].TotalAmount
		}
		return result[i].Person < result[j].Person
	})
	return result
}

func sumAmounts(rows []ExpenseRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(decimal.NewFromFloat(row.Amount))
	}
	return total
}

func roundMoney(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}

func averageOf(total decimal.Decimal, count int64) float64 {
	if count == 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(count)).Round(2).InexactFloat64()
}

func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}
