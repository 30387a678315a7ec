// Package statement turns an untyped bank-statement grid into a list of
// debit movements plus a detected ending balance.
package statement

import (
	"fmt"
	"strings"
	"time"

	"gastos-bcn-go/internal/importer/cell"
)

const (
	// headerScanLimit caps how deep the header autodetection looks.
	headerScanLimit = 50

	// balanceHeaderRow and balanceHeaderCol locate the "saldo a fecha"
	// summary cell the bank prints above the movement table.
	balanceHeaderRow = 3
	balanceHeaderCol = 5
)

var (
	dateTokens        = []string{"fecha operacion", "fecha valor"}
	descriptionTokens = []string{"concepto", "descripcion", "detalle"}
	amountTokens      = []string{"importe", "cargo"}
	balanceTokens     = []string{"saldo"}
)

// Movement is one debit row extracted from the statement. Amount is the
// positive magnitude of the original negative value.
type Movement struct {
	Date    *time.Time `json:"date"`
	Concept string     `json:"concept"`
	Amount  float64    `json:"amount"`
	Balance *float64   `json:"balance,omitempty"`
}

type Result struct {
	Movements     []Movement `json:"movements"`
	EndingBalance *float64   `json:"ending_balance"`
	HeaderRow     int        `json:"header_row"`
	Headers       []string   `json:"headers"`
	Diagnostic    string     `json:"diagnostic,omitempty"`
}

// Import scans the grid for the header row, then reads every row below
// it as a candidate movement. Only debits are admitted: the amount
// column mixes charges with credits, and credits are not expenses.
// The function is pure; re-running it on the same grid yields the same
// result.
func Import(grid [][]cell.Cell) Result {
	headerRow, columns := findHeader(grid)
	if headerRow < 0 {
		return Result{
			Movements:  []Movement{},
			HeaderRow:  -1,
			Diagnostic: noHeaderDiagnostic(grid),
		}
	}

	result := Result{
		Movements: []Movement{},
		HeaderRow: headerRow,
		Headers:   rowStrings(grid[headerRow]),
	}

	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]
		if allBlank(row) {
			continue
		}

		amount := cellAt(row, columns.amount).NegativeAmount()
		if amount == 0 {
			// Annotation rows and credits carry no expense.
			continue
		}

		movement := Movement{
			Date:    cellAt(row, columns.date).Date(),
			Concept: strings.TrimSpace(cellAt(row, columns.description).String()),
			Amount:  -amount,
		}
		if columns.balance >= 0 {
			balanceCell := cellAt(row, columns.balance)
			if !balanceCell.IsBlank() {
				balance := balanceCell.Amount()
				movement.Balance = &balance
			}
		}
		result.Movements = append(result.Movements, movement)
	}

	result.EndingBalance = detectEndingBalance(grid, result.Movements)
	return result
}

type columnIndexes struct {
	date        int
	description int
	amount      int
	balance     int
}

// findHeader scans the first headerScanLimit rows for the first row
// whose cells collectively name a date column, a description column and
// an amount column. The date tokens accept "fecha operacion", "fecha
// valor" or a cell that is exactly "fecha".
func findHeader(grid [][]cell.Cell) (int, columnIndexes) {
	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		normalized := make([]string, len(grid[i]))
		for j, c := range grid[i] {
			normalized[j] = normalizeHeader(c.String())
		}

		columns := columnIndexes{
			date:        findColumn(normalized, dateTokens, "fecha"),
			description: findColumn(normalized, descriptionTokens, ""),
			amount:      findColumn(normalized, amountTokens, ""),
			balance:     findColumn(normalized, balanceTokens, ""),
		}
		if columns.date >= 0 && columns.description >= 0 && columns.amount >= 0 {
			return i, columns
		}
	}
	return -1, columnIndexes{}
}

// findColumn resolves the leftmost column whose normalized header
// contains one of the tokens, or equals exact when given.
func findColumn(headers []string, tokens []string, exact string) int {
	for j, header := range headers {
		if header == "" {
			continue
		}
		if exact != "" && header == exact {
			return j
		}
		for _, token := range tokens {
			if strings.Contains(header, token) {
				return j
			}
		}
	}
	return -1
}

// normalizeHeader lowercases, strips diacritics and collapses internal
// whitespace so "Fecha  Operación" matches "fecha operacion".
func normalizeHeader(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch r {
		case 'á', 'à', 'ä', 'â':
			b.WriteRune('a')
		case 'é', 'è', 'ë', 'ê':
			b.WriteRune('e')
		case 'í', 'ì', 'ï', 'î':
			b.WriteRune('i')
		case 'ó', 'ò', 'ö', 'ô':
			b.WriteRune('o')
		case 'ú', 'ù', 'ü', 'û':
			b.WriteRune('u')
		case 'ñ':
			b.WriteRune('n')
		case 'ç':
			b.WriteRune('c')
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// detectEndingBalance prefers the summary cell the bank prints above
// the table when it carries a currency marker; otherwise it falls back
// to the balance of the last movement that has one.
func detectEndingBalance(grid [][]cell.Cell, movements []Movement) *float64 {
	if len(grid) > balanceHeaderRow {
		c := cellAt(grid[balanceHeaderRow], balanceHeaderCol)
		if c.Kind == cell.Text && strings.Contains(strings.ToUpper(c.Str), "EUR") {
			balance := cell.ParseNumber(c.Str)
			if balance != 0 {
				return &balance
			}
		}
	}

	for i := len(movements) - 1; i >= 0; i-- {
		if movements[i].Balance != nil {
			balance := *movements[i].Balance
			return &balance
		}
	}
	return nil
}

func noHeaderDiagnostic(grid [][]cell.Cell) string {
	if len(grid) == 0 {
		return "empty sheet"
	}

	found := make([]string, 0, len(grid[0]))
	for _, c := range grid[0] {
		found = append(found, fmt.Sprintf("%q", c.String()))
	}
	return fmt.Sprintf("no header row found; first row contains: %s", strings.Join(found, ", "))
}

func cellAt(row []cell.Cell, index int) cell.Cell {
	if index < 0 || index >= len(row) {
		return cell.Cell{}
	}
	return row[index]
}

func allBlank(row []cell.Cell) bool {
	for _, c := range row {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

func rowStrings(row []cell.Cell) []string {
	result := make([]string, len(row))
	for j, c := range row {
		result[j] = c.String()
	}
	return result
}
