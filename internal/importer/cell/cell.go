// Package cell models spreadsheet cells as a tagged union and parses
// Spanish-locale numbers and dates out of them.
package cell

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	Empty Kind = iota
	Number
	Text
	DateValue
)

// excelEpoch is the spreadsheet date-serial origin. Serial 1 is
// 1900-01-01, with the off-by-two shift that accounts for the fictitious
// 1900-02-29 the format inherited.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Cell is one untyped spreadsheet cell. The zero value is an empty cell.
type Cell struct {
	Kind Kind
	Num  float64
	Str  string
	Time time.Time
}

func NewNumber(value float64) Cell { return Cell{Kind: Number, Num: value} }
func NewText(value string) Cell    { return Cell{Kind: Text, Str: value} }
func NewDate(value time.Time) Cell { return Cell{Kind: DateValue, Time: value} }

// UnmarshalJSON accepts the untyped grids the import endpoint receives:
// null, a JSON number, or a JSON string. Dates never arrive as native
// values over JSON; serials and DD/MM/YYYY strings cover them.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = Cell{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = NewText(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = NewNumber(n)
	return nil
}

func (c Cell) IsBlank() bool {
	switch c.Kind {
	case Empty:
		return true
	case Text:
		return strings.TrimSpace(c.Str) == ""
	default:
		return false
	}
}

// Amount parses the cell as a monetary value. Numbers pass through,
// text goes through ParseNumber, anything else is zero.
func (c Cell) Amount() float64 {
	switch c.Kind {
	case Number:
		return c.Num
	case Text:
		return ParseNumber(c.Str)
	default:
		return 0
	}
}

// NegativeAmount parses the cell as a monetary value but keeps only
// negative results; non-negative values collapse to zero. Bank statement
// amount columns mix debits with credits and annotations, and only the
// debits matter for expense import.
func (c Cell) NegativeAmount() float64 {
	value := c.Amount()
	if value >= 0 {
		return 0
	}
	return value
}

// Date interprets the cell as a calendar date. Native dates pass
// through, numbers are treated as spreadsheet serials, and strings are
// read positionally as day/month/year split on "/" or "-". Returns nil
// when the cell cannot be read as a date; unlike Amount there is no
// zero fallback.
func (c Cell) Date() *time.Time {
	switch c.Kind {
	case DateValue:
		t := c.Time
		return &t
	case Number:
		return serialToDate(c.Num)
	case Text:
		return parseDateString(c.Str)
	default:
		return nil
	}
}

// String renders the cell the way it would look in a spreadsheet UI,
// used for header matching and diagnostics.
func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case Text:
		return c.Str
	case DateValue:
		return c.Time.Format("02/01/2006")
	default:
		return ""
	}
}

// ParseNumber converts a Spanish-locale numeric string to a float:
// "1.234,56" is 1234.56. Whitespace and a trailing EUR marker are
// stripped, thousands dots removed, the decimal comma becomes a point
// and the Unicode minus sign becomes an ASCII hyphen. Unparseable input
// yields zero so sparse annotation cells do not abort a whole sheet.
func ParseNumber(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.TrimSuffix(strings.ToUpper(cleaned), "EUR")
	cleaned = strings.ReplaceAll(cleaned, "€", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.ReplaceAll(cleaned, "−", "-")
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

func serialToDate(serial float64) *time.Time {
	if serial <= 0 {
		return nil
	}
	days := int(serial)
	t := excelEpoch.AddDate(0, 0, days)
	return &t
}

func parseDateString(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return nil
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}
