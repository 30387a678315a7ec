// Package receipt recovers product lines from supermarket ticket text.
// The patterns target the Mercadona ticket layout, where quantity,
// description and prices are printed with no separating whitespace.
package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gastos-bcn-go/internal/importer/cell"
)

type Product struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

type Ticket struct {
	Timestamp *time.Time `json:"timestamp"`
	Products  []Product  `json:"products"`
	Total     float64    `json:"total"`
}

var (
	dateTimeRe = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})\s+(\d{2}):(\d{2})`)
	totalRe    = regexp.MustCompile(`TOTAL\s*\(€\)\s*(\d+[,.]?\d*)`)

	// One line: quantity, uppercase description, price glued together.
	simpleRe = regexp.MustCompile(`^(\d+)([A-ZÀ-ÖØ-Þ\s]+?)(\d+[,.]?\d*)$`)
	// Two lines: quantity and description alone, then weight/unit-price/amount.
	weightedHeadRe   = regexp.MustCompile(`^(\d+)([A-ZÀ-ÖØ-Þ\s]+)$`)
	weightedDetailRe = regexp.MustCompile(`(\d+[,.]?\d*)\s*kg\s*(\d+[,.]?\d*)\s*€/kg\s*(\d+[,.]?\d*)`)
	// One line with two trailing numbers: unit price then line amount.
	quantityPricedRe = regexp.MustCompile(`^(\d+)([A-ZÀ-ÖØ-Þ\s\d]+?)(\d+[,.]?\d*)(\d+[,.]?\d*)$`)
)

// Parse walks the ticket lines top to bottom. The first DD/MM/YYYY HH:MM
// match sets the timestamp and the first TOTAL (€) match sets the grand
// total; product patterns are tried per line in priority order, a match
// consuming one or two lines. Unmatched lines are boilerplate and are
// skipped.
func Parse(text string) Ticket {
	lines := splitLines(text)

	ticket := Ticket{Products: []Product{}}
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if ticket.Timestamp == nil {
			if m := dateTimeRe.FindStringSubmatch(line); m != nil {
				ticket.Timestamp = buildTimestamp(m)
				continue
			}
		}

		if ticket.Total == 0 {
			if m := totalRe.FindStringSubmatch(line); m != nil {
				ticket.Total = cell.ParseNumber(m[1])
				continue
			}
		}

		if product, consumed := matchProduct(lines, i); consumed > 0 {
			ticket.Products = append(ticket.Products, product)
			i += consumed - 1
		}
	}
	return ticket
}

// matchProduct tries the three product shapes against lines[i] and
// returns how many lines the winning shape consumed, zero when none
// matched.
func matchProduct(lines []string, i int) (Product, int) {
	line := lines[i]

	if m := simpleRe.FindStringSubmatch(line); m != nil {
		quantity, _ := strconv.Atoi(m[1])
		price := cell.ParseNumber(m[3])
		return Product{
			Description: strings.TrimSpace(m[2]),
			Quantity:    quantity,
			UnitPrice:   price,
			Amount:      price * float64(quantity),
		}, 1
	}

	if m := weightedHeadRe.FindStringSubmatch(line); m != nil && i+1 < len(lines) {
		if d := weightedDetailRe.FindStringSubmatch(lines[i+1]); d != nil {
			quantity, _ := strconv.Atoi(m[1])
			weight := cell.ParseNumber(d[1])
			unitPrice := cell.ParseNumber(d[2])
			// The printed line amount already carries the rounding the
			// shop applied; do not recompute weight times unit price.
			amount := cell.ParseNumber(d[3])
			return Product{
				Description: fmt.Sprintf("%s (%skg)", strings.TrimSpace(m[2]), strconv.FormatFloat(weight, 'f', -1, 64)),
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				Amount:      amount,
			}, 2
		}
	}

	if m := quantityPricedRe.FindStringSubmatch(line); m != nil {
		quantity, _ := strconv.Atoi(m[1])
		return Product{
			Description: strings.TrimSpace(m[2]),
			Quantity:    quantity,
			UnitPrice:   cell.ParseNumber(m[3]),
			Amount:      cell.ParseNumber(m[4]),
		}, 1
	}

	return Product{}, 0
}

func buildTimestamp(m []string) *time.Time {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	return &t
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
