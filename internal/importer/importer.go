// Package importer normalizes parsed statement movements and receipt
// products into expense creation payloads.
package importer

import (
	"fmt"
	"time"

	"gastos-bcn-go/internal/importer/receipt"
	"gastos-bcn-go/internal/importer/statement"
)

// ExpensePayload is one expense ready for bulk creation.
type ExpensePayload struct {
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	CategoryID  uint       `json:"category_id"`
	Person      string     `json:"person"`
	Date        *time.Time `json:"date,omitempty"`
}

// ExpandProduct turns one receipt product into quantity-many payloads,
// splitting the line amount evenly. The per-unit amount is the raw
// float quotient, so for amounts that do not divide evenly the payload
// total is only approximately the line amount.
func ExpandProduct(product receipt.Product, categoryID uint, person string, date *time.Time) []ExpensePayload {
	if product.Quantity <= 1 {
		return []ExpensePayload{{
			Amount:      product.Amount,
			Description: product.Description,
			CategoryID:  categoryID,
			Person:      person,
			Date:        date,
		}}
	}

	unitAmount := product.Amount / float64(product.Quantity)
	payloads := make([]ExpensePayload, 0, product.Quantity)
	for i := 0; i < product.Quantity; i++ {
		payloads = append(payloads, ExpensePayload{
			Amount:      unitAmount,
			Description: fmt.Sprintf("%s (unidad %d de %d)", product.Description, i+1, product.Quantity),
			CategoryID:  categoryID,
			Person:      person,
			Date:        date,
		})
	}
	return payloads
}

// ExpandTicket flattens a parsed ticket into payloads, dating every
// unit with the ticket timestamp.
func ExpandTicket(ticket receipt.Ticket, categoryID uint, person string) []ExpensePayload {
	payloads := make([]ExpensePayload, 0, len(ticket.Products))
	for _, product := range ticket.Products {
		payloads = append(payloads, ExpandProduct(product, categoryID, person, ticket.Timestamp)...)
	}
	return payloads
}

// ExpandMovements maps statement debits one to one onto payloads.
func ExpandMovements(movements []statement.Movement, categoryID uint, person string) []ExpensePayload {
	payloads := make([]ExpensePayload, 0, len(movements))
	for _, movement := range movements {
		payloads = append(payloads, ExpensePayload{
			Amount:      movement.Amount,
			Description: movement.Concept,
			CategoryID:  categoryID,
			Person:      person,
			Date:        movement.Date,
		})
	}
	return payloads
}
