package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos-bcn-go/internal/importer/receipt"
	"gastos-bcn-go/internal/importer/statement"
)

func TestExpandProductSplitsEvenAmount(t *testing.T) {
	product := receipt.Product{Description: "LLET SENCERA", Quantity: 3, UnitPrice: 3, Amount: 9.00}

	payloads := ExpandProduct(product, 7, "Valen", nil)

	require.Len(t, payloads, 3)
	for _, payload := range payloads {
		assert.Equal(t, 3.00, payload.Amount)
		assert.Equal(t, uint(7), payload.CategoryID)
		assert.Equal(t, "Valen", payload.Person)
		assert.Contains(t, payload.Description, "LLET SENCERA")
	}
	assert.Equal(t, "LLET SENCERA (unidad 1 de 3)", payloads[0].Description)
	assert.Equal(t, "LLET SENCERA (unidad 3 de 3)", payloads[2].Description)
}

func TestExpandProductUnevenAmountKeepsRawQuotient(t *testing.T) {
	product := receipt.Product{Description: "FORMATGE", Quantity: 3, Amount: 10.00}

	payloads := ExpandProduct(product, 1, "Ana", nil)

	require.Len(t, payloads, 3)
	for _, payload := range payloads {
		assert.InDelta(t, 10.00/3.0, payload.Amount, 1e-12)
	}
	// The payload total only approximates the original line amount.
	sum := payloads[0].Amount + payloads[1].Amount + payloads[2].Amount
	assert.InDelta(t, 10.00, sum, 1e-9)
}

func TestExpandProductSingleUnit(t *testing.T) {
	product := receipt.Product{Description: "TALL PIT FI", Quantity: 1, UnitPrice: 3.39, Amount: 3.39}

	payloads := ExpandProduct(product, 2, "Ana", nil)

	require.Len(t, payloads, 1)
	assert.Equal(t, "TALL PIT FI", payloads[0].Description, "single unit keeps the bare description")
	assert.Equal(t, 3.39, payloads[0].Amount)
}

func TestExpandTicketUsesTimestamp(t *testing.T) {
	when := time.Date(2025, 9, 16, 10, 12, 0, 0, time.UTC)
	ticket := receipt.Ticket{
		Timestamp: &when,
		Products: []receipt.Product{
			{Description: "TALL PIT FI", Quantity: 1, Amount: 3.39},
			{Description: "RUCA 50 G", Quantity: 2, Amount: 1.66},
		},
	}

	payloads := ExpandTicket(ticket, 4, "Valen")

	require.Len(t, payloads, 3)
	for _, payload := range payloads {
		require.NotNil(t, payload.Date)
		assert.True(t, payload.Date.Equal(when))
	}
}

func TestExpandMovements(t *testing.T) {
	when := time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)
	movements := []statement.Movement{
		{Date: &when, Concept: "COMPRA MERCADONA", Amount: 45.30},
		{Concept: "RECIBO LUZ", Amount: 60.12},
	}

	payloads := ExpandMovements(movements, 9, "Ana")

	require.Len(t, payloads, 2)
	assert.Equal(t, 45.30, payloads[0].Amount)
	assert.Equal(t, "COMPRA MERCADONA", payloads[0].Description)
	require.NotNil(t, payloads[0].Date)
	assert.Nil(t, payloads[1].Date, "unparseable statement dates stay empty")
}
