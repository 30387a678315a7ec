package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos-bcn-go/internal/importer"
)

func bulkServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/expenses/bulk", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return New(server.URL)
}

func TestCreateExpensesSuccess(t *testing.T) {
	client := bulkServer(t, http.StatusCreated, `{"requested_count":2,"created_count":2}`)

	result, err := client.CreateExpenses(context.Background(), []importer.ExpensePayload{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)
}

func TestCreateExpensesPartialFailure(t *testing.T) {
	client := bulkServer(t, http.StatusMultiStatus,
		`{"requested_count":3,"created_count":2,"message":"stopped after 2 of 3: amount must be greater than zero"}`)

	result, err := client.CreateExpenses(context.Background(), []importer.ExpensePayload{{}, {}, {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 2 of 3")
	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 3, result.RequestedCount)
}

func TestCreateExpensesPartialFailureWithoutMessage(t *testing.T) {
	client := bulkServer(t, http.StatusMultiStatus, `{"requested_count":3,"created_count":1}`)

	result, err := client.CreateExpenses(context.Background(), []importer.ExpensePayload{{}, {}, {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created 1 of 3")
	assert.Equal(t, 1, result.CreatedCount)
}

func TestCreateExpensesRejected(t *testing.T) {
	client := bulkServer(t, http.StatusBadRequest, `{"error":{"code":"invalid_person","message":"person must be 'Ana' or 'Valen'"}}`)

	_, err := client.CreateExpenses(context.Background(), []importer.ExpensePayload{{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person must be 'Ana' or 'Valen'")
}
