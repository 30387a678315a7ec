package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultBarePayload(t *testing.T) {
	var categories []CategorySummary
	err := decodeResult([]byte(`[{"id":1,"name":"Supermercado","color":"#FF5733"}]`), &categories)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Supermercado", categories[0].Name)
}

func TestDecodeResultLowercaseWrapper(t *testing.T) {
	var categories []CategorySummary
	err := decodeResult([]byte(`{"result":[{"id":2,"name":"Ocio","color":"#33FF57"}]}`), &categories)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, uint(2), categories[0].ID)
}

func TestDecodeResultUppercaseWrapper(t *testing.T) {
	var result BulkCreateResult
	err := decodeResult([]byte(`{"Result":{"requested_count":3,"created_count":2}}`), &result)
	require.NoError(t, err)
	assert.Equal(t, 3, result.RequestedCount)
	assert.Equal(t, 2, result.CreatedCount)
}

func TestDecodeErrorMessageCasings(t *testing.T) {
	err := decodeError(409, []byte(`{"message":"category name already exists"}`))
	assert.Contains(t, err.Error(), "category name already exists")
	assert.Contains(t, err.Error(), "409")

	err = decodeError(400, []byte(`{"Message":"amount must be greater than zero"}`))
	assert.Contains(t, err.Error(), "amount must be greater than zero")

	err = decodeError(404, []byte(`{"error":{"code":"not_found","message":"expense not found"}}`))
	assert.Contains(t, err.Error(), "expense not found")

	err = decodeError(500, []byte(`not json`))
	assert.Contains(t, err.Error(), "500")
}
