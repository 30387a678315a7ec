// Package apiclient is a small HTTP client for a deployed expense API,
// used by the import CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gastos-bcn-go/internal/importer"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type CategorySummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type BulkCreateResult struct {
	RequestedCount int    `json:"requested_count"`
	CreatedCount   int    `json:"created_count"`
	Message        string `json:"message,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	body, err := c.get(ctx, "/api/categories")
	if err != nil {
		return nil, err
	}

	var categories []CategorySummary
	if err := decodeResult(body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// CreateExpenses bulk-posts the payloads. Partial failures arrive as 207
// Multi-Status with the created count in the body, so the result is
// returned alongside the error for every non-success response.
func (c *Client) CreateExpenses(ctx context.Context, payloads []importer.ExpensePayload) (BulkCreateResult, error) {
	body, err := json.Marshal(map[string]interface{}{"expenses": payloads})
	if err != nil {
		return BulkCreateResult{}, fmt.Errorf("encode expenses: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/expenses/bulk", bytes.NewReader(body))
	if err != nil {
		return BulkCreateResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return BulkCreateResult{}, fmt.Errorf("post expenses: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return BulkCreateResult{}, fmt.Errorf("read response: %w", err)
	}

	var result BulkCreateResult
	if decodeErr := decodeResult(respBody, &result); decodeErr != nil && resp.StatusCode < 300 {
		return BulkCreateResult{}, fmt.Errorf("decode bulk result: %w", decodeErr)
	}

	if resp.StatusCode == http.StatusMultiStatus {
		if result.Message != "" {
			return result, fmt.Errorf("partial import: %s", result.Message)
		}
		return result, fmt.Errorf("partial import: created %d of %d", result.CreatedCount, result.RequestedCount)
	}
	if resp.StatusCode >= 300 {
		return result, decodeError(resp.StatusCode, respBody)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}
