//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gorm.io/gorm"

	"gastos-bcn-go/internal/config"
	"gastos-bcn-go/internal/db"
	expensesdomain "gastos-bcn-go/internal/domain/expenses"
	saldodomain "gastos-bcn-go/internal/domain/saldo"
	statisticsdomain "gastos-bcn-go/internal/domain/statistics"
	expensesrepo "gastos-bcn-go/internal/repository/postgres/expenses"
	saldorepo "gastos-bcn-go/internal/repository/postgres/saldo"
	statisticsrepo "gastos-bcn-go/internal/repository/postgres/statistics"
	"gastos-bcn-go/internal/transport/httpserver"
	"gastos-bcn-go/internal/transport/httpserver/handler"
	"gastos-bcn-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.NewFromEnv()
	cfg := config.Config{
		HTTPPort:       "0",
		MaxUploadBytes: 10 << 20,
		DB:             config.DBConfig{DSN: dsn},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	expensesService := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn))
	statisticsService := statisticsdomain.NewService(statisticsrepo.NewPostgres(dbConn))
	saldoService := saldodomain.NewService(saldorepo.NewPostgres(dbConn))
	handlers := handler.New(expensesService, statisticsService, saldoService, log, cfg.MaxUploadBytes)

	server := httptest.NewServer(httpserver.NewRouter(cfg, handlers))
	t.Cleanup(server.Close)

	return &testEnv{server: server, db: dbConn}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.Exec("TRUNCATE expenses, categories, balances RESTART IDENTITY CASCADE").Error
}

func (env *testEnv) post(t *testing.T, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(env.server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (env *testEnv) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(env.server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return body
}

func TestExpenseLifecycle(t *testing.T) {
	env := setupE2E(t)

	resp, body := env.post(t, "/api/categories", map[string]interface{}{
		"name":  "Supermercado",
		"color": "#FF5733",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: status %d body %s", resp.StatusCode, body)
	}
	var category struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(body, &category); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	resp, body = env.post(t, "/api/categories", map[string]interface{}{
		"name":  "SUPERMERCADO",
		"color": "#00FF00",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate category: status %d body %s", resp.StatusCode, body)
	}

	resp, body = env.post(t, "/api/expenses", map[string]interface{}{
		"amount":      12.5,
		"description": "Compra semanal",
		"category_id": category.ID,
		"person":      "Valen",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense: status %d body %s", resp.StatusCode, body)
	}

	resp, body = env.get(t, "/api/expenses?person=Valen")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list expenses: status %d body %s", resp.StatusCode, body)
	}
	var page struct {
		TotalElements int64 `json:"total_elements"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected 1 expense, got %d", page.TotalElements)
	}

	resp, body = env.get(t, "/api/expenses/statistics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("statistics: status %d body %s", resp.StatusCode, body)
	}
	var summary struct {
		TotalAmount float64 `json:"total_amount"`
		Count       int64   `json:"count"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalAmount != 12.5 || summary.Count != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	// Category deletion is blocked while the expense references it.
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/categories/%d", env.server.URL, category.ID), nil)
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete category: %v", err)
	}
	readBody(t, resp)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete category in use: status %d", resp.StatusCode)
	}
}

func TestStatementImportEndpoint(t *testing.T) {
	env := setupE2E(t)

	resp, body := env.post(t, "/api/categories", map[string]interface{}{
		"name":  "Banco",
		"color": "#123456",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: status %d body %s", resp.StatusCode, body)
	}
	var category struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(body, &category); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	grid := [][]interface{}{
		{"Consulta de movimientos"},
		{"Fecha", "Concepto", "Importe", "Saldo"},
		{"16/09/2025", "COMPRA MERCADONA", "-45,30", "1.154,70"},
		{"17/09/2025", "NOMINA", "1.200,00", "2.354,70"},
	}
	resp, body = env.post(t, "/api/imports/statement", map[string]interface{}{
		"grid":        grid,
		"category_id": category.ID,
		"person":      "Ana",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import statement: status %d body %s", resp.StatusCode, body)
	}

	var result struct {
		MovementCount int `json:"movement_count"`
		CreatedCount  int `json:"created_count"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.MovementCount != 1 || result.CreatedCount != 1 {
		t.Fatalf("expected one debit imported, got %+v", result)
	}

	// The detected ending balance is persisted alongside the expenses.
	resp, body = env.get(t, "/api/saldo")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get saldo: status %d body %s", resp.StatusCode, body)
	}
	var balance struct {
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(body, &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance.Amount != 1154.70 {
		t.Fatalf("expected balance 1154.70, got %v", balance.Amount)
	}
}
