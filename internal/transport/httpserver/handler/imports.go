package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	expensesdomain "gastos-bcn-go/internal/domain/expenses"
	"gastos-bcn-go/internal/importer"
	"gastos-bcn-go/internal/importer/cell"
	"gastos-bcn-go/internal/importer/receipt"
	"gastos-bcn-go/internal/importer/statement"
)

type statementImportRequest struct {
	Grid       [][]cell.Cell `json:"grid"`
	CategoryID uint          `json:"category_id"`
	Person     string        `json:"person"`
}

type statementImportResponse struct {
	MovementCount  int      `json:"movement_count"`
	RequestedCount int      `json:"requested_count"`
	CreatedCount   int      `json:"created_count"`
	EndingBalance  *float64 `json:"ending_balance"`
	Diagnostic     string   `json:"diagnostic,omitempty"`
	Message        string   `json:"message,omitempty"`
}

type receiptImportResponse struct {
	ProductCount   int     `json:"product_count"`
	RequestedCount int     `json:"requested_count"`
	CreatedCount   int     `json:"created_count"`
	TicketTotal    float64 `json:"ticket_total"`
	Message        string  `json:"message,omitempty"`
}

// ImportStatement ingests a cell grid posted as JSON, typically relayed
// from a spreadsheet already parsed client-side.
func (h *Handlers) ImportStatement(w http.ResponseWriter, r *http.Request) {
	var req statementImportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	h.importStatementGrid(w, r, req.Grid, req.CategoryID, req.Person)
}

// ImportStatementFile ingests a multipart upload of a legacy .xls
// workbook exported by the bank.
func (h *Handlers) ImportStatementFile(w http.ResponseWriter, r *http.Request) {
	content, categoryID, person, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	grid, err := statement.ReadXLS(bytes.NewReader(content))
	if err != nil {
		h.log.BusinessError("imports.statement_file: unreadable workbook", err)
		writeError(w, http.StatusBadRequest, "invalid_file", "could not read xls file")
		return
	}

	h.importStatementGrid(w, r, grid, categoryID, person)
}

func (h *Handlers) importStatementGrid(w http.ResponseWriter, r *http.Request, grid [][]cell.Cell, categoryID uint, person string) {
	result := statement.Import(grid)

	// Keep the balance snapshot even when the movement set is empty or the
	// bulk create later fails partway; a failed save does not abort the import.
	if result.EndingBalance != nil {
		if _, err := h.Saldo.Record(r.Context(), *result.EndingBalance); err != nil {
			h.log.InternalError("imports.statement: balance snapshot failed", err)
		}
	}

	payloads := importer.ExpandMovements(result.Movements, categoryID, person)
	response := statementImportResponse{
		MovementCount:  len(result.Movements),
		RequestedCount: len(payloads),
		EndingBalance:  result.EndingBalance,
		Diagnostic:     result.Diagnostic,
	}

	if len(payloads) == 0 {
		writeJSON(w, http.StatusOK, response)
		return
	}

	created, err := h.createPayloads(r, payloads)
	response.CreatedCount = created
	if err != nil {
		if !bulkFailureMessage(&response.Message, created, len(payloads), err) {
			h.log.InternalError("imports.statement: bulk create failed", err, "created", created)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		h.log.BusinessError("imports.statement: partial import", err, "created", created, "requested", len(payloads))
		writeJSON(w, http.StatusMultiStatus, response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

// ImportReceipt accepts either a multipart PDF upload or a JSON body
// with the raw ticket text.
func (h *Handlers) ImportReceipt(w http.ResponseWriter, r *http.Request) {
	var text string
	var categoryID uint
	var person string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		content, id, p, ok := h.readUpload(w, r)
		if !ok {
			return
		}
		extracted, err := receipt.ExtractPDFText(content)
		if err != nil {
			h.log.BusinessError("imports.receipt: unreadable pdf", err)
			writeError(w, http.StatusBadRequest, "invalid_file", "could not extract text from pdf")
			return
		}
		text, categoryID, person = extracted, id, p
	} else {
		var req struct {
			Text       string `json:"text"`
			CategoryID uint   `json:"category_id"`
			Person     string `json:"person"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
		text, categoryID, person = req.Text, req.CategoryID, req.Person
	}

	ticket := receipt.Parse(text)
	payloads := importer.ExpandTicket(ticket, categoryID, person)
	response := receiptImportResponse{
		ProductCount:   len(ticket.Products),
		RequestedCount: len(payloads),
		TicketTotal:    ticket.Total,
	}

	if len(payloads) == 0 {
		response.Message = "no products recognized in receipt"
		writeJSON(w, http.StatusOK, response)
		return
	}

	created, err := h.createPayloads(r, payloads)
	response.CreatedCount = created
	if err != nil {
		if !bulkFailureMessage(&response.Message, created, len(payloads), err) {
			h.log.InternalError("imports.receipt: bulk create failed", err, "created", created)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		h.log.BusinessError("imports.receipt: partial import", err, "created", created, "requested", len(payloads))
		writeJSON(w, http.StatusMultiStatus, response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (h *Handlers) createPayloads(r *http.Request, payloads []importer.ExpensePayload) (int, error) {
	inputs := make([]expensesdomain.CreateExpenseInput, 0, len(payloads))
	for _, payload := range payloads {
		inputs = append(inputs, expensesdomain.CreateExpenseInput{
			Amount:      payload.Amount,
			Description: payload.Description,
			CategoryID:  payload.CategoryID,
			Person:      expensesdomain.Person(payload.Person),
			Date:        payload.Date,
		})
	}
	return h.Expenses.CreateExpenses(r.Context(), inputs)
}

// readUpload pulls the file plus category_id and person fields out of a
// multipart form, bounded by the configured upload limit.
func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, uint, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_upload", "could not parse multipart form")
		return nil, 0, "", false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", "file field is required")
		return nil, 0, "", false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_upload", "could not read uploaded file")
		return nil, 0, "", false
	}

	categoryID, err := strconv.ParseUint(r.FormValue("category_id"), 10, 64)
	if err != nil || categoryID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_category_id", "category_id field is required")
		return nil, 0, "", false
	}

	person := strings.TrimSpace(r.FormValue("person"))
	if !expensesdomain.Person(person).Valid() {
		writeError(w, http.StatusBadRequest, "invalid_person", "person must be 'Ana' or 'Valen'")
		return nil, 0, "", false
	}

	return content, uint(categoryID), person, true
}

// bulkFailureMessage fills the partial-import note when the failure is
// a recognized domain error; infrastructure failures return false.
func bulkFailureMessage(message *string, created, requested int, err error) bool {
	if !isDomainError(err) {
		return false
	}
	*message = fmt.Sprintf("stopped after %d of %d: %s", created, requested, err.Error())
	return true
}
