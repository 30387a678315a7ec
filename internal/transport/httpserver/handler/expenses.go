package handler

import (
	"fmt"
	"net/http"
	"time"

	expensesdomain "gastos-bcn-go/internal/domain/expenses"
)

type expenseRequest struct {
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	CategoryID  uint       `json:"category_id"`
	Person      string     `json:"person"`
	Date        *time.Time `json:"date"`
	Active      *bool      `json:"active"`
}

type bulkCreateRequest struct {
	Expenses []expenseRequest `json:"expenses"`
}

type bulkCreateResponse struct {
	RequestedCount int    `json:"requested_count"`
	CreatedCount   int    `json:"created_count"`
	Message        string `json:"message,omitempty"`
}

type expenseResponse struct {
	ID          uint             `json:"id"`
	Amount      float64          `json:"amount"`
	Description string           `json:"description"`
	Person      string           `json:"person"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
	Category    categoryResponse `json:"category"`
}

type expensePageResponse struct {
	Items         []expenseResponse `json:"items"`
	TotalElements int64             `json:"total_elements"`
	PageNumber    int               `json:"page_number"`
	PageSize      int               `json:"page_size"`
	TotalPages    int               `json:"total_pages"`
	HasPrevious   bool              `json:"has_previous"`
	HasNext       bool              `json:"has_next"`
}

func toExpenseResponse(expense expensesdomain.ExpenseWithCategory) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Description: expense.Description,
		Person:      string(expense.Person),
		Date:        expense.Date,
		CreatedAt:   expense.CreatedAt,
		Category:    toCategoryResponse(expense.Category),
	}
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := expensesdomain.ListFilter{
		Person:      expensesdomain.Person(query.Get("person")),
		Description: query.Get("description"),
	}
	if filter.Person != "" && !filter.Person.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_person", "person must be 'Ana' or 'Valen'")
		return
	}

	var err error
	if filter.CategoryID, err = parseUintParam(query.Get("category_id")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be a positive integer")
		return
	}
	if filter.DateFrom, err = parseDateParam(query.Get("date_from")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date_from", "date_from must be YYYY-MM-DD")
		return
	}
	if filter.DateTo, err = parseDateParam(query.Get("date_to")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date_to", "date_to must be YYYY-MM-DD")
		return
	}
	if filter.AmountMin, err = parseFloatParam(query.Get("amount_min")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount_min", "amount_min must be a number")
		return
	}
	if filter.AmountMax, err = parseFloatParam(query.Get("amount_max")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount_max", "amount_max must be a number")
		return
	}
	if filter.Page, err = parseIntParam(query.Get("page"), 1); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
		return
	}
	if filter.PageSize, err = parseIntParam(query.Get("page_size"), 0); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_page_size", "page_size must be an integer")
		return
	}

	page, err := h.Expenses.ListExpenses(r.Context(), filter)
	if err != nil {
		h.log.InternalError("expenses.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]expenseResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toExpenseResponse(item))
	}
	writeJSON(w, http.StatusOK, expensePageResponse{
		Items:         items,
		TotalElements: page.TotalElements,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalPages:    page.TotalPages,
		HasPrevious:   page.HasPrevious,
		HasNext:       page.HasNext,
	})
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	expense, err := h.Expenses.GetExpense(r.Context(), id)
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("expenses.get failed", err, "expense_id", id)
			return
		}
		h.log.InternalError("expenses.get failed", err, "expense_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Expenses.CreateExpense(r.Context(), expensesdomain.CreateExpenseInput{
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Person:      expensesdomain.Person(req.Person),
		Date:        req.Date,
	})
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("expenses.create failed", err)
			return
		}
		h.log.InternalError("expenses.create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(*created))
}

func (h *Handlers) BulkCreateExpenses(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if len(req.Expenses) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "expenses list is empty")
		return
	}

	inputs := make([]expensesdomain.CreateExpenseInput, 0, len(req.Expenses))
	for _, item := range req.Expenses {
		inputs = append(inputs, expensesdomain.CreateExpenseInput{
			Amount:      item.Amount,
			Description: item.Description,
			CategoryID:  item.CategoryID,
			Person:      expensesdomain.Person(item.Person),
			Date:        item.Date,
		})
	}

	created, err := h.Expenses.CreateExpenses(r.Context(), inputs)
	response := bulkCreateResponse{
		RequestedCount: len(inputs),
		CreatedCount:   created,
	}
	if err != nil {
		// Records created before the failure are kept; the count lets
		// the caller reconcile.
		response.Message = fmt.Sprintf("stopped after %d of %d: %s", created, len(inputs), err.Error())
		h.log.BusinessError("expenses.bulk_create partial failure", err, "created", created, "requested", len(inputs))
		writeJSON(w, http.StatusMultiStatus, response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Date == nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "date is required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	updated, err := h.Expenses.UpdateExpense(r.Context(), expensesdomain.UpdateExpenseInput{
		ID:          id,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Person:      expensesdomain.Person(req.Person),
		Date:        *req.Date,
		Active:      active,
	})
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("expenses.update failed", err, "expense_id", id)
			return
		}
		h.log.InternalError("expenses.update failed", err, "expense_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(*updated))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), id); err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("expenses.delete failed", err, "expense_id", id)
			return
		}
		h.log.InternalError("expenses.delete failed", err, "expense_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
