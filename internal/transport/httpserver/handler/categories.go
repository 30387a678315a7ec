package handler

import (
	"net/http"
	"time"

	expensesdomain "gastos-bcn-go/internal/domain/expenses"
)

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	Active      *bool   `json:"active"`
}

type categoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCategoryResponse(category expensesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		Active:      category.Active,
		CreatedAt:   category.CreatedAt,
	}
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.log.InternalError("categories.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	category, err := h.Expenses.GetCategory(r.Context(), id)
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("categories.get failed", err, "category_id", id)
			return
		}
		h.log.InternalError("categories.get failed", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Expenses.CreateCategory(r.Context(), expensesdomain.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("categories.create failed", err, "name", req.Name)
			return
		}
		h.log.InternalError("categories.create failed", err, "name", req.Name)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	updated, err := h.Expenses.UpdateCategory(r.Context(), expensesdomain.UpdateCategoryInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Active:      active,
	})
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("categories.update failed", err, "category_id", id)
			return
		}
		h.log.InternalError("categories.update failed", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	if err := h.Expenses.DeleteCategory(r.Context(), id); err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("categories.delete failed", err, "category_id", id)
			return
		}
		h.log.InternalError("categories.delete failed", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
