package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	expensesdomain "gastos-bcn-go/internal/domain/expenses"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func isDomainError(err error) bool {
	for _, sentinel := range []error{
		expensesdomain.ErrInvalidAmount,
		expensesdomain.ErrEmptyDescription,
		expensesdomain.ErrInvalidPerson,
		expensesdomain.ErrEmptyCategoryName,
		expensesdomain.ErrInvalidCategoryColor,
		expensesdomain.ErrCategoryInactive,
		expensesdomain.ErrExpenseNotFound,
		expensesdomain.ErrCategoryNotFound,
		expensesdomain.ErrCategoryNameTaken,
		expensesdomain.ErrCategoryInUse,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// writeDomainError maps the expense domain sentinels onto HTTP statuses
// and reports whether the error was recognized.
func writeDomainError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, expensesdomain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, expensesdomain.ErrEmptyDescription):
		writeError(w, http.StatusBadRequest, "invalid_description", err.Error())
	case errors.Is(err, expensesdomain.ErrInvalidPerson):
		writeError(w, http.StatusBadRequest, "invalid_person", err.Error())
	case errors.Is(err, expensesdomain.ErrEmptyCategoryName):
		writeError(w, http.StatusBadRequest, "invalid_category_name", err.Error())
	case errors.Is(err, expensesdomain.ErrInvalidCategoryColor):
		writeError(w, http.StatusBadRequest, "invalid_category_color", err.Error())
	case errors.Is(err, expensesdomain.ErrCategoryInactive):
		writeError(w, http.StatusBadRequest, "category_inactive", err.Error())
	case errors.Is(err, expensesdomain.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, "expense_not_found", err.Error())
	case errors.Is(err, expensesdomain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
	case errors.Is(err, expensesdomain.ErrCategoryNameTaken):
		writeError(w, http.StatusConflict, "category_name_taken", err.Error())
	case errors.Is(err, expensesdomain.ErrCategoryInUse):
		writeError(w, http.StatusConflict, "category_in_use", err.Error())
	default:
		return false
	}
	return true
}
