package handler

import (
	"net/http"
)

func (h *Handlers) ExpensesStatistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Statistics.Summary(r.Context())
	if err != nil {
		h.log.InternalError("statistics.summary failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) CategoryStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	stats, err := h.Statistics.Category(r.Context(), id)
	if err != nil {
		if writeDomainError(w, err) {
			h.log.BusinessError("statistics.category failed", err, "category_id", id)
			return
		}
		h.log.InternalError("statistics.category failed", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) MostUsedCategories(w http.ResponseWriter, r *http.Request) {
	top, err := parseIntParam(r.URL.Query().Get("top"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_top", "top must be an integer")
		return
	}

	usage, err := h.Statistics.MostUsed(r.Context(), top)
	if err != nil {
		h.log.InternalError("statistics.most_used failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, usage)
}
