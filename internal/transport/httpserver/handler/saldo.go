package handler

import (
	"errors"
	"net/http"
	"time"

	saldodomain "gastos-bcn-go/internal/domain/saldo"
)

type balanceResponse struct {
	ID         uint      `json:"id"`
	Amount     float64   `json:"amount"`
	RecordedAt time.Time `json:"recorded_at"`
}

// GetSaldo returns the balance snapshot left by the latest statement import.
func (h *Handlers) GetSaldo(w http.ResponseWriter, r *http.Request) {
	balance, err := h.Saldo.Current(r.Context())
	if err != nil {
		if errors.Is(err, saldodomain.ErrNoBalance) {
			h.log.BusinessError("saldo.get failed", err)
			writeError(w, http.StatusNotFound, "no_balance", "no balance recorded yet")
			return
		}
		h.log.InternalError("saldo.get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		ID:         balance.ID,
		Amount:     balance.Amount,
		RecordedAt: balance.RecordedAt,
	})
}
