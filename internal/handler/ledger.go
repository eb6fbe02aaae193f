package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/payteams/internal/service"
)

// LedgerHandler отдает финансовую сводку проекта
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler создает новый LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// Get обрабатывает GET /projects/{projectID}/ledger.
// Сводка пересчитывается на каждый запрос.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	l, err := h.ledgerService.GetLedger(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, l)
}
