package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/service"
)

// PayoutHandler обрабатывает эндпоинты выплат участникам
type PayoutHandler struct {
	payoutService *service.PayoutService
}

// NewPayoutHandler создает новый PayoutHandler
func NewPayoutHandler(payoutService *service.PayoutService) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// PayoutMemberRequest одна строка выплаты
type PayoutMemberRequest struct {
	UserID string           `json:"user_id"`
	Amount *decimal.Decimal `json:"amount"`
	Notes  string           `json:"notes"`
}

// CreatePayoutRequest представляет тело запроса для создания выплаты.
// Итоговая сумма вычисляется сервером по строкам участников.
type CreatePayoutRequest struct {
	Title      string                `json:"title"`
	PayoutDate string                `json:"payout_date"`
	Status     domain.PayoutStatus   `json:"status"`
	Members    []PayoutMemberRequest `json:"members"`
}

// UpdatePayoutStatusRequest представляет тело запроса для смены статуса
type UpdatePayoutStatusRequest struct {
	Status domain.PayoutStatus `json:"status"`
}

// List обрабатывает GET /projects/{projectID}/payouts
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	payouts, err := h.payoutService.ListPayouts(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, payouts)
}

// Create обрабатывает POST /projects/{projectID}/payouts
func (h *PayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req CreatePayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	in := service.CreatePayoutInput{
		Title:      req.Title,
		PayoutDate: req.PayoutDate,
		Status:     req.Status,
		Members:    make([]service.PayoutMemberInput, 0, len(req.Members)),
	}
	for _, m := range req.Members {
		in.Members = append(in.Members, service.PayoutMemberInput{UserID: m.UserID, Amount: m.Amount, Notes: m.Notes})
	}

	payout, err := h.payoutService.CreatePayout(r.Context(), userID, chi.URLParam(r, "projectID"), in)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, payout)
}

// UpdateStatus обрабатывает PATCH /projects/{projectID}/payouts/{payoutID}
func (h *PayoutHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req UpdatePayoutStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	payout, err := h.payoutService.UpdatePayoutStatus(r.Context(), userID,
		chi.URLParam(r, "projectID"), chi.URLParam(r, "payoutID"), req.Status)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, payout)
}

// Delete обрабатывает DELETE /projects/{projectID}/payouts/{payoutID}
func (h *PayoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	err := h.payoutService.DeletePayout(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "payoutID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}
