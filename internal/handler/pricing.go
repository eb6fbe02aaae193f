package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/service"
)

// PricingHandler обрабатывает эндпоинты ставок участников
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler создает новый PricingHandler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// SetPricingRequest представляет тело запроса для установки ставки
type SetPricingRequest struct {
	TeamID    string          `json:"team_id"`
	UserID    string          `json:"user_id"`
	FixedRate decimal.Decimal `json:"fixed_rate"`
	Currency  string          `json:"currency"`
}

// List обрабатывает GET /projects/{projectID}/pricing
func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	rows, err := h.pricingService.ListPricing(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rows)
}

// Set обрабатывает PUT /projects/{projectID}/pricing
func (h *PricingHandler) Set(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req SetPricingRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.pricingService.SetPricing(r.Context(), userID, chi.URLParam(r, "projectID"), service.SetPricingInput{
		TeamID:    req.TeamID,
		UserID:    req.UserID,
		FixedRate: req.FixedRate,
		Currency:  req.Currency,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, rows)
}

// Delete обрабатывает DELETE /projects/{projectID}/pricing/{teamID}/{userID}
func (h *PricingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	err := h.pricingService.DeletePricing(r.Context(), userID,
		chi.URLParam(r, "projectID"), chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}
