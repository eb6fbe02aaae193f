package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/service"
)

// PayinHandler обрабатывает эндпоинты поступлений от клиента
type PayinHandler struct {
	payinService *service.PayinService
}

// NewPayinHandler создает новый PayinHandler
func NewPayinHandler(payinService *service.PayinService) *PayinHandler {
	return &PayinHandler{
		payinService: payinService,
	}
}

// CreatePayinRequest представляет тело запроса для создания поступления
type CreatePayinRequest struct {
	Title     string             `json:"title"`
	Amount    *decimal.Decimal   `json:"amount"`
	PayinDate string             `json:"payin_date"`
	Status    domain.PayinStatus `json:"status"`
}

// UpdatePayinRequest представляет частичное обновление поступления
type UpdatePayinRequest struct {
	Title     *string             `json:"title"`
	Amount    *decimal.Decimal    `json:"amount"`
	PayinDate *string             `json:"payin_date"`
	Status    *domain.PayinStatus `json:"status"`
}

// List обрабатывает GET /projects/{projectID}/payins
func (h *PayinHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	payins, err := h.payinService.ListPayins(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, payins)
}

// Create обрабатывает POST /projects/{projectID}/payins
func (h *PayinHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req CreatePayinRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	payin, err := h.payinService.CreatePayin(r.Context(), userID, chi.URLParam(r, "projectID"), service.CreatePayinInput{
		Title:     req.Title,
		Amount:    req.Amount,
		PayinDate: req.PayinDate,
		Status:    req.Status,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, payin)
}

// Update обрабатывает PATCH /projects/{projectID}/payins/{payinID}
func (h *PayinHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req UpdatePayinRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	payin, err := h.payinService.UpdatePayin(r.Context(), userID,
		chi.URLParam(r, "projectID"), chi.URLParam(r, "payinID"),
		service.UpdatePayinInput{
			Title:     req.Title,
			Amount:    req.Amount,
			PayinDate: req.PayinDate,
			Status:    req.Status,
		})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, payin)
}

// Delete обрабатывает DELETE /projects/{projectID}/payins/{payinID}
func (h *PayinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	err := h.payinService.DeletePayin(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "payinID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, nil)
}
