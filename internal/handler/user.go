package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/payteams/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List обрабатывает GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, users)
}

// Get обрабатывает GET /users/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}
