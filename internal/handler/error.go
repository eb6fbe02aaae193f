package handler

import (
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aidar/payteams/internal/domain"
)

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		RespondWithError(w, r, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, domain.ErrEmailExists):
		RespondWithError(w, r, http.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrAlreadyMember):
		RespondWithError(w, r, http.StatusConflict, "user is already a team member")
	case errors.Is(err, domain.ErrTeamAlreadyAssigned):
		RespondWithError(w, r, http.StatusConflict, "team is already assigned to the project")
	case errors.Is(err, domain.ErrInvalidCredentials):
		RespondWithError(w, r, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(w, r, http.StatusForbidden, "forbidden")
	case domain.IsNotFound(err):
		RespondWithError(w, r, http.StatusNotFound, err.Error())
	default:
		// Детали ошибок хранилища наружу не отдаем
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
