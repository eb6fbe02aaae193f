package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/payteams/internal/middleware"
)

// Response общий конверт всех ответов API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondWithJSON отправляет успешный ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, Response{Success: true, Data: data})
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, Response{Success: false, Error: message})
}

// decodeJSON читает тело запроса; пустое тело считается ошибкой
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("invalid request body")
	}
	return nil
}

// sessionUser возвращает ID пользователя из сессии либо отвечает 401
func sessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok || s.UserID == "" {
		RespondWithError(w, r, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return s.UserID, true
}
