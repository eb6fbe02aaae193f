package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/aidar/payteams/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// SessionKey ключ контекста для сессии пользователя
const SessionKey ContextKey = "session"

// Session описывает аутентифицированного пользователя текущего запроса
type Session struct {
	UserID string
	Email  string
}

// TokenValidator проверяет JWT и возвращает claims
type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

// errorBody повторяет конверт handler.Response: handler импортирует middleware, обратный импорт дал бы цикл
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Gate создает middleware, который сверяет путь запроса с таблицей правил
// и для закрытых маршрутов валидирует Bearer токен
func Gate(validator TokenValidator, rules []RouteRule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if AccessFor(rules, r.URL.Path) == Public {
				next.ServeHTTP(w, r)
				return
			}

			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "missing authorization header")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, r, "invalid authorization header format")
				return
			}

			// Валидируем токен
			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := WithSession(r.Context(), Session{UserID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, errorBody{Error: message})
}

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext извлекает сессию из контекста
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(SessionKey).(Session)
	return s, ok
}
