package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки, которые handler слой превращает в HTTP ответы
var (
	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrProjectNotFound возвращается когда проект не найден или недоступен пользователю
	ErrProjectNotFound = errors.New("project not found")

	// ErrPricingNotFound возвращается когда ставка участника не найдена
	ErrPricingNotFound = errors.New("pricing assignment not found")

	// ErrPayinNotFound возвращается когда поступление не найдено
	ErrPayinNotFound = errors.New("payin not found")

	// ErrPayoutNotFound возвращается когда выплата не найдена
	ErrPayoutNotFound = errors.New("payout not found")

	// ErrEmailExists возвращается при регистрации с уже занятым email
	ErrEmailExists = errors.New("email already registered")

	// ErrAlreadyMember возвращается при повторном добавлении участника в команду
	ErrAlreadyMember = errors.New("user is already a team member")

	// ErrTeamAlreadyAssigned возвращается при повторном назначении команды на проект
	ErrTeamAlreadyAssigned = errors.New("team is already assigned to project")

	// ErrForbidden возвращается когда действие разрешено только владельцу
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError описывает некорректное поле запроса
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError создает ошибку валидации для поля
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound сообщает, относится ли ошибка к отсутствующему ресурсу
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTeamNotFound),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrPricingNotFound),
		errors.Is(err, ErrPayinNotFound),
		errors.Is(err, ErrPayoutNotFound):
		return true
	default:
		return false
	}
}
