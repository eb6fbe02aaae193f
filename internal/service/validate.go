package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
)

const dateLayout = "2006-01-02"

// Money columns are NUMERIC(20,2): at most 18 integer digits and 2 fraction digits.
const moneyScale = 2

var moneyLimit = decimal.New(1, 18)

// normalizeCurrency uppercases an ISO 4217 code, falling back to def when empty
func normalizeCurrency(code, def string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = def
	}
	if len(code) != 3 {
		return "", domain.NewValidationError("currency", "must be a 3-letter ISO code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", domain.NewValidationError("currency", "must be a 3-letter ISO code")
		}
	}
	return code, nil
}

// requireMoney rejects amounts the database would round or refuse to store
func requireMoney(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(moneyScale)) {
		return domain.NewValidationError(field, "must have at most 2 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(moneyLimit) {
		return domain.NewValidationError(field, "is too large")
	}
	return nil
}

func requirePositive(field string, amount decimal.Decimal) error {
	if err := requireMoney(field, amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return domain.NewValidationError(field, "must be greater than zero")
	}
	return nil
}

func requireNonNegative(field string, amount decimal.Decimal) error {
	if err := requireMoney(field, amount); err != nil {
		return err
	}
	if amount.IsNegative() {
		return domain.NewValidationError(field, "must not be negative")
	}
	return nil
}

// parseDate accepts YYYY-MM-DD and defaults to today (UTC) when empty
func parseDate(field, value string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}
