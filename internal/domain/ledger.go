package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayinStatus представляет статус поступления от клиента
type PayinStatus string

// Возможные статусы поступления
const (
	PayinPending   PayinStatus = "PENDING"
	PayinReceived  PayinStatus = "RECEIVED"
	PayinCancelled PayinStatus = "CANCELLED"
)

// Valid проверяет, что статус входит в перечисление
func (s PayinStatus) Valid() bool {
	switch s {
	case PayinPending, PayinReceived, PayinCancelled:
		return true
	}
	return false
}

// PayoutStatus представляет статус выплаты участникам
type PayoutStatus string

// Возможные статусы выплаты
const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutCompleted PayoutStatus = "COMPLETED"
	PayoutCancelled PayoutStatus = "CANCELLED"
)

// Valid проверяет, что статус входит в перечисление
func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutPending, PayoutCompleted, PayoutCancelled:
		return true
	}
	return false
}

// PricingAssignment это фиксированная ставка пользователя в команде на проекте.
// На одну тройку (project, team, user) приходится не более одной записи.
type PricingAssignment struct {
	ProjectID string          `json:"project_id"`
	TeamID    string          `json:"team_id"`
	TeamName  string          `json:"team_name,omitempty"`
	User      UserRef         `json:"user"`
	FixedRate decimal.Decimal `json:"fixed_rate"`
	Currency  string          `json:"currency"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Payin это поступление денег от клиента в счет бюджета проекта
type Payin struct {
	PayinID   string          `json:"payin_id"`
	ProjectID string          `json:"project_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	PayinDate time.Time       `json:"payin_date"`
	Status    PayinStatus     `json:"status"`
	Creator   UserRef         `json:"creator"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsReceived возвращает true, если поступление учитывается в бюджете
func (p *Payin) IsReceived() bool {
	return p.Status == PayinReceived
}

// Payout это выплата одному или нескольким участникам
type Payout struct {
	PayoutID    string          `json:"payout_id"`
	ProjectID   string          `json:"project_id"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PayoutDate  time.Time       `json:"payout_date"`
	Status      PayoutStatus    `json:"status"`
	Creator     UserRef         `json:"creator"`
	Members     []PayoutMember  `json:"members"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsCompleted возвращает true, если выплата учитывается как оплаченная
func (p *Payout) IsCompleted() bool {
	return p.Status == PayoutCompleted
}

// MembersTotal пересчитывает сумму выплаты по строкам участников
func (p *Payout) MembersTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Members {
		total = total.Add(m.Amount)
	}
	return total
}

// PayoutMember это строка выплаты для конкретного пользователя
type PayoutMember struct {
	PayoutID string          `json:"payout_id"`
	User     UserRef         `json:"user"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    string          `json:"notes,omitempty"`
}
