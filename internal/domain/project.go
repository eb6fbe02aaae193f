package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus представляет стадию проекта
type ProjectStatus string

// Возможные статусы проекта
const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectArchived  ProjectStatus = "ARCHIVED"
)

// Valid проверяет, что статус входит в перечисление
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// DefaultCurrency используется, если валюта проекта не указана
const DefaultCurrency = "USD"

// Project представляет проект с опциональным бюджетом
type Project struct {
	ProjectID   string           `json:"project_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Budget      *decimal.Decimal `json:"budget,omitempty"` // nil, если бюджет не отслеживается
	Currency    string           `json:"currency"`
	Status      ProjectStatus    `json:"status"`
	OwnerID     string           `json:"owner_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsOwner проверяет, является ли пользователь владельцем проекта
func (p *Project) IsOwner(userID string) bool {
	return p.OwnerID == userID
}

// ProjectUpdate содержит поля для частичного обновления проекта
type ProjectUpdate struct {
	Name        *string
	Description *string
	Budget      *decimal.Decimal
	ClearBudget bool
	Currency    *string
	Status      *ProjectStatus
}
