package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/metrics"
	"github.com/aidar/payteams/internal/repository"
)

// CreatePayinInput describes a client payment
type CreatePayinInput struct {
	Title     string
	Amount    *decimal.Decimal
	PayinDate string
	Status    domain.PayinStatus
}

// UpdatePayinInput holds the mutable payin fields; nil means unchanged
type UpdatePayinInput struct {
	Title     *string
	Amount    *decimal.Decimal
	PayinDate *string
	Status    *domain.PayinStatus
}

// PayinService manages client payments against a project budget
type PayinService struct {
	projects  *ProjectService
	payinRepo repository.PayinRepository
	now       func() time.Time
}

// NewPayinService creates a new PayinService
func NewPayinService(projects *ProjectService, payinRepo repository.PayinRepository) *PayinService {
	return &PayinService{
		projects:  projects,
		payinRepo: payinRepo,
		now:       time.Now,
	}
}

// ListPayins returns the project's payins, newest first
func (s *PayinService) ListPayins(ctx context.Context, userID, projectID string) ([]domain.Payin, error) {
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.payinRepo.ListByProject(ctx, projectID)
}

// CreatePayin records a payment; status defaults to PENDING and date to today
func (s *PayinService) CreatePayin(ctx context.Context, userID, projectID string, in CreatePayinInput) (*domain.Payin, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	if in.Amount == nil {
		return nil, domain.NewValidationError("amount", "is required")
	}
	if err := requirePositive("amount", *in.Amount); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.PayinPending
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be PENDING, RECEIVED or CANCELLED")
	}
	date, err := parseDate("payin_date", in.PayinDate, s.now())
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}

	payin := &domain.Payin{
		PayinID:   uuid.NewString(),
		ProjectID: projectID,
		Title:     title,
		Amount:    *in.Amount,
		PayinDate: date,
		Status:    status,
		Creator:   domain.UserRef{UserID: userID},
	}
	if err := s.payinRepo.Create(ctx, payin); err != nil {
		return nil, err
	}
	metrics.PayinsCreated.WithLabelValues(string(status)).Inc()

	return s.payinRepo.GetByID(ctx, projectID, payin.PayinID)
}

// UpdatePayin changes title, amount, date or status of a payin
func (s *PayinService) UpdatePayin(ctx context.Context, userID, projectID, payinID string, in UpdatePayinInput) (*domain.Payin, error) {
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}

	payin, err := s.payinRepo.GetByID(ctx, projectID, payinID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.NewValidationError("title", "must not be empty")
		}
		payin.Title = title
	}
	if in.Amount != nil {
		if err := requirePositive("amount", *in.Amount); err != nil {
			return nil, err
		}
		payin.Amount = *in.Amount
	}
	if in.PayinDate != nil {
		date, err := parseDate("payin_date", *in.PayinDate, s.now())
		if err != nil {
			return nil, err
		}
		payin.PayinDate = date
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.NewValidationError("status", "must be PENDING, RECEIVED or CANCELLED")
		}
		payin.Status = *in.Status
	}

	if err := s.payinRepo.Update(ctx, payin); err != nil {
		return nil, err
	}

	return payin, nil
}

// DeletePayin removes a payin
func (s *PayinService) DeletePayin(ctx context.Context, userID, projectID, payinID string) error {
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return err
	}
	return s.payinRepo.Delete(ctx, projectID, payinID)
}
