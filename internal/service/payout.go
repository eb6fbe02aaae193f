package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/metrics"
	"github.com/aidar/payteams/internal/repository"
)

// PayoutMemberInput is one recipient line of a new payout
type PayoutMemberInput struct {
	UserID string
	Amount *decimal.Decimal
	Notes  string
}

// CreatePayoutInput describes a disbursement to team members
type CreatePayoutInput struct {
	Title      string
	PayoutDate string
	Status     domain.PayoutStatus
	Members    []PayoutMemberInput
}

// PayoutService manages disbursements to team members
type PayoutService struct {
	projects   *ProjectService
	payoutRepo repository.PayoutRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(projects *ProjectService, payoutRepo repository.PayoutRepository, logger *slog.Logger) *PayoutService {
	return &PayoutService{
		projects:   projects,
		payoutRepo: payoutRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// ListPayouts returns the project's payouts with their member lines
func (s *PayoutService) ListPayouts(ctx context.Context, userID, projectID string) ([]domain.Payout, error) {
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.payoutRepo.ListByProject(ctx, projectID)
}

// CreatePayout records a payout with its member lines. The total is always
// recomputed from the lines.
func (s *PayoutService) CreatePayout(ctx context.Context, userID, projectID string, in CreatePayoutInput) (*domain.Payout, error) {
	payout, err := s.buildPayout(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}

	payout.PayoutID = uuid.NewString()
	payout.ProjectID = projectID
	payout.Creator = domain.UserRef{UserID: userID}

	if err := s.payoutRepo.Create(ctx, payout); err != nil {
		s.logger.Error("failed to create payout",
			"project_id", projectID,
			"payout_id", payout.PayoutID,
			"members", len(payout.Members),
			"error", err,
		)
		return nil, err
	}
	metrics.PayoutsCreated.WithLabelValues(string(payout.Status)).Inc()

	return s.payoutRepo.GetByID(ctx, projectID, payout.PayoutID)
}

func (s *PayoutService) buildPayout(in CreatePayoutInput) (*domain.Payout, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	if len(in.Members) == 0 {
		return nil, domain.NewValidationError("members", "at least one member is required")
	}

	status := in.Status
	if status == "" {
		status = domain.PayoutPending
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be PENDING, COMPLETED or CANCELLED")
	}

	date, err := parseDate("payout_date", in.PayoutDate, s.now())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(in.Members))
	members := make([]domain.PayoutMember, 0, len(in.Members))
	for _, m := range in.Members {
		if m.UserID == "" {
			return nil, domain.NewValidationError("members.user_id", "is required")
		}
		if _, dup := seen[m.UserID]; dup {
			return nil, domain.NewValidationError("members.user_id", "duplicate member "+m.UserID)
		}
		seen[m.UserID] = struct{}{}

		if m.Amount == nil {
			return nil, domain.NewValidationError("members.amount", "is required")
		}
		if err := requireNonNegative("members.amount", *m.Amount); err != nil {
			return nil, err
		}

		members = append(members, domain.PayoutMember{
			User:   domain.UserRef{UserID: m.UserID},
			Amount: *m.Amount,
			Notes:  strings.TrimSpace(m.Notes),
		})
	}

	payout := &domain.Payout{
		Title:      title,
		PayoutDate: date,
		Status:     status,
		Members:    members,
	}
	payout.TotalAmount = payout.MembersTotal()
	if err := requirePositive("amount", payout.TotalAmount); err != nil {
		return nil, err
	}

	return payout, nil
}

// UpdatePayoutStatus moves a payout between PENDING, COMPLETED and CANCELLED
func (s *PayoutService) UpdatePayoutStatus(ctx context.Context, userID, projectID, payoutID string, status domain.PayoutStatus) (*domain.Payout, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "must be PENDING, COMPLETED or CANCELLED")
	}
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if err := s.payoutRepo.UpdateStatus(ctx, projectID, payoutID, status); err != nil {
		return nil, err
	}

	return s.payoutRepo.GetByID(ctx, projectID, payoutID)
}

// DeletePayout removes a payout and its member lines
func (s *PayoutService) DeletePayout(ctx context.Context, userID, projectID, payoutID string) error {
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return err
	}
	return s.payoutRepo.Delete(ctx, projectID, payoutID)
}
