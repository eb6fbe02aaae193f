package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/repository"
)

// SetPricingInput describes a fixed rate for a team member on a project
type SetPricingInput struct {
	TeamID    string
	UserID    string
	FixedRate decimal.Decimal
	Currency  string
}

// PricingService manages per-member fixed rates
type PricingService struct {
	projects    *ProjectService
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	pricingRepo repository.PricingRepository
}

// NewPricingService creates a new PricingService
func NewPricingService(
	projects *ProjectService,
	projectRepo repository.ProjectRepository,
	teamRepo repository.TeamRepository,
	pricingRepo repository.PricingRepository,
) *PricingService {
	return &PricingService{
		projects:    projects,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		pricingRepo: pricingRepo,
	}
}

// ListPricing returns the project's pricing rows joined with users and teams
func (s *PricingService) ListPricing(ctx context.Context, userID, projectID string) ([]domain.PricingAssignment, error) {
	if _, err := s.projects.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.pricingRepo.ListByProject(ctx, projectID)
}

// SetPricing creates or replaces the fixed rate of a user on a team
func (s *PricingService) SetPricing(ctx context.Context, callerID, projectID string, in SetPricingInput) ([]domain.PricingAssignment, error) {
	if in.TeamID == "" {
		return nil, domain.NewValidationError("team_id", "is required")
	}
	if in.UserID == "" {
		return nil, domain.NewValidationError("user_id", "is required")
	}
	if err := requireNonNegative("fixed_rate", in.FixedRate); err != nil {
		return nil, err
	}

	project, err := s.projects.Authorize(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	currency, err := normalizeCurrency(in.Currency, project.Currency)
	if err != nil {
		return nil, err
	}

	assigned, err := s.projectRepo.IsTeamAssigned(ctx, projectID, in.TeamID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, domain.ErrTeamNotFound
	}

	member, err := s.teamRepo.IsMember(ctx, in.TeamID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrUserNotFound
	}

	p := &domain.PricingAssignment{
		ProjectID: projectID,
		TeamID:    in.TeamID,
		User:      domain.UserRef{UserID: in.UserID},
		FixedRate: in.FixedRate,
		Currency:  currency,
	}
	if err := s.pricingRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return s.pricingRepo.ListByProject(ctx, projectID)
}

// DeletePricing removes a user's rate on a team
func (s *PricingService) DeletePricing(ctx context.Context, callerID, projectID, teamID, userID string) error {
	if _, err := s.projects.Authorize(ctx, callerID, projectID); err != nil {
		return err
	}
	return s.pricingRepo.Delete(ctx, projectID, teamID, userID)
}
