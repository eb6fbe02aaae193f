package service

import (
	"context"
	"fmt"

	"github.com/aidar/payteams/internal/ledger"
	"github.com/aidar/payteams/internal/repository"
)

// ProjectLedger is the financial overview of a project
type ProjectLedger struct {
	ProjectID string                 `json:"project_id"`
	Currency  string                 `json:"currency"`
	Client    ledger.ClientLedger    `json:"client"`
	Members   ledger.MemberLedger    `json:"members"`
	Teams     []ledger.TeamBreakdown `json:"teams"`
}

// LedgerService fetches a project's records and reconciles them
type LedgerService struct {
	projects    *ProjectService
	pricingRepo repository.PricingRepository
	payinRepo   repository.PayinRepository
	payoutRepo  repository.PayoutRepository
	opts        ledger.Options
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	projects *ProjectService,
	pricingRepo repository.PricingRepository,
	payinRepo repository.PayinRepository,
	payoutRepo repository.PayoutRepository,
	opts ledger.Options,
) *LedgerService {
	return &LedgerService{
		projects:    projects,
		pricingRepo: pricingRepo,
		payinRepo:   payinRepo,
		payoutRepo:  payoutRepo,
		opts:        opts,
	}
}

// GetLedger recomputes the ledger from freshly fetched rows. If any fetch
// fails no aggregation is attempted.
func (s *LedgerService) GetLedger(ctx context.Context, userID, projectID string) (*ProjectLedger, error) {
	project, err := s.projects.Authorize(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	pricing, err := s.pricingRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch pricing: %w", err)
	}
	payins, err := s.payinRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch payins: %w", err)
	}
	payouts, err := s.payoutRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch payouts: %w", err)
	}

	return &ProjectLedger{
		ProjectID: project.ProjectID,
		Currency:  project.Currency,
		Client:    ledger.ClientSide(project.Budget, payins),
		Members:   ledger.Members(pricing, payouts, s.opts),
		Teams:     ledger.ByTeam(pricing),
	}, nil
}
