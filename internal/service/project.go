package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/repository"
)

// CreateProjectInput describes a new project
type CreateProjectInput struct {
	Name        string
	Description string
	Budget      *decimal.Decimal
	Currency    string
}

// ProjectService handles projects, their access rules and team assignments
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
	}
}

// CreateProject creates a project owned by the caller
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, in CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if in.Budget != nil {
		if err := requireNonNegative("budget", *in.Budget); err != nil {
			return nil, err
		}
	}
	currency, err := normalizeCurrency(in.Currency, domain.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Budget:      in.Budget,
		Currency:    currency,
		Status:      domain.ProjectActive,
		OwnerID:     ownerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects returns projects the caller owns or reaches through a team
func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projectRepo.ListAccessible(ctx, userID)
}

// Authorize loads a project the caller collaborates on. Projects the caller
// cannot see are reported as not found.
func (s *ProjectService) Authorize(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.IsOwner(userID) {
		return project, nil
	}

	ok, err := s.projectRepo.IsCollaborator(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

// GetProject returns a project visible to the caller
func (s *ProjectService) GetProject(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	return s.Authorize(ctx, userID, projectID)
}

// UpdateProject applies a partial update; only the owner may change a project
func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "must not be empty")
		}
		upd.Name = &name
	}
	if upd.Budget != nil {
		if upd.ClearBudget {
			return nil, domain.NewValidationError("budget", "cannot set and clear budget at once")
		}
		if err := requireNonNegative("budget", *upd.Budget); err != nil {
			return nil, err
		}
	}
	if upd.Currency != nil {
		currency, err := normalizeCurrency(*upd.Currency, "")
		if err != nil {
			return nil, err
		}
		upd.Currency = &currency
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domain.NewValidationError("status", "must be ACTIVE, COMPLETED or ARCHIVED")
	}

	return s.projectRepo.Update(ctx, projectID, upd)
}

// DeleteProject removes a project; only the owner may do so
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// AssignTeam attaches one of the caller's teams to the project
func (s *ProjectService) AssignTeam(ctx context.Context, userID, projectID, teamID string) ([]*domain.Team, error) {
	if teamID == "" {
		return nil, domain.NewValidationError("team_id", "is required")
	}
	if _, err := s.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}

	member, err := s.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrTeamNotFound
	}

	if err := s.projectRepo.AssignTeam(ctx, projectID, teamID); err != nil {
		return nil, err
	}

	return s.projectRepo.AssignedTeams(ctx, projectID)
}

// UnassignTeam detaches a team and drops its pricing on the project
func (s *ProjectService) UnassignTeam(ctx context.Context, userID, projectID, teamID string) error {
	if _, err := s.Authorize(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projectRepo.UnassignTeam(ctx, projectID, teamID)
}

// AssignedTeams returns the teams working on the project
func (s *ProjectService) AssignedTeams(ctx context.Context, userID, projectID string) ([]*domain.Team, error) {
	if _, err := s.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projectRepo.AssignedTeams(ctx, projectID)
}

// AvailableTeams returns the caller's teams not yet assigned to the project
func (s *ProjectService) AvailableTeams(ctx context.Context, userID, projectID string) ([]*domain.Team, error) {
	if _, err := s.Authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projectRepo.UnassignedTeams(ctx, projectID, userID)
}

func (s *ProjectService) owned(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	project, err := s.Authorize(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsOwner(userID) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}
