package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/repository"
)

// TeamService handles business logic for teams
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeam creates a team owned by the caller, who becomes its first member
func (s *TeamService) CreateTeam(ctx context.Context, ownerID, name, description string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	team := &domain.Team{
		TeamID:      uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	return s.teamRepo.GetByID(ctx, team.TeamID)
}

// ListTeams returns the teams the caller belongs to
func (s *TeamService) ListTeams(ctx context.Context, userID string) ([]*domain.Team, error) {
	return s.teamRepo.ListByMember(ctx, userID)
}

// GetTeam returns a team with members; non-members get ErrTeamNotFound
func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(userID) {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}

// DeleteTeam removes a team; only its owner may do so
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID string) error {
	if _, err := s.ownedTeam(ctx, userID, teamID); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, teamID)
}

// AddMember adds a user to the team
func (s *TeamService) AddMember(ctx context.Context, callerID, teamID, userID, role string) (*domain.Team, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "is required")
	}
	if role == "" {
		role = domain.RoleMember
	}
	if role != domain.RoleMember && role != domain.RoleOwner {
		return nil, domain.NewValidationError("role", "must be owner or member")
	}

	if _, err := s.ownedTeam(ctx, callerID, teamID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.teamRepo.AddMember(ctx, teamID, userID, role); err != nil {
		return nil, err
	}

	return s.teamRepo.GetByID(ctx, teamID)
}

// RemoveMember removes a user from the team; the owner cannot be removed
func (s *TeamService) RemoveMember(ctx context.Context, callerID, teamID, userID string) error {
	team, err := s.ownedTeam(ctx, callerID, teamID)
	if err != nil {
		return err
	}
	if team.OwnerID == userID {
		return domain.NewValidationError("user_id", "team owner cannot be removed")
	}

	return s.teamRepo.RemoveMember(ctx, teamID, userID)
}

// AvailableUsers lists users that are not members of the team yet
func (s *TeamService) AvailableUsers(ctx context.Context, callerID, teamID string) ([]*domain.User, error) {
	if _, err := s.GetTeam(ctx, callerID, teamID); err != nil {
		return nil, err
	}
	return s.userRepo.ListNotInTeam(ctx, teamID)
}

// ownedTeam loads a team visible to the caller and requires ownership
func (s *TeamService) ownedTeam(ctx context.Context, callerID, teamID string) (*domain.Team, error) {
	team, err := s.GetTeam(ctx, callerID, teamID)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return team, nil
}
