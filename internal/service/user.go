package service

import (
	"context"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/repository"
)

// UserService handles user lookups
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// List returns all users, used by member pickers
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
