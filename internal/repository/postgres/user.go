package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/payteams/internal/domain"
)

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, user.UserID, user.Email, user.Name, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, email, name, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`

	return r.getOne(ctx, query, userID)
}

// GetByEmail получает пользователя по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, email, name, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	return r.getOne(ctx, query, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &user, nil
}

// List возвращает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT user_id, email, name, created_at
		FROM users
		ORDER BY name, user_id
	`

	return r.list(ctx, query)
}

// ListNotInTeam возвращает пользователей, которые еще не состоят в команде
func (r *UserRepository) ListNotInTeam(ctx context.Context, teamID string) ([]*domain.User, error) {
	query := `
		SELECT u.user_id, u.email, u.name, u.created_at
		FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM team_members tm
			WHERE tm.team_id = $1 AND tm.user_id = u.user_id
		)
		ORDER BY u.name, u.user_id
	`

	return r.list(ctx, query, teamID)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.UserID, &user.Email, &user.Name, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
