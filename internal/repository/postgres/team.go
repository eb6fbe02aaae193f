package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/payteams/internal/domain"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create создает команду и добавляет владельца участником
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit вернет ошибку, ее можно игнорировать
	}()

	query := `
		INSERT INTO teams (team_id, name, description, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRow(ctx, query, team.TeamID, team.Name, team.Description, team.OwnerID).Scan(&team.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert team: %w", err)
	}

	memberQuery := `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err = tx.Exec(ctx, memberQuery, team.TeamID, team.OwnerID, domain.RoleOwner); err != nil {
		return fmt.Errorf("insert team owner: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID получает команду со всеми участниками
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `
		SELECT team_id, name, description, owner_id, created_at
		FROM teams
		WHERE team_id = $1
	`

	var team domain.Team
	err := r.db.QueryRow(ctx, query, teamID).Scan(
		&team.TeamID,
		&team.Name,
		&team.Description,
		&team.OwnerID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("select team: %w", err)
	}

	membersQuery := `
		SELECT u.user_id, u.name, u.email, tm.role, tm.joined_at
		FROM team_members tm
		INNER JOIN users u ON u.user_id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at, u.user_id
	`

	rows, err := r.db.Query(ctx, membersQuery, teamID)
	if err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}
	defer rows.Close()

	team.Members = []domain.TeamMember{}
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		team.Members = append(team.Members, m)
	}

	return &team, rows.Err()
}

// ListByMember возвращает команды, в которых состоит пользователь
func (r *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	query := `
		SELECT t.team_id, t.name, t.description, t.owner_id, t.created_at
		FROM teams t
		INNER JOIN team_members tm ON tm.team_id = t.team_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC, t.team_id
	`

	return scanTeams(r.db.Query(ctx, query, userID))
}

// Delete удаляет команду
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM teams WHERE team_id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}

	return nil
}

// AddMember добавляет пользователя в команду
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID, role string) error {
	query := `
		INSERT INTO team_members (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, teamID, userID, role)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrAlreadyMember
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert team member: %w", err)
	}

	return nil
}

// RemoveMember удаляет пользователя из команды
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// IsMember проверяет, состоит ли пользователь в команде
func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, teamID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check team member: %w", err)
	}

	return exists, nil
}

// scanTeams читает список команд без участников
func scanTeams(rows pgx.Rows, err error) ([]*domain.Team, error) {
	if err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	defer rows.Close()

	teams := []*domain.Team{}
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}

	return teams, rows.Err()
}
