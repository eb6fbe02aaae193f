package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
)

const projectColumns = `p.project_id, p.name, p.description, p.budget, p.currency, p.status, p.owner_id, p.created_at, p.updated_at`

// ProjectRepository реализует repository.ProjectRepository для PostgreSQL
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create создает проект
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (project_id, name, description, budget, currency, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		project.ProjectID,
		project.Name,
		project.Description,
		nullDecimal(project.Budget),
		project.Currency,
		string(project.Status),
		project.OwnerID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert project: %w", err)
	}

	return nil
}

// GetByID получает проект по ID
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects p WHERE p.project_id = $1`

	project, err := scanProject(r.db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("select project: %w", err)
	}

	return project, nil
}

// ListAccessible возвращает проекты владельца и проекты назначенных ему команд
func (r *ProjectRepository) ListAccessible(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		WHERE p.owner_id = $1
		   OR EXISTS (
				SELECT 1
				FROM project_teams pt
				INNER JOIN team_members tm ON tm.team_id = pt.team_id
				WHERE pt.project_id = p.project_id AND tm.user_id = $1
		   )
		ORDER BY p.created_at DESC, p.project_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Update применяет частичное обновление и возвращает проект
func (r *ProjectRepository) Update(ctx context.Context, projectID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	query := `
		UPDATE projects p
		SET name        = COALESCE($2, p.name),
		    description = COALESCE($3, p.description),
		    budget      = CASE WHEN $4::boolean THEN NULL ELSE COALESCE($5, p.budget) END,
		    currency    = COALESCE($6, p.currency),
		    status      = COALESCE($7, p.status),
		    updated_at  = NOW()
		WHERE p.project_id = $1
		RETURNING ` + projectColumns

	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	project, err := scanProject(r.db.QueryRow(ctx, query,
		projectID,
		upd.Name,
		upd.Description,
		upd.ClearBudget,
		nullDecimal(upd.Budget),
		upd.Currency,
		status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	return project, nil
}

// Delete удаляет проект вместе с зависимыми записями
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}

// IsCollaborator проверяет, владеет ли пользователь проектом или состоит в назначенной команде
func (r *ProjectRepository) IsCollaborator(ctx context.Context, projectID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM projects WHERE project_id = $1 AND owner_id = $2
		) OR EXISTS (
			SELECT 1
			FROM project_teams pt
			INNER JOIN team_members tm ON tm.team_id = pt.team_id
			WHERE pt.project_id = $1 AND tm.user_id = $2
		)
	`

	var ok bool
	if err := r.db.QueryRow(ctx, query, projectID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check project access: %w", err)
	}

	return ok, nil
}

// AssignTeam назначает команду на проект
func (r *ProjectRepository) AssignTeam(ctx context.Context, projectID, teamID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO project_teams (project_id, team_id) VALUES ($1, $2)`, projectID, teamID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrTeamAlreadyAssigned
		case isForeignKeyViolation(err):
			return domain.ErrTeamNotFound
		}
		return fmt.Errorf("assign team: %w", err)
	}

	return nil
}

// UnassignTeam снимает команду с проекта вместе со ставками ее участников
func (r *ProjectRepository) UnassignTeam(ctx context.Context, projectID, teamID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	result, err := tx.Exec(ctx, `DELETE FROM project_teams WHERE project_id = $1 AND team_id = $2`, projectID, teamID)
	if err != nil {
		return fmt.Errorf("unassign team: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM project_pricing WHERE project_id = $1 AND team_id = $2`, projectID, teamID); err != nil {
		return fmt.Errorf("delete team pricing: %w", err)
	}

	return tx.Commit(ctx)
}

// IsTeamAssigned проверяет, назначена ли команда на проект
func (r *ProjectRepository) IsTeamAssigned(ctx context.Context, projectID, teamID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM project_teams WHERE project_id = $1 AND team_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, projectID, teamID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check team assignment: %w", err)
	}

	return exists, nil
}

// AssignedTeams возвращает команды проекта
func (r *ProjectRepository) AssignedTeams(ctx context.Context, projectID string) ([]*domain.Team, error) {
	query := `
		SELECT t.team_id, t.name, t.description, t.owner_id, t.created_at
		FROM teams t
		INNER JOIN project_teams pt ON pt.team_id = t.team_id
		WHERE pt.project_id = $1
		ORDER BY pt.assigned_at, t.team_id
	`

	return scanTeams(r.db.Query(ctx, query, projectID))
}

// UnassignedTeams возвращает команды пользователя, еще не назначенные на проект
func (r *ProjectRepository) UnassignedTeams(ctx context.Context, projectID, userID string) ([]*domain.Team, error) {
	query := `
		SELECT t.team_id, t.name, t.description, t.owner_id, t.created_at
		FROM teams t
		INNER JOIN team_members tm ON tm.team_id = t.team_id
		WHERE tm.user_id = $2
		  AND NOT EXISTS (
				SELECT 1 FROM project_teams pt
				WHERE pt.project_id = $1 AND pt.team_id = t.team_id
		  )
		ORDER BY t.name, t.team_id
	`

	return scanTeams(r.db.Query(ctx, query, projectID, userID))
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p      domain.Project
		budget decimal.NullDecimal
		status string
	)
	err := row.Scan(
		&p.ProjectID,
		&p.Name,
		&p.Description,
		&budget,
		&p.Currency,
		&status,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(status)
	if budget.Valid {
		b := budget.Decimal
		p.Budget = &b
	}

	return &p, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
