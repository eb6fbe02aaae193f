package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/payteams/internal/domain"
)

// PricingRepository реализует repository.PricingRepository для PostgreSQL
type PricingRepository struct {
	db *pgxpool.Pool
}

// NewPricingRepository создает новый экземпляр PricingRepository
func NewPricingRepository(db *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{db: db}
}

// ListByProject возвращает ставки проекта в порядке их создания
func (r *PricingRepository) ListByProject(ctx context.Context, projectID string) ([]domain.PricingAssignment, error) {
	query := `
		SELECT pp.project_id, pp.team_id, t.name, u.user_id, u.name, u.email,
		       pp.fixed_rate, pp.currency, pp.updated_at
		FROM project_pricing pp
		INNER JOIN users u ON u.user_id = pp.user_id
		INNER JOIN teams t ON t.team_id = pp.team_id
		WHERE pp.project_id = $1
		ORDER BY pp.created_at, pp.team_id, pp.user_id
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("select pricing: %w", err)
	}
	defer rows.Close()

	pricing := []domain.PricingAssignment{}
	for rows.Next() {
		var p domain.PricingAssignment
		if err := rows.Scan(
			&p.ProjectID,
			&p.TeamID,
			&p.TeamName,
			&p.User.UserID,
			&p.User.Name,
			&p.User.Email,
			&p.FixedRate,
			&p.Currency,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pricing = append(pricing, p)
	}

	return pricing, rows.Err()
}

// Upsert создает или обновляет ставку для (project, team, user)
func (r *PricingRepository) Upsert(ctx context.Context, p *domain.PricingAssignment) error {
	query := `
		INSERT INTO project_pricing (project_id, team_id, user_id, fixed_rate, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, team_id, user_id) DO UPDATE
		SET fixed_rate = EXCLUDED.fixed_rate,
		    currency   = EXCLUDED.currency,
		    updated_at = NOW()
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, p.ProjectID, p.TeamID, p.User.UserID, p.FixedRate, p.Currency).Scan(&p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert pricing: %w", err)
	}

	return nil
}

// Delete удаляет ставку
func (r *PricingRepository) Delete(ctx context.Context, projectID, teamID, userID string) error {
	query := `DELETE FROM project_pricing WHERE project_id = $1 AND team_id = $2 AND user_id = $3`

	result, err := r.db.Exec(ctx, query, projectID, teamID, userID)
	if err != nil {
		return fmt.Errorf("delete pricing: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPricingNotFound
	}

	return nil
}
