package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/payteams/internal/domain"
)

const payinSelect = `
	SELECT p.payin_id, p.project_id, p.title, p.amount, p.payin_date, p.status,
	       u.user_id, u.name, u.email, p.created_at, p.updated_at
	FROM payins p
	INNER JOIN users u ON u.user_id = p.created_by
`

// PayinRepository реализует repository.PayinRepository для PostgreSQL
type PayinRepository struct {
	db *pgxpool.Pool
}

// NewPayinRepository создает новый экземпляр PayinRepository
func NewPayinRepository(db *pgxpool.Pool) *PayinRepository {
	return &PayinRepository{db: db}
}

// ListByProject возвращает поступления проекта, новые первыми
func (r *PayinRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Payin, error) {
	query := payinSelect + `
		WHERE p.project_id = $1
		ORDER BY p.payin_date DESC, p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("select payins: %w", err)
	}
	defer rows.Close()

	payins := []domain.Payin{}
	for rows.Next() {
		p, err := scanPayin(rows)
		if err != nil {
			return nil, err
		}
		payins = append(payins, *p)
	}

	return payins, rows.Err()
}

// GetByID получает поступление проекта
func (r *PayinRepository) GetByID(ctx context.Context, projectID, payinID string) (*domain.Payin, error) {
	query := payinSelect + `WHERE p.project_id = $1 AND p.payin_id = $2`

	p, err := scanPayin(r.db.QueryRow(ctx, query, projectID, payinID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayinNotFound
		}
		return nil, fmt.Errorf("select payin: %w", err)
	}

	return p, nil
}

// Create сохраняет поступление
func (r *PayinRepository) Create(ctx context.Context, p *domain.Payin) error {
	query := `
		INSERT INTO payins (payin_id, project_id, title, amount, payin_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.PayinID,
		p.ProjectID,
		p.Title,
		p.Amount,
		p.PayinDate,
		string(p.Status),
		p.Creator.UserID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProjectNotFound
		}
		return fmt.Errorf("insert payin: %w", err)
	}

	return nil
}

// Update сохраняет изменяемые поля поступления
func (r *PayinRepository) Update(ctx context.Context, p *domain.Payin) error {
	query := `
		UPDATE payins
		SET title = $3, amount = $4, payin_date = $5, status = $6, updated_at = NOW()
		WHERE project_id = $1 AND payin_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ProjectID,
		p.PayinID,
		p.Title,
		p.Amount,
		p.PayinDate,
		string(p.Status),
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPayinNotFound
		}
		return fmt.Errorf("update payin: %w", err)
	}

	return nil
}

// Delete удаляет поступление
func (r *PayinRepository) Delete(ctx context.Context, projectID, payinID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM payins WHERE project_id = $1 AND payin_id = $2`, projectID, payinID)
	if err != nil {
		return fmt.Errorf("delete payin: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPayinNotFound
	}

	return nil
}

func scanPayin(row pgx.Row) (*domain.Payin, error) {
	var (
		p      domain.Payin
		status string
	)
	err := row.Scan(
		&p.PayinID,
		&p.ProjectID,
		&p.Title,
		&p.Amount,
		&p.PayinDate,
		&status,
		&p.Creator.UserID,
		&p.Creator.Name,
		&p.Creator.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.PayinStatus(status)
	return &p, nil
}
