package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/payteams/internal/domain"
)

const payoutSelect = `
	SELECT p.payout_id, p.project_id, p.title, p.total_amount, p.payout_date, p.status,
	       u.user_id, u.name, u.email, p.created_at, p.updated_at
	FROM payouts p
	INNER JOIN users u ON u.user_id = p.created_by
`

// PayoutRepository реализует repository.PayoutRepository для PostgreSQL
type PayoutRepository struct {
	db *pgxpool.Pool
}

// NewPayoutRepository создает новый экземпляр PayoutRepository
func NewPayoutRepository(db *pgxpool.Pool) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// ListByProject возвращает выплаты проекта вместе со строками участников
func (r *PayoutRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Payout, error) {
	query := payoutSelect + `
		WHERE p.project_id = $1
		ORDER BY p.payout_date DESC, p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("select payouts: %w", err)
	}
	defer rows.Close()

	payouts := []domain.Payout{}
	index := make(map[string]int)
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		index[p.PayoutID] = len(payouts)
		payouts = append(payouts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Строки участников всех выплат проекта одним запросом
	membersQuery := `
		SELECT pm.payout_id, u.user_id, u.name, u.email, pm.amount, pm.notes
		FROM payout_members pm
		INNER JOIN payouts p ON p.payout_id = pm.payout_id
		INNER JOIN users u ON u.user_id = pm.user_id
		WHERE p.project_id = $1
		ORDER BY pm.payout_id, u.name, u.user_id
	`

	members, err := r.queryMembers(ctx, membersQuery, projectID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if i, ok := index[m.PayoutID]; ok {
			payouts[i].Members = append(payouts[i].Members, m)
		}
	}

	return payouts, nil
}

// GetByID получает выплату проекта со строками участников
func (r *PayoutRepository) GetByID(ctx context.Context, projectID, payoutID string) (*domain.Payout, error) {
	query := payoutSelect + `WHERE p.project_id = $1 AND p.payout_id = $2`

	p, err := scanPayout(r.db.QueryRow(ctx, query, projectID, payoutID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayoutNotFound
		}
		return nil, fmt.Errorf("select payout: %w", err)
	}

	membersQuery := `
		SELECT pm.payout_id, u.user_id, u.name, u.email, pm.amount, pm.notes
		FROM payout_members pm
		INNER JOIN users u ON u.user_id = pm.user_id
		WHERE pm.payout_id = $1
		ORDER BY u.name, u.user_id
	`

	members, err := r.queryMembers(ctx, membersQuery, payoutID)
	if err != nil {
		return nil, err
	}
	p.Members = append(p.Members, members...)

	return p, nil
}

// Create сохраняет выплату и ее строки в одной транзакции
func (r *PayoutRepository) Create(ctx context.Context, p *domain.Payout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit вернет ошибку, ее можно игнорировать
	}()

	query := `
		INSERT INTO payouts (payout_id, project_id, title, total_amount, payout_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		p.PayoutID,
		p.ProjectID,
		p.Title,
		p.TotalAmount,
		p.PayoutDate,
		string(p.Status),
		p.Creator.UserID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProjectNotFound
		}
		return fmt.Errorf("insert payout: %w", err)
	}

	memberQuery := `
		INSERT INTO payout_members (payout_id, user_id, amount, notes)
		VALUES ($1, $2, $3, $4)
	`
	for i := range p.Members {
		m := &p.Members[i]
		m.PayoutID = p.PayoutID
		if _, err = tx.Exec(ctx, memberQuery, p.PayoutID, m.User.UserID, m.Amount, m.Notes); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("insert payout member: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// UpdateStatus меняет статус выплаты
func (r *PayoutRepository) UpdateStatus(ctx context.Context, projectID, payoutID string, status domain.PayoutStatus) error {
	query := `
		UPDATE payouts
		SET status = $3, updated_at = NOW()
		WHERE project_id = $1 AND payout_id = $2
	`

	result, err := r.db.Exec(ctx, query, projectID, payoutID, string(status))
	if err != nil {
		return fmt.Errorf("update payout status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPayoutNotFound
	}

	return nil
}

// Delete удаляет выплату вместе со строками
func (r *PayoutRepository) Delete(ctx context.Context, projectID, payoutID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM payouts WHERE project_id = $1 AND payout_id = $2`, projectID, payoutID)
	if err != nil {
		return fmt.Errorf("delete payout: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPayoutNotFound
	}

	return nil
}

func (r *PayoutRepository) queryMembers(ctx context.Context, query string, arg string) ([]domain.PayoutMember, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select payout members: %w", err)
	}
	defer rows.Close()

	var members []domain.PayoutMember
	for rows.Next() {
		var m domain.PayoutMember
		if err := rows.Scan(&m.PayoutID, &m.User.UserID, &m.User.Name, &m.User.Email, &m.Amount, &m.Notes); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func scanPayout(row pgx.Row) (*domain.Payout, error) {
	var (
		p      domain.Payout
		status string
	)
	err := row.Scan(
		&p.PayoutID,
		&p.ProjectID,
		&p.Title,
		&p.TotalAmount,
		&p.PayoutDate,
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

	p.Status = domain.PayoutStatus(status)
	p.Members = []domain.PayoutMember{}
	return &p, nil
}
