package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

var _ repository.OutturnRepository = (*OutturnRepo)(nil)

const outturnColumns = `code, allotted_variety, type, is_cleared, cleared_at, created_at, created_by`

// OutturnRepo implements the OutturnRepository port on PostgreSQL (usable
// with pool or tx).
type OutturnRepo struct {
	q Querier
}

// NewOutturnRepository builds the persistence adapter for outturns. Pass pool
// or tx (Querier).
func NewOutturnRepository(q Querier) *OutturnRepo {
	return &OutturnRepo{q: q}
}

// Create persists a new outturn.
func (r *OutturnRepo) Create(o *entity.Outturn) error {
	query := `
		INSERT INTO outturns (` + outturnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		o.Code, o.AllottedVariety, o.Type, o.IsCleared, o.ClearedAt, o.CreatedAt, o.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outturn: %w", err)
	}
	return nil
}

// GetByCode fetches an outturn by code.
func (r *OutturnRepo) GetByCode(code string) (*entity.Outturn, error) {
	query := `SELECT ` + outturnColumns + ` FROM outturns WHERE code = $1`
	o, err := scanOutturn(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get outturn: %w", err)
	}
	return o, nil
}

// MarkCleared flips the outturn to cleared as of the given day. The WHERE
// guard keeps the write idempotent at the database level too.
func (r *OutturnRepo) MarkCleared(code string, clearedAt time.Time, clearedBy string) error {
	query := `
		UPDATE outturns
		SET is_cleared = TRUE, cleared_at = $2
		WHERE code = $1 AND is_cleared = FALSE`
	tag, err := r.q.Exec(context.Background(), query, code, clearedAt)
	if err != nil {
		return fmt.Errorf("mark outturn cleared: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns outturns, optionally including cleared ones, oldest first.
func (r *OutturnRepo) List(includeCleared bool) ([]entity.Outturn, error) {
	query := `SELECT ` + outturnColumns + ` FROM outturns ORDER BY created_at, code`
	if !includeCleared {
		query = `SELECT ` + outturnColumns + ` FROM outturns WHERE is_cleared = FALSE ORDER BY created_at, code`
	}
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list outturns: %w", err)
	}
	defer rows.Close()

	var out []entity.Outturn
	for rows.Next() {
		o, err := scanOutturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outturn: %w", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outturns: %w", err)
	}
	return out, nil
}

// Delete removes an outturn.
func (r *OutturnRepo) Delete(code string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM outturns WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete outturn: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOutturn(row pgx.Row) (*entity.Outturn, error) {
	var o entity.Outturn
	err := row.Scan(&o.Code, &o.AllottedVariety, &o.Type, &o.IsCleared, &o.ClearedAt, &o.CreatedAt, &o.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
