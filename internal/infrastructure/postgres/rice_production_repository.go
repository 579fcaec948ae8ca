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

var _ repository.RiceProductionRepository = (*RiceProductionRepo)(nil)

const riceProductionColumns = `id, date, outturn_code, product, bags, quantity_qtls,
	packaging_id, packaging, bag_size_kg, movement_type, location_code,
	lorry_number, bill_number, status, approved_by, created_at, created_by`

// RiceProductionRepo implements the RiceProductionRepository port on
// PostgreSQL (usable with pool or tx).
type RiceProductionRepo struct {
	q Querier
}

// NewRiceProductionRepository builds the persistence adapter for rice
// production entries. Pass pool or tx (Querier).
func NewRiceProductionRepository(q Querier) *RiceProductionRepo {
	return &RiceProductionRepo{q: q}
}

// Create persists a new rice production entry.
func (r *RiceProductionRepo) Create(e *entity.RiceProductionEntry) error {
	query := `
		INSERT INTO rice_productions (` + riceProductionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, nullDay(e.Date), e.OutturnCode, e.Product, e.Bags, e.QuantityQtls,
		e.PackagingID, e.Packaging, e.BagSizeKg, e.MovementType, e.LocationCode,
		e.LorryNumber, e.BillNumber, e.Status, e.ApprovedBy, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rice production: %w", err)
	}
	return nil
}

// GetByID fetches an entry by ID.
func (r *RiceProductionRepo) GetByID(id string) (*entity.RiceProductionEntry, error) {
	query := `SELECT ` + riceProductionColumns + ` FROM rice_productions WHERE id = $1`
	e, err := scanRiceProduction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rice production: %w", err)
	}
	return e, nil
}

// Update rewrites the approval fields.
func (r *RiceProductionRepo) Update(e *entity.RiceProductionEntry) error {
	query := `
		UPDATE rice_productions
		SET status = $2, approved_by = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, e.ID, e.Status, e.ApprovedBy)
	if err != nil {
		return fmt.Errorf("update rice production: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListUpTo returns every entry dated on or before the given day, oldest
// first, including clearing write-offs.
func (r *RiceProductionRepo) ListUpTo(to time.Time) ([]entity.RiceProductionEntry, error) {
	query := `
		SELECT ` + riceProductionColumns + ` FROM rice_productions
		WHERE date IS NULL OR date <= $1
		ORDER BY date NULLS LAST, id`
	rows, err := r.q.Query(context.Background(), query, to)
	if err != nil {
		return nil, fmt.Errorf("list rice productions: %w", err)
	}
	return collectRiceProductions(rows)
}

// ListByDateRange lists entries within a date window, newest first.
func (r *RiceProductionRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]entity.RiceProductionEntry, error) {
	query := `
		SELECT ` + riceProductionColumns + ` FROM rice_productions
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rice productions by range: %w", err)
	}
	return collectRiceProductions(rows)
}

// ListByOutturn lists every entry recorded against an outturn, oldest first.
func (r *RiceProductionRepo) ListByOutturn(outturnCode string) ([]entity.RiceProductionEntry, error) {
	query := `
		SELECT ` + riceProductionColumns + ` FROM rice_productions
		WHERE outturn_code = $1
		ORDER BY date NULLS LAST, id`
	rows, err := r.q.Query(context.Background(), query, outturnCode)
	if err != nil {
		return nil, fmt.Errorf("list rice productions by outturn: %w", err)
	}
	return collectRiceProductions(rows)
}

// ListByStatus lists entries in an approval state, oldest first.
func (r *RiceProductionRepo) ListByStatus(status entity.Status, limit, offset int) ([]entity.RiceProductionEntry, error) {
	query := `
		SELECT ` + riceProductionColumns + ` FROM rice_productions
		WHERE status = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rice productions by status: %w", err)
	}
	return collectRiceProductions(rows)
}

// Delete removes an entry.
func (r *RiceProductionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM rice_productions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rice production: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─── row mapping ──────────────────────────────────────────────────────────────

func scanRiceProduction(row pgx.Row) (*entity.RiceProductionEntry, error) {
	var e entity.RiceProductionEntry
	var date *time.Time
	err := row.Scan(
		&e.ID, &date, &e.OutturnCode, &e.Product, &e.Bags, &e.QuantityQtls,
		&e.PackagingID, &e.Packaging, &e.BagSizeKg, &e.MovementType, &e.LocationCode,
		&e.LorryNumber, &e.BillNumber, &e.Status, &e.ApprovedBy, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if date != nil {
		e.Date = *date
	}
	return &e, nil
}

func collectRiceProductions(rows pgx.Rows) ([]entity.RiceProductionEntry, error) {
	defer rows.Close()
	var out []entity.RiceProductionEntry
	for rows.Next() {
		e, err := scanRiceProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rice production: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rice productions: %w", err)
	}
	return out, nil
}
