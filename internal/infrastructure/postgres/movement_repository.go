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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, date, type, variety, bags,
	from_warehouse, from_storage_unit, to_warehouse, to_storage_unit,
	outturn_code, lorry_number, bill_number,
	status, approved_by, admin_approved_by, created_at, created_by`

// MovementRepo implements the MovementRepository port on PostgreSQL (usable
// with pool or tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the persistence adapter for paddy movements.
// Pass pool or tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persists a new movement in pending status.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	fromWh, fromSU := locationColumns(m.From)
	toWh, toSU := locationColumns(m.To)
	_, err := r.q.Exec(context.Background(), query,
		m.ID, nullDay(m.Date), m.Type, m.Variety, m.Bags,
		fromWh, fromSU, toWh, toSU,
		m.OutturnCode, m.LorryNumber, m.BillNumber,
		m.Status, m.ApprovedBy, m.AdminApprovedBy, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID fetches a movement by ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update rewrites the approval fields. Quantity, type and date are immutable
// after creation.
func (r *MovementRepo) Update(m *entity.Movement) error {
	query := `
		UPDATE movements
		SET status = $2, approved_by = $3, admin_approved_by = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, m.ID, m.Status, m.ApprovedBy, m.AdminApprovedBy)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListUpTo returns every movement dated on or before the given day, oldest
// first. Undated records are included last so the ledger can report them.
func (r *MovementRepo) ListUpTo(to time.Time) ([]entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE date IS NULL OR date <= $1
		ORDER BY date NULLS LAST, id`
	rows, err := r.q.Query(context.Background(), query, to)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return collectMovements(rows)
}

// ListByDateRange lists movements within a date window, newest first.
func (r *MovementRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by range: %w", err)
	}
	return collectMovements(rows)
}

// ListByStatus lists movements in an approval state, oldest first (approval
// queues are worked front to back).
func (r *MovementRepo) ListByStatus(status entity.Status, limit, offset int) ([]entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE status = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by status: %w", err)
	}
	return collectMovements(rows)
}

// Delete removes a movement.
func (r *MovementRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─── row mapping ──────────────────────────────────────────────────────────────

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var date *time.Time
	var fromWh, fromSU, toWh, toSU *string
	err := row.Scan(
		&m.ID, &date, &m.Type, &m.Variety, &m.Bags,
		&fromWh, &fromSU, &toWh, &toSU,
		&m.OutturnCode, &m.LorryNumber, &m.BillNumber,
		&m.Status, &m.ApprovedBy, &m.AdminApprovedBy, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if date != nil {
		m.Date = *date
	}
	m.From = locationFromColumns(fromWh, fromSU)
	m.To = locationFromColumns(toWh, toSU)
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]entity.Movement, error) {
	defer rows.Close()
	var out []entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}

func locationColumns(l *entity.Location) (warehouse, storageUnit *string) {
	if l == nil {
		return nil, nil
	}
	return &l.Warehouse, &l.StorageUnit
}

func locationFromColumns(warehouse, storageUnit *string) *entity.Location {
	if warehouse == nil && storageUnit == nil {
		return nil
	}
	l := entity.Location{}
	if warehouse != nil {
		l.Warehouse = *warehouse
	}
	if storageUnit != nil {
		l.StorageUnit = *storageUnit
	}
	return &l
}

// nullDay maps the zero time to NULL; the ledger treats undated records as
// data-quality problems, not epoch dates.
func nullDay(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
