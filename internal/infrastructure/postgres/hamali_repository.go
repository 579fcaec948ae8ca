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

var _ repository.HamaliRepository = (*HamaliRepo)(nil)

// HamaliRepo implements the HamaliRepository port on PostgreSQL (usable with
// pool or tx).
type HamaliRepo struct {
	q Querier
}

// NewHamaliRepository builds the persistence adapter for hamali rates and
// entries. Pass pool or tx (Querier).
func NewHamaliRepository(q Querier) *HamaliRepo {
	return &HamaliRepo{q: q}
}

// CreateRate persists a new per-bag rate effective from a date.
func (r *HamaliRepo) CreateRate(rate *entity.HamaliRate) error {
	query := `
		INSERT INTO hamali_rates (id, work_type, rate_per_bag, effective_from, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.WorkType, rate.RatePerBag, rate.EffectiveFrom, rate.CreatedAt, rate.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert hamali rate: %w", err)
	}
	return nil
}

// RateFor returns the rate effective for the work type on the given day: the
// latest rate with effective_from on or before it.
func (r *HamaliRepo) RateFor(workType entity.HamaliWorkType, day time.Time) (*entity.HamaliRate, error) {
	query := `
		SELECT id, work_type, rate_per_bag, effective_from, created_at, created_by
		FROM hamali_rates
		WHERE work_type = $1 AND effective_from <= $2
		ORDER BY effective_from DESC
		LIMIT 1`
	var rate entity.HamaliRate
	err := r.q.QueryRow(context.Background(), query, workType, day).Scan(
		&rate.ID, &rate.WorkType, &rate.RatePerBag, &rate.EffectiveFrom, &rate.CreatedAt, &rate.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get hamali rate: %w", err)
	}
	return &rate, nil
}

// ListRates returns the rate history for a work type, newest first.
func (r *HamaliRepo) ListRates(workType entity.HamaliWorkType) ([]entity.HamaliRate, error) {
	query := `
		SELECT id, work_type, rate_per_bag, effective_from, created_at, created_by
		FROM hamali_rates WHERE work_type = $1
		ORDER BY effective_from DESC`
	rows, err := r.q.Query(context.Background(), query, workType)
	if err != nil {
		return nil, fmt.Errorf("list hamali rates: %w", err)
	}
	defer rows.Close()

	var out []entity.HamaliRate
	for rows.Next() {
		var rate entity.HamaliRate
		if err := rows.Scan(&rate.ID, &rate.WorkType, &rate.RatePerBag, &rate.EffectiveFrom, &rate.CreatedAt, &rate.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan hamali rate: %w", err)
		}
		out = append(out, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hamali rates: %w", err)
	}
	return out, nil
}

// CreateEntry persists a labor entry with its frozen amount.
func (r *HamaliRepo) CreateEntry(e *entity.HamaliEntry) error {
	query := `
		INSERT INTO hamali_entries (id, date, work_type, gang, bags, rate_per_bag, amount, remarks, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Date, e.WorkType, e.Gang, e.Bags, e.RatePerBag, e.Amount, e.Remarks, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert hamali entry: %w", err)
	}
	return nil
}

// GetEntryByID fetches a labor entry by ID.
func (r *HamaliRepo) GetEntryByID(id string) (*entity.HamaliEntry, error) {
	query := `
		SELECT id, date, work_type, gang, bags, rate_per_bag, amount, remarks, created_at, created_by
		FROM hamali_entries WHERE id = $1`
	var e entity.HamaliEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Date, &e.WorkType, &e.Gang, &e.Bags, &e.RatePerBag, &e.Amount, &e.Remarks, &e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get hamali entry: %w", err)
	}
	return &e, nil
}

// ListEntriesByDateRange lists labor entries in a date window, oldest first.
func (r *HamaliRepo) ListEntriesByDateRange(from, to time.Time) ([]entity.HamaliEntry, error) {
	query := `
		SELECT id, date, work_type, gang, bags, rate_per_bag, amount, remarks, created_at, created_by
		FROM hamali_entries
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list hamali entries: %w", err)
	}
	defer rows.Close()

	var out []entity.HamaliEntry
	for rows.Next() {
		var e entity.HamaliEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.WorkType, &e.Gang, &e.Bags, &e.RatePerBag, &e.Amount, &e.Remarks, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan hamali entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hamali entries: %w", err)
	}
	return out, nil
}

// DeleteEntry removes a labor entry.
func (r *HamaliRepo) DeleteEntry(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM hamali_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hamali entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
