package usecase_test

import (
	"context"
	"sort"
	"time"

	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory repositories for usecase tests
// ──────────────────────────────────────────────────────────────────────────────

type memMovementRepo struct {
	items map[string]entity.Movement
}

func newMemMovementRepo() *memMovementRepo {
	return &memMovementRepo{items: map[string]entity.Movement{}}
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.items[m.ID] = *m
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *memMovementRepo) Update(m *entity.Movement) error {
	if _, ok := r.items[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[m.ID] = *m
	return nil
}

func (r *memMovementRepo) ListUpTo(to time.Time) ([]entity.Movement, error) {
	var out []entity.Movement
	for _, m := range r.items {
		if m.Date.IsZero() || !m.Date.After(to) {
			out = append(out, m)
		}
	}
	sortMovements(out)
	return out, nil
}

func (r *memMovementRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]entity.Movement, error) {
	var out []entity.Movement
	for _, m := range r.items {
		if !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	sortMovements(out)
	return page(out, limit, offset), nil
}

func (r *memMovementRepo) ListByStatus(status entity.Status, limit, offset int) ([]entity.Movement, error) {
	var out []entity.Movement
	for _, m := range r.items {
		if m.Status == status {
			out = append(out, m)
		}
	}
	sortMovements(out)
	return page(out, limit, offset), nil
}

func (r *memMovementRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func sortMovements(ms []entity.Movement) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].Date.Equal(ms[j].Date) {
			return ms[i].Date.Before(ms[j].Date)
		}
		return ms[i].ID < ms[j].ID
	})
}

type memProductionRepo struct {
	items map[string]entity.RiceProductionEntry
}

func newMemProductionRepo() *memProductionRepo {
	return &memProductionRepo{items: map[string]entity.RiceProductionEntry{}}
}

func (r *memProductionRepo) Create(e *entity.RiceProductionEntry) error {
	r.items[e.ID] = *e
	return nil
}

func (r *memProductionRepo) GetByID(id string) (*entity.RiceProductionEntry, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *memProductionRepo) Update(e *entity.RiceProductionEntry) error {
	if _, ok := r.items[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[e.ID] = *e
	return nil
}

func (r *memProductionRepo) ListUpTo(to time.Time) ([]entity.RiceProductionEntry, error) {
	var out []entity.RiceProductionEntry
	for _, e := range r.items {
		if e.Date.IsZero() || !e.Date.After(to) {
			out = append(out, e)
		}
	}
	sortProductions(out)
	return out, nil
}

func (r *memProductionRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]entity.RiceProductionEntry, error) {
	var out []entity.RiceProductionEntry
	for _, e := range r.items {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	sortProductions(out)
	return page(out, limit, offset), nil
}

func (r *memProductionRepo) ListByOutturn(outturnCode string) ([]entity.RiceProductionEntry, error) {
	var out []entity.RiceProductionEntry
	for _, e := range r.items {
		if e.OutturnCode == outturnCode {
			out = append(out, e)
		}
	}
	sortProductions(out)
	return out, nil
}

func (r *memProductionRepo) ListByStatus(status entity.Status, limit, offset int) ([]entity.RiceProductionEntry, error) {
	var out []entity.RiceProductionEntry
	for _, e := range r.items {
		if e.Status == status {
			out = append(out, e)
		}
	}
	sortProductions(out)
	return page(out, limit, offset), nil
}

func (r *memProductionRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func sortProductions(es []entity.RiceProductionEntry) {
	sort.Slice(es, func(i, j int) bool {
		if !es[i].Date.Equal(es[j].Date) {
			return es[i].Date.Before(es[j].Date)
		}
		return es[i].ID < es[j].ID
	})
}

type memOutturnRepo struct {
	items map[string]entity.Outturn
}

func newMemOutturnRepo() *memOutturnRepo {
	return &memOutturnRepo{items: map[string]entity.Outturn{}}
}

func (r *memOutturnRepo) Create(o *entity.Outturn) error {
	if _, ok := r.items[o.Code]; ok {
		return domain.ErrDuplicate
	}
	r.items[o.Code] = *o
	return nil
}

func (r *memOutturnRepo) GetByCode(code string) (*entity.Outturn, error) {
	o, ok := r.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *memOutturnRepo) MarkCleared(code string, clearedAt time.Time, clearedBy string) error {
	o, ok := r.items[code]
	if !ok {
		return domain.ErrNotFound
	}
	o.IsCleared = true
	o.ClearedAt = &clearedAt
	r.items[code] = o
	return nil
}

func (r *memOutturnRepo) List(includeCleared bool) ([]entity.Outturn, error) {
	var out []entity.Outturn
	for _, o := range r.items {
		if includeCleared || !o.IsCleared {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memOutturnRepo) Delete(code string) error {
	if _, ok := r.items[code]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, code)
	return nil
}

// memTxRunner runs the callback directly against the same in-memory repos;
// there is nothing to roll back in tests.
type memTxRunner struct {
	outturns    *memOutturnRepo
	productions *memProductionRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	outturns repository.OutturnRepository,
	productions repository.RiceProductionRepository,
) error) error {
	return fn(t.outturns, t.productions)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
