package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implements the WarehouseRepository port on PostgreSQL
// (usable with pool or tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository builds the persistence adapter for warehouses and
// kunchinittus. Pass pool or tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persists a new warehouse.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, address, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, w.ID, w.Code, w.Name, w.Address, w.Active, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByCode fetches a warehouse by code.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	query := `SELECT id, code, name, address, active, created_at FROM warehouses WHERE code = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update rewrites the editable warehouse fields.
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `UPDATE warehouses SET name = $2, address = $3, active = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, w.ID, w.Name, w.Address, w.Active)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all warehouses ordered by code.
func (r *WarehouseRepo) List() ([]entity.Warehouse, error) {
	query := `SELECT id, code, name, address, active, created_at FROM warehouses ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warehouses: %w", err)
	}
	return out, nil
}

// Delete removes a warehouse.
func (r *WarehouseRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateStorageUnit persists a new kunchinittu.
func (r *WarehouseRepo) CreateStorageUnit(u *entity.StorageUnit) error {
	query := `
		INSERT INTO storage_units (id, code, warehouse_id, warehouse_code, capacity_bags, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Code, u.WarehouseID, u.WarehouseCode, u.CapacityBags, u.Active, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage unit: %w", err)
	}
	return nil
}

// GetStorageUnitByCode fetches a kunchinittu by warehouse and unit code.
func (r *WarehouseRepo) GetStorageUnitByCode(warehouseCode, code string) (*entity.StorageUnit, error) {
	query := `
		SELECT id, code, warehouse_id, warehouse_code, capacity_bags, active, created_at
		FROM storage_units WHERE warehouse_code = $1 AND code = $2`
	var u entity.StorageUnit
	err := r.q.QueryRow(context.Background(), query, warehouseCode, code).Scan(
		&u.ID, &u.Code, &u.WarehouseID, &u.WarehouseCode, &u.CapacityBags, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get storage unit: %w", err)
	}
	return &u, nil
}

// ListStorageUnits returns the kunchinittus of a warehouse ordered by code.
func (r *WarehouseRepo) ListStorageUnits(warehouseCode string) ([]entity.StorageUnit, error) {
	query := `
		SELECT id, code, warehouse_id, warehouse_code, capacity_bags, active, created_at
		FROM storage_units WHERE warehouse_code = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, warehouseCode)
	if err != nil {
		return nil, fmt.Errorf("list storage units: %w", err)
	}
	defer rows.Close()

	var out []entity.StorageUnit
	for rows.Next() {
		var u entity.StorageUnit
		if err := rows.Scan(&u.ID, &u.Code, &u.WarehouseID, &u.WarehouseCode, &u.CapacityBags, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan storage unit: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage units: %w", err)
	}
	return out, nil
}
