package repository

import "github.com/motherindia/millstock-api/internal/domain/entity"

// WarehouseRepository defines the persistence port for warehouses and their
// kunchinittus (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByCode(code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List() ([]entity.Warehouse, error)
	Delete(id string) error

	CreateStorageUnit(unit *entity.StorageUnit) error
	GetStorageUnitByCode(warehouseCode, code string) (*entity.StorageUnit, error)
	ListStorageUnits(warehouseCode string) ([]entity.StorageUnit, error)
}
