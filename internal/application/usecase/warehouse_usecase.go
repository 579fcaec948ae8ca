package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

// WarehouseUseCase manages godowns and their kunchinittus.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
}

// NewWarehouseUseCase builds the usecase.
func NewWarehouseUseCase(warehouses repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses}
}

// Create registers a new godown.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.warehouses.Create(w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// GetByCode fetches a warehouse.
func (uc *WarehouseUseCase) GetByCode(code string) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouses.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// List returns all warehouses.
func (uc *WarehouseUseCase) List() (*dto.WarehouseListResponse, error) {
	list, err := uc.warehouses.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for i := range list {
		items = append(items, *toWarehouseResponse(&list[i]))
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

// CreateStorageUnit registers a kunchinittu in a warehouse.
func (uc *WarehouseUseCase) CreateStorageUnit(warehouseCode string, in dto.CreateStorageUnitRequest) (*dto.StorageUnitResponse, error) {
	if in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouses.GetByCode(warehouseCode)
	if err != nil {
		return nil, err
	}
	u := &entity.StorageUnit{
		ID:            uuid.New().String(),
		Code:          in.Code,
		WarehouseID:   w.ID,
		WarehouseCode: w.Code,
		CapacityBags:  in.CapacityBags,
		Active:        true,
		CreatedAt:     time.Now(),
	}
	if err := uc.warehouses.CreateStorageUnit(u); err != nil {
		return nil, err
	}
	return toStorageUnitResponse(u), nil
}

// ListStorageUnits returns the kunchinittus of a warehouse.
func (uc *WarehouseUseCase) ListStorageUnits(warehouseCode string) (*dto.StorageUnitListResponse, error) {
	list, err := uc.warehouses.ListStorageUnits(warehouseCode)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageUnitResponse, 0, len(list))
	for i := range list {
		items = append(items, *toStorageUnitResponse(&list[i]))
	}
	return &dto.StorageUnitListResponse{Items: items}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
	}
}

func toStorageUnitResponse(u *entity.StorageUnit) *dto.StorageUnitResponse {
	return &dto.StorageUnitResponse{
		ID:            u.ID,
		Code:          u.Code,
		WarehouseCode: u.WarehouseCode,
		CapacityBags:  u.CapacityBags,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
	}
}
