package dto

import "time"

// CreateWarehouseRequest input to register a godown.
type CreateWarehouseRequest struct {
	Code    string `json:"code" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
}

// WarehouseResponse output for a warehouse.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// WarehouseListResponse list of warehouses.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}

// CreateStorageUnitRequest input to register a kunchinittu in a warehouse.
type CreateStorageUnitRequest struct {
	Code         string `json:"code" validate:"required"`
	CapacityBags int    `json:"capacity_bags,omitempty"`
}

// StorageUnitResponse output for a kunchinittu.
type StorageUnitResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	WarehouseCode string    `json:"warehouse_code"`
	CapacityBags  int       `json:"capacity_bags,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// StorageUnitListResponse list of kunchinittus.
type StorageUnitListResponse struct {
	Items []StorageUnitResponse `json:"items"`
}
