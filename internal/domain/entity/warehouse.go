package entity

import "time"

// Warehouse is a physical godown holding paddy and rice.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
}

// StorageUnit is a kunchinittu: a named storage sub-unit inside a warehouse.
// It is the base unit for warehouse stock keys.
type StorageUnit struct {
	ID            string
	Code          string
	WarehouseID   string
	WarehouseCode string
	CapacityBags  int // 0 = untracked
	Active        bool
	CreatedAt     time.Time
}
