package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRiceProductionRequest input to record produced rice. The quantity in
// quintals is derived server-side from bags x bag size; clients never send it.
type CreateRiceProductionRequest struct {
	Date         string `json:"date" validate:"required"`
	OutturnCode  string `json:"outturn_code" validate:"required"`
	Product      string `json:"product" validate:"required"`
	Bags         int    `json:"bags" validate:"required,gt=0"`
	PackagingID  string `json:"packaging_id,omitempty"`
	Packaging    string `json:"packaging,omitempty"`
	BagSizeKg    int    `json:"bag_size_kg" validate:"required,gt=0"`
	MovementType string `json:"movement_type" validate:"required"`
	LocationCode string `json:"location_code,omitempty"`
	LorryNumber  string `json:"lorry_number,omitempty"`
	BillNumber   string `json:"bill_number,omitempty"`
}

// RiceProductionResponse output for a rice production entry.
type RiceProductionResponse struct {
	ID           string          `json:"id"`
	Date         string          `json:"date,omitempty"`
	OutturnCode  string          `json:"outturn_code"`
	Product      string          `json:"product"`
	Bags         int             `json:"bags"`
	QuantityQtls decimal.Decimal `json:"quantity_qtls"`
	PackagingID  string          `json:"packaging_id,omitempty"`
	Packaging    string          `json:"packaging,omitempty"`
	BagSizeKg    int             `json:"bag_size_kg"`
	MovementType string          `json:"movement_type"`
	LocationCode string          `json:"location_code,omitempty"`
	LorryNumber  string          `json:"lorry_number,omitempty"`
	BillNumber   string          `json:"bill_number,omitempty"`
	Status       string          `json:"status"`
	ApprovedBy   string          `json:"approved_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
}

// RiceProductionListResponse paginated list of rice production entries.
type RiceProductionListResponse struct {
	Items []RiceProductionResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
