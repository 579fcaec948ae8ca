package dto

import "time"

// LocationDTO a kunchinittu inside a warehouse.
type LocationDTO struct {
	Warehouse   string `json:"warehouse"`
	StorageUnit string `json:"storage_unit"`
}

// CreateMovementRequest input to record a paddy movement. Dates are
// YYYY-MM-DD; the entry lands in pending status.
type CreateMovementRequest struct {
	Date        string       `json:"date" validate:"required"`
	Type        string       `json:"type" validate:"required"`
	Variety     string       `json:"variety" validate:"required"`
	Bags        int          `json:"bags" validate:"required,gt=0"`
	From        *LocationDTO `json:"from,omitempty"`
	To          *LocationDTO `json:"to,omitempty"`
	OutturnCode string       `json:"outturn_code,omitempty"`
	LorryNumber string       `json:"lorry_number,omitempty"`
	BillNumber  string       `json:"bill_number,omitempty"`
}

// MovementResponse output for a paddy movement.
type MovementResponse struct {
	ID              string       `json:"id"`
	Date            string       `json:"date,omitempty"`
	Type            string       `json:"type"`
	Variety         string       `json:"variety"`
	Bags            int          `json:"bags"`
	From            *LocationDTO `json:"from,omitempty"`
	To              *LocationDTO `json:"to,omitempty"`
	OutturnCode     string       `json:"outturn_code,omitempty"`
	LorryNumber     string       `json:"lorry_number,omitempty"`
	BillNumber      string       `json:"bill_number,omitempty"`
	Status          string       `json:"status"`
	ApprovedBy      string       `json:"approved_by,omitempty"`
	AdminApprovedBy string       `json:"admin_approved_by,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	CreatedBy       string       `json:"created_by"`
}

// MovementListResponse paginated list of movements.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
