package dto

import "github.com/shopspring/decimal"

// Report DTOs mirror the ledger engine output. Dates are YYYY-MM-DD strings
// so the frontend never parses timezones.

// DiagnosticDTO one advisory finding from a ledger replay.
type DiagnosticDTO struct {
	Kind     string `json:"kind"`
	Date     string `json:"date,omitempty"`
	RecordID string `json:"record_id,omitempty"`
	Message  string `json:"message"`
}

// WarehouseLineDTO bags of a variety in a kunchinittu.
type WarehouseLineDTO struct {
	Variety     string `json:"variety"`
	Warehouse   string `json:"warehouse"`
	StorageUnit string `json:"storage_unit"`
	Bags        int    `json:"bags"`
}

// ProductionLineDTO bags of a variety standing against an outturn.
type ProductionLineDTO struct {
	Variety     string `json:"variety"`
	OutturnCode string `json:"outturn_code"`
	Bags        int    `json:"bags"`
}

// PaddyMovementLineDTO one applied movement delta.
type PaddyMovementLineDTO struct {
	RecordID    string       `json:"record_id"`
	Variety     string       `json:"variety"`
	Bags        int          `json:"bags"`
	From        *LocationDTO `json:"from,omitempty"`
	To          *LocationDTO `json:"to,omitempty"`
	OutturnCode string       `json:"outturn_code,omitempty"`
}

// PaddyConsumptionLineDTO paddy deducted by a rice production entry.
type PaddyConsumptionLineDTO struct {
	RecordID     string `json:"record_id"`
	OutturnCode  string `json:"outturn_code"`
	Product      string `json:"product"`
	BagsDeducted int    `json:"bags_deducted"`
}

// PaddyMovementsDTO one day's movements grouped by kind.
type PaddyMovementsDTO struct {
	Purchase           []PaddyMovementLineDTO    `json:"purchase,omitempty"`
	Shifting           []PaddyMovementLineDTO    `json:"shifting,omitempty"`
	ProductionShifting []PaddyMovementLineDTO    `json:"production_shifting,omitempty"`
	Loading            []PaddyMovementLineDTO    `json:"loading,omitempty"`
	RiceProduction     []PaddyConsumptionLineDTO `json:"rice_production,omitempty"`
}

// PaddyDayDTO the paddy statement for one date.
type PaddyDayDTO struct {
	Date              string              `json:"date"`
	OpeningWarehouse  []WarehouseLineDTO  `json:"opening_warehouse"`
	OpeningProduction []ProductionLineDTO `json:"opening_production"`
	Movements         PaddyMovementsDTO   `json:"movements"`
	ClosingWarehouse  []WarehouseLineDTO  `json:"closing_warehouse"`
	ClosingProduction []ProductionLineDTO `json:"closing_production"`
	OpeningTotal      int                 `json:"opening_total"`
	ClosingTotal      int                 `json:"closing_total"`
}

// WorkingLineDTO month-to-date production figure for an outturn.
type WorkingLineDTO struct {
	OutturnCode   string `json:"outturn_code"`
	ShiftedBags   int    `json:"shifted_bags"`
	ConsumedBags  int    `json:"consumed_bags"`
	RemainingBags int    `json:"remaining_bags"`
}

// PaddyStockReportResponse the paddy ledger for a date range.
type PaddyStockReportResponse struct {
	From                  string           `json:"from"`
	To                    string           `json:"to"`
	Days                  []PaddyDayDTO    `json:"days"`
	MonthToDateProduction []WorkingLineDTO `json:"month_to_date_production"`
	Diagnostics           []DiagnosticDTO  `json:"diagnostics,omitempty"`
}

// RiceLineDTO one rice stock line or movement delta.
type RiceLineDTO struct {
	Product      string          `json:"product"`
	Packaging    string          `json:"packaging,omitempty"`
	BagSizeKg    int             `json:"bag_size_kg,omitempty"`
	Location     string          `json:"location,omitempty"`
	OutturnCode  string          `json:"outturn_code,omitempty"`
	QuantityQtls decimal.Decimal `json:"quantity_qtls"`
	Bags         int             `json:"bags"`
}

// RiceMovementsDTO one day's rice movements.
type RiceMovementsDTO struct {
	Kunchinittu []RiceLineDTO `json:"kunchinittu,omitempty"`
	Loading     []RiceLineDTO `json:"loading,omitempty"`
}

// RiceDayDTO the rice statement for one date.
type RiceDayDTO struct {
	Date             string           `json:"date"`
	Opening          []RiceLineDTO    `json:"opening"`
	Movements        RiceMovementsDTO `json:"movements"`
	Closing          []RiceLineDTO    `json:"closing"`
	OpeningTotalQtls decimal.Decimal  `json:"opening_total_qtls"`
	ClosingTotalQtls decimal.Decimal  `json:"closing_total_qtls"`
}

// RiceStockReportResponse the rice ledger for a date range.
type RiceStockReportResponse struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Days        []RiceDayDTO    `json:"days"`
	Diagnostics []DiagnosticDTO `json:"diagnostics,omitempty"`
}
