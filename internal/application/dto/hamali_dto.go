package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateHamaliRateRequest input to set a per-bag labor rate from a date.
type CreateHamaliRateRequest struct {
	WorkType      string          `json:"work_type" validate:"required"`
	RatePerBag    decimal.Decimal `json:"rate_per_bag" validate:"required"`
	EffectiveFrom string          `json:"effective_from" validate:"required"`
}

// HamaliRateResponse output for a labor rate.
type HamaliRateResponse struct {
	ID            string          `json:"id"`
	WorkType      string          `json:"work_type"`
	RatePerBag    decimal.Decimal `json:"rate_per_bag"`
	EffectiveFrom string          `json:"effective_from"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// HamaliRateListResponse rate history for a work type.
type HamaliRateListResponse struct {
	Items []HamaliRateResponse `json:"items"`
}

// CreateHamaliEntryRequest input to record labor done on a date. The amount
// is computed server-side from the rate effective that day and frozen.
type CreateHamaliEntryRequest struct {
	Date     string `json:"date" validate:"required"`
	WorkType string `json:"work_type" validate:"required"`
	Gang     string `json:"gang" validate:"required"`
	Bags     int    `json:"bags" validate:"required,gt=0"`
	Remarks  string `json:"remarks,omitempty"`
}

// HamaliEntryResponse output for a labor entry.
type HamaliEntryResponse struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	WorkType   string          `json:"work_type"`
	Gang       string          `json:"gang"`
	Bags       int             `json:"bags"`
	RatePerBag decimal.Decimal `json:"rate_per_bag"`
	Amount     decimal.Decimal `json:"amount"`
	Remarks    string          `json:"remarks,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by"`
}

// HamaliEntryListResponse labor entries plus the period total.
type HamaliEntryListResponse struct {
	Items       []HamaliEntryResponse `json:"items"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
}
