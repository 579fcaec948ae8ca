package dto

import "time"

// CreateOutturnRequest input to open a milling run.
type CreateOutturnRequest struct {
	Code            string `json:"code" validate:"required"`
	AllottedVariety string `json:"allotted_variety" validate:"required"`
	Type            string `json:"type,omitempty"`
}

// ClearOutturnRequest input to clear an outturn. Date is YYYY-MM-DD;
// defaults to today when omitted.
type ClearOutturnRequest struct {
	Date string `json:"date,omitempty"`
}

// OutturnResponse output for an outturn.
type OutturnResponse struct {
	Code            string     `json:"code"`
	AllottedVariety string     `json:"allotted_variety"`
	Type            string     `json:"type,omitempty"`
	IsCleared       bool       `json:"is_cleared"`
	ClearedAt       *time.Time `json:"cleared_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CreatedBy       string     `json:"created_by"`
}

// OutturnListResponse list of outturns.
type OutturnListResponse struct {
	Items []OutturnResponse `json:"items"`
}
