package entity

import "time"

// Outturn represents one milling run of a specific paddy variety.
// It transitions to cleared exactly once; clearing again is a no-op.
type Outturn struct {
	Code            string // unique human identifier, e.g. "OUT-2024-017"
	AllottedVariety string
	Type            string // milling type, e.g. "steam", "raw"
	IsCleared       bool
	ClearedAt       *time.Time // clearing date (calendar day), nil while open
	CreatedAt       time.Time
	CreatedBy       string
}

// ClearedBefore reports whether the outturn was cleared strictly before day.
// An outturn cleared exactly on day still counts for that day.
func (o *Outturn) ClearedBefore(day time.Time) bool {
	return o.IsCleared && o.ClearedAt != nil && o.ClearedAt.Before(day)
}

// ClearedOnOrBefore reports whether the outturn was cleared on day or earlier.
func (o *Outturn) ClearedOnOrBefore(day time.Time) bool {
	return o.IsCleared && o.ClearedAt != nil && !o.ClearedAt.After(day)
}
