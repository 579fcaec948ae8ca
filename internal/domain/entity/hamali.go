package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HamaliWorkType kinds of manual labor billed by bag count.
type HamaliWorkType string

const (
	HamaliLoading   HamaliWorkType = "loading"
	HamaliUnloading HamaliWorkType = "unloading"
	HamaliShifting  HamaliWorkType = "shifting"
	HamaliStacking  HamaliWorkType = "stacking"
)

// HamaliRate is the per-bag rate for a work type, effective from a date.
type HamaliRate struct {
	ID            string
	WorkType      HamaliWorkType
	RatePerBag    decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
	CreatedBy     string
}

// HamaliEntry records labor done on a date: bags handled at the applicable
// rate. Amount = Bags x RatePerBag, frozen at entry time so later rate
// revisions do not rewrite history.
type HamaliEntry struct {
	ID         string
	Date       time.Time
	WorkType   HamaliWorkType
	Gang       string // labor gang / contractor name
	Bags       int
	RatePerBag decimal.Decimal
	Amount     decimal.Decimal
	Remarks    string
	CreatedAt  time.Time
	CreatedBy  string
}
