package ledger

import (
	"time"

	"github.com/motherindia/millstock-api/internal/domain/entity"
)

// Composite stock keys. Structural comparison avoids the collision bugs of
// concatenated string keys (empty segments, separator clashes).

// WarehouseKey identifies a warehouse-held paddy pool: one variety in one
// kunchinittu.
type WarehouseKey struct {
	Variety  string
	Location entity.Location
}

// ProductionKey identifies an in-production paddy pool: one variety allotted
// to one outturn.
type ProductionKey struct {
	Variety     string
	OutturnCode string
}

// RiceKey identifies a rice stock pool. Two entries are the same pool only if
// all five components match.
type RiceKey struct {
	Product     entity.ProductType
	Packaging   string
	BagSizeKg   int
	Location    string
	OutturnCode string
}

// SameProductLot reports whether two keys match on everything except
// location. Loading dispatches carry no storage location, so they are matched
// against stock this way.
func (k RiceKey) SameProductLot(o RiceKey) bool {
	return k.Product == o.Product &&
		k.Packaging == o.Packaging &&
		k.BagSizeKg == o.BagSizeKg &&
		k.OutturnCode == o.OutturnCode
}

// Day normalizes a timestamp to its calendar day (midnight UTC). The ledger
// works in whole days; time-of-day never participates in grouping.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// firstOfMonth returns the first calendar day of t's month.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
