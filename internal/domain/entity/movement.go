package entity

import "time"

// MovementType is the closed set of paddy movement kinds. The ledger fold
// switches exhaustively on it; adding a kind is a deliberate code change.
type MovementType string

const (
	MovementPurchase              MovementType = "purchase"
	MovementShifting              MovementType = "shifting"
	MovementProductionShifting    MovementType = "production-shifting"
	MovementForProductionPurchase MovementType = "for-production-purchase"
	MovementLoading               MovementType = "loading"
	MovementLoose                 MovementType = "loose"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementShifting, MovementProductionShifting,
		MovementForProductionPurchase, MovementLoading, MovementLoose:
		return true
	}
	return false
}

// Approval states shared by movements and rice production entries.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Location identifies a storage position: a kunchinittu (storage sub-unit)
// inside a warehouse. Comparable, so it can be part of composite map keys.
type Location struct {
	StorageUnit string // kunchinittu code
	Warehouse   string // warehouse code
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool { return l.StorageUnit == "" && l.Warehouse == "" }

// Movement is an immutable, dated inventory fact: a purchase arrival, a shift
// between kunchinittus, a shift into production, or a dispatch. Quantity and
// date never change after approval; only the approval state transitions.
type Movement struct {
	ID              string
	Date            time.Time // calendar day, midnight UTC; zero = unplaceable (data-quality error)
	Type            MovementType
	Variety         string
	Bags            int
	From            *Location // source kunchinittu (shifting, production-shifting, loading)
	To              *Location // destination kunchinittu (purchase, shifting, loose)
	OutturnCode     string    // set for production-bound movements
	LorryNumber     string
	BillNumber      string
	Status          Status
	ApprovedBy      string
	AdminApprovedBy string // second-level gate for purchase-type movements
	CreatedAt       time.Time
	CreatedBy       string
}

// AdminApproved reports whether the second-level approval gate has been
// passed. The gate exists only for purchase and for-production-purchase;
// other movement types pass automatically.
func (m *Movement) AdminApproved() bool {
	switch m.Type {
	case MovementPurchase, MovementForProductionPurchase:
		return m.AdminApprovedBy != ""
	}
	return true
}
