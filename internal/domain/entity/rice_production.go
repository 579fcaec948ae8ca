package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Finished product types produced by a milling run.
type ProductType string

const (
	ProductRice           ProductType = "Rice"
	ProductSteamRice      ProductType = "Steam Rice"
	ProductRawRice        ProductType = "Raw Rice"
	ProductBoiledRice     ProductType = "Boiled Rice"
	ProductBrokenRice     ProductType = "Broken Rice"
	ProductSizerBroken    ProductType = "Sizer Broken"
	ProductRejectionRice  ProductType = "Rejection Rice"
	ProductUnpolishedRice ProductType = "Unpolished Rice"
	ProductNooks          ProductType = "Nooks"
	ProductBran           ProductType = "Bran"
	ProductFarmBran       ProductType = "Farm Bran"
	ProductFaram          ProductType = "Faram"
)

// Valid reports whether p is a known product type.
func (p ProductType) Valid() bool {
	switch p {
	case ProductRice, ProductSteamRice, ProductRawRice, ProductBoiledRice,
		ProductBrokenRice, ProductSizerBroken, ProductRejectionRice,
		ProductUnpolishedRice, ProductNooks, ProductBran, ProductFarmBran,
		ProductFaram:
		return true
	}
	return false
}

// RiceMovementType says what happened to the produced bags.
type RiceMovementType string

const (
	RiceMovementKunchinittu RiceMovementType = "kunchinittu" // stored at a location
	RiceMovementLoading     RiceMovementType = "loading"     // dispatched from the mill
)

// ClearingLocationCode marks the synthetic entry written when an outturn is
// cleared. Entries at this location are acknowledged write-off, never stock.
const ClearingLocationCode = "CLEARING"

// RiceProductionEntry converts paddy (via an outturn) into a finished-product
// quantity on a given date. QuantityQtls = bags x bag size kg / 100.
type RiceProductionEntry struct {
	ID           string
	Date         time.Time // calendar day, midnight UTC; zero = unplaceable
	OutturnCode  string
	Product      ProductType
	Bags         int
	QuantityQtls decimal.Decimal // quintals (100 kg units)
	PackagingID  string
	Packaging    string // packaging brand
	BagSizeKg    int
	MovementType RiceMovementType
	LocationCode string // storage location; empty for loading; ClearingLocationCode for write-off
	LorryNumber  string
	BillNumber   string
	Status       Status
	ApprovedBy   string
	CreatedAt    time.Time
	CreatedBy    string
}

// IsClearing reports whether the entry is the synthetic write-off written at
// outturn clearing time.
func (e *RiceProductionEntry) IsClearing() bool {
	return e.LocationCode == ClearingLocationCode
}
