package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
)

// The checkers run over reports the engine produced; these tests hand-build
// reports with deliberate defects to prove each rule fires, since a correct
// replay can never produce them.

func wline(variety, su string, bags int) ledger.WarehouseLine {
	return ledger.WarehouseLine{Variety: variety, Location: entity.Location{StorageUnit: su, Warehouse: "GDN-1"}, Bags: bags}
}

func TestCheckPaddy_FlagsBrokenContinuity(t *testing.T) {
	rep := &ledger.PaddyReport{Days: []ledger.PaddyDay{
		{
			Date:             day(1),
			ClosingWarehouse: []ledger.WarehouseLine{wline("Sona", "L1", 100), wline("Sona", "L2", 40)},
			ClosingTotal:     140,
			OpeningTotal:     140,
		},
		{
			Date: day(2),
			// L1 drifted by 10 bags overnight and L2 vanished entirely.
			OpeningWarehouse: []ledger.WarehouseLine{wline("Sona", "L1", 90)},
			OpeningTotal:     90,
			ClosingWarehouse: []ledger.WarehouseLine{wline("Sona", "L1", 90)},
			ClosingTotal:     90,
		},
	}}

	diags := ledger.CheckPaddy(rep, nil)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, ledger.DiagContinuityMismatch, d.Kind)
		assert.True(t, d.Date.Equal(day(1)), "mismatch is attributed to the closing day")
	}
}

func TestCheckPaddy_FlagsBalanceMismatch(t *testing.T) {
	rep := &ledger.PaddyReport{Days: []ledger.PaddyDay{
		{
			Date:         day(1),
			OpeningTotal: 0,
			Movements: ledger.PaddyDailyMovements{
				Purchase: []ledger.MovementLine{{RecordID: "m1", Variety: "Sona", Bags: 100}},
			},
			// Should close at 100.
			ClosingWarehouse: []ledger.WarehouseLine{wline("Sona", "L1", 90)},
			ClosingTotal:     90,
		},
	}}

	diags := ledger.CheckPaddy(rep, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, ledger.DiagBalanceMismatch, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "90")
	assert.Contains(t, diags[0].Message, "100")
}

func TestCheckPaddy_ToleratesSubBagRounding(t *testing.T) {
	// Off by zero after rounding: within the half-bag tolerance.
	rep := &ledger.PaddyReport{Days: []ledger.PaddyDay{
		{
			Date:         day(1),
			OpeningTotal: 50,
			ClosingTotal: 50,
			ClosingWarehouse: []ledger.WarehouseLine{wline("Sona", "L1", 50)},
		},
	}}
	assert.Empty(t, ledger.CheckPaddy(rep, nil))
}

func TestCheckPaddy_ClearedOutturnMayVanishOvernight(t *testing.T) {
	clearedAt := day(1)
	outturns := map[string]entity.Outturn{
		"OUT01": {Code: "OUT01", AllottedVariety: "Sona", IsCleared: true, ClearedAt: &clearedAt},
	}

	rep := &ledger.PaddyReport{Days: []ledger.PaddyDay{
		{
			Date:              day(1),
			ClosingProduction: []ledger.ProductionLine{{Variety: "Sona", OutturnCode: "OUT01", Bags: 40}},
			OpeningTotal:      40,
			ClosingTotal:      40,
		},
		{
			Date: day(2),
			// OUT01 is gone: legitimate, it was cleared on day 1.
		},
	}}

	assert.Empty(t, ledger.CheckPaddy(rep, outturns))
}

func TestCheckRice_FlagsBrokenContinuity(t *testing.T) {
	line := func(qtls string) ledger.RiceLine {
		return ledger.RiceLine{
			Product: entity.ProductRice, Packaging: "PP", BagSizeKg: 26,
			Location: "RS-1", OutturnCode: "OUT01",
			QuantityQtls: decimal.RequireFromString(qtls), Bags: 40,
		}
	}
	rep := &ledger.RiceReport{Days: []ledger.RiceDay{
		{
			Date:             day(1),
			Closing:          []ledger.RiceLine{line("10.4")},
			OpeningTotalQtls: decimal.RequireFromString("10.4"),
			ClosingTotalQtls: decimal.RequireFromString("10.4"),
		},
		{
			Date:             day(2),
			Opening:          []ledger.RiceLine{line("9.4")},
			Closing:          []ledger.RiceLine{line("9.4")},
			OpeningTotalQtls: decimal.RequireFromString("9.4"),
			ClosingTotalQtls: decimal.RequireFromString("9.4"),
		},
	}}

	diags := ledger.CheckRice(rep, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, ledger.DiagContinuityMismatch, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "9.4")
	assert.Contains(t, diags[0].Message, "10.4")
}

func TestCheckRice_SkipsBalanceOnClearingDays(t *testing.T) {
	clearedAt := day(1)
	outturns := map[string]entity.Outturn{
		"OUT01": {Code: "OUT01", AllottedVariety: "Sona", IsCleared: true, ClearedAt: &clearedAt},
	}

	// Closing dropped to zero with no dispatches: a balance mismatch on any
	// ordinary day, but day 1 is OUT01's clearing day.
	rep := &ledger.RiceReport{Days: []ledger.RiceDay{
		{
			Date:             day(1),
			OpeningTotalQtls: decimal.RequireFromString("10.4"),
			ClosingTotalQtls: decimal.Zero,
		},
	}}

	assert.Empty(t, ledger.CheckRice(rep, outturns))
	require.Len(t, ledger.CheckRice(rep, nil), 1)
	assert.Equal(t, ledger.DiagBalanceMismatch, ledger.CheckRice(rep, nil)[0].Kind)
}
