package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test fixtures
//
// All scenarios run in March 2024 against a single godown with kunchinittus
// L1, L2, ... Movements are created approved and admin-approved so they count
// toward stock; individual tests downgrade statuses to probe the filters.
// ──────────────────────────────────────────────────────────────────────────────

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func at(su string) *entity.Location {
	return &entity.Location{StorageUnit: su, Warehouse: "GDN-1"}
}

func purchase(id string, date time.Time, variety string, bags int, to string) entity.Movement {
	return entity.Movement{
		ID: id, Date: date, Type: entity.MovementPurchase,
		Variety: variety, Bags: bags, To: at(to),
		Status: entity.StatusApproved, ApprovedBy: "mgr-1", AdminApprovedBy: "adm-1",
	}
}

func shifting(id string, date time.Time, variety string, bags int, from, to string) entity.Movement {
	return entity.Movement{
		ID: id, Date: date, Type: entity.MovementShifting,
		Variety: variety, Bags: bags, From: at(from), To: at(to),
		Status: entity.StatusApproved, ApprovedBy: "mgr-1",
	}
}

func productionShift(id string, date time.Time, variety string, bags int, from, outturn string) entity.Movement {
	return entity.Movement{
		ID: id, Date: date, Type: entity.MovementProductionShifting,
		Variety: variety, Bags: bags, From: at(from), OutturnCode: outturn,
		Status: entity.StatusApproved, ApprovedBy: "mgr-1",
	}
}

func riceProduced(id string, date time.Time, outturn string, product entity.ProductType, qtls string) entity.RiceProductionEntry {
	return entity.RiceProductionEntry{
		ID: id, Date: date, OutturnCode: outturn, Product: product,
		QuantityQtls: decimal.RequireFromString(qtls),
		MovementType: entity.RiceMovementKunchinittu, LocationCode: "RS-1",
		Status: entity.StatusApproved, ApprovedBy: "mgr-1",
	}
}

func openOutturns(codes ...string) map[string]entity.Outturn {
	m := make(map[string]entity.Outturn, len(codes))
	for _, c := range codes {
		m[c] = entity.Outturn{Code: c, AllottedVariety: "Sona", Type: "steam"}
	}
	return m
}

func warehouseBags(lines []ledger.WarehouseLine, su string) (int, bool) {
	for _, l := range lines {
		if l.Location.StorageUnit == su {
			return l.Bags, true
		}
	}
	return 0, false
}

func productionBags(lines []ledger.ProductionLine, outturn string) (int, bool) {
	for _, l := range lines {
		if l.OutturnCode == outturn {
			return l.Bags, true
		}
	}
	return 0, false
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario: simple purchase then shift
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayPaddy_PurchaseThenShift(t *testing.T) {
	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(2),
		Movements: []entity.Movement{
			purchase("m1", day(1), "Sona", 100, "L1"),
			shifting("m2", day(2), "Sona", 40, "L1", "L2"),
		},
		Outturns: openOutturns(),
	})
	require.NoError(t, err)
	require.Len(t, rep.Days, 2)
	assert.Empty(t, rep.Diagnostics)

	d1, d2 := rep.Days[0], rep.Days[1]

	assert.Empty(t, d1.OpeningWarehouse, "day 1 opens with nothing")
	assert.Equal(t, 0, d1.OpeningTotal)
	b, ok := warehouseBags(d1.ClosingWarehouse, "L1")
	require.True(t, ok)
	assert.Equal(t, 100, b, "day 1 closes with the full purchase in L1")
	assert.Equal(t, 100, d1.ClosingTotal)

	b, ok = warehouseBags(d2.OpeningWarehouse, "L1")
	require.True(t, ok)
	assert.Equal(t, 100, b, "day 2 opening carries day 1 closing")

	l1, _ := warehouseBags(d2.ClosingWarehouse, "L1")
	l2, _ := warehouseBags(d2.ClosingWarehouse, "L2")
	assert.Equal(t, 60, l1)
	assert.Equal(t, 40, l2)
	assert.Equal(t, 100, d2.ClosingTotal, "shifting moves bags, never changes the total")

	require.Len(t, d2.Movements.Shifting, 1)
	assert.Equal(t, "m2", d2.Movements.Shifting[0].RecordID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Scenario: production shift fully consumed by rice production
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayPaddy_ProductionFullyConsumed(t *testing.T) {
	// History on Feb 28 seeds L1 with the 50 bags the production shift needs.
	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(2),
		Movements: []entity.Movement{
			purchase("m0", time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), "Sona", 50, "L1"),
			productionShift("m1", day(1), "Sona", 50, "L1", "OUT01"),
		},
		Productions: []entity.RiceProductionEntry{
			// 23.5 qtls / 0.47 = exactly 50 paddy bags.
			riceProduced("p1", day(2), "OUT01", entity.ProductRice, "23.5"),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)
	require.Len(t, rep.Days, 2)
	assert.Empty(t, rep.Diagnostics)

	d1, d2 := rep.Days[0], rep.Days[1]

	got, ok := productionBags(d1.ClosingProduction, "OUT01")
	require.True(t, ok)
	assert.Equal(t, 50, got)
	assert.Empty(t, d1.ClosingWarehouse, "L1 emptied out and its zero key dropped")

	_, ok = productionBags(d2.ClosingProduction, "OUT01")
	assert.False(t, ok, "fully consumed outturn must not linger as a zero entry")
	assert.Equal(t, 0, d2.ClosingTotal)

	require.Len(t, d2.Movements.RiceProduction, 1)
	assert.Equal(t, 50, d2.Movements.RiceProduction[0].BagsDeducted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guards: insufficient stock never goes negative
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayPaddy_InsufficientShiftSkipped(t *testing.T) {
	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(1),
		Movements: []entity.Movement{
			purchase("m1", day(1), "Sona", 10, "L1"),
			shifting("m2", day(1), "Sona", 40, "L1", "L2"), // only 10 available
		},
		Outturns: openOutturns(),
	})
	require.NoError(t, err)

	d1 := rep.Days[0]
	l1, _ := warehouseBags(d1.ClosingWarehouse, "L1")
	assert.Equal(t, 10, l1, "source stays at its floor")
	_, ok := warehouseBags(d1.ClosingWarehouse, "L2")
	assert.False(t, ok, "the paired addition is skipped with the subtraction")

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, ledger.DiagInsufficientStock, rep.Diagnostics[0].Kind)
	assert.Equal(t, "m2", rep.Diagnostics[0].RecordID)

	// Skipped operations leave no display line, so totals still reconcile.
	assert.Empty(t, d1.Movements.Shifting)
	assert.Empty(t, ledger.CheckPaddy(rep, openOutturns()))
}

func TestReplayPaddy_OverConsumptionFlooredAtZero(t *testing.T) {
	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(2),
		Movements: []entity.Movement{
			purchase("m0", day(1), "Sona", 20, "L1"),
			productionShift("m1", day(1), "Sona", 20, "L1", "OUT01"),
		},
		Productions: []entity.RiceProductionEntry{
			// 23.5 qtls would deduct 50 bags; only 20 stand against OUT01.
			riceProduced("p1", day(2), "OUT01", entity.ProductRice, "23.5"),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)

	d2 := rep.Days[1]
	_, ok := productionBags(d2.ClosingProduction, "OUT01")
	assert.False(t, ok, "balance floored at zero and removed")

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, ledger.DiagOverConsumption, rep.Diagnostics[0].Kind)

	require.Len(t, d2.Movements.RiceProduction, 1)
	assert.Equal(t, 20, d2.Movements.RiceProduction[0].BagsDeducted, "line records the applied amount, not the requested one")
}

func TestReplayPaddy_NoNegativeBalancesAnywhere(t *testing.T) {
	// A deliberately inconsistent sequence: every guard should fire rather
	// than any snapshot line dipping below zero.
	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(3),
		Movements: []entity.Movement{
			shifting("m1", day(1), "Sona", 15, "L1", "L2"),
			productionShift("m2", day(2), "Sona", 30, "L2", "OUT01"),
			purchase("m3", day(2), "Sona", 5, "L1"),
			shifting("m4", day(3), "Sona", 80, "L1", "L3"),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)
	for _, d := range rep.Days {
		for _, snap := range [][]ledger.WarehouseLine{d.OpeningWarehouse, d.ClosingWarehouse} {
			for _, l := range snap {
				assert.GreaterOrEqual(t, l.Bags, 0)
			}
		}
		for _, snap := range [][]ledger.ProductionLine{d.OpeningProduction, d.ClosingProduction} {
			for _, l := range snap {
				assert.GreaterOrEqual(t, l.Bags, 0)
			}
		}
	}
	assert.NotEmpty(t, rep.Diagnostics)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clearing
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayPaddy_ClearingFinality(t *testing.T) {
	clearedAt := day(2)
	outturns := map[string]entity.Outturn{
		"OUT01": {Code: "OUT01", AllottedVariety: "Sona", IsCleared: true, ClearedAt: &clearedAt},
	}

	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(5),
		Movements: []entity.Movement{
			purchase("m0", day(1), "Sona", 40, "L1"),
			productionShift("m1", day(1), "Sona", 40, "L1", "OUT01"),
		},
		Outturns: outturns,
	})
	require.NoError(t, err)
	require.Len(t, rep.Days, 5)

	// Through the clearing date's closing the balance is still visible.
	got, ok := productionBags(rep.Days[1].ClosingProduction, "OUT01")
	require.True(t, ok, "outturn cleared on the day remains through that day's closing")
	assert.Equal(t, 40, got)

	// From the next opening onward it is permanently gone, with or without
	// further transactions.
	for _, d := range rep.Days[2:] {
		_, ok := productionBags(d.OpeningProduction, "OUT01")
		assert.False(t, ok, "cleared outturn must not reappear in opening of %s", d.Date.Format("2006-01-02"))
		_, ok = productionBags(d.ClosingProduction, "OUT01")
		assert.False(t, ok, "cleared outturn must not reappear in closing of %s", d.Date.Format("2006-01-02"))
		assert.Equal(t, 0, d.OpeningTotal)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Input filtering and validation
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayPaddy_RangeEndBeforeStart(t *testing.T) {
	_, err := ledger.ReplayPaddy(ledger.PaddyInput{RangeStart: day(5), RangeEnd: day(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestReplayPaddy_OnlyApprovedAndAdminApprovedCount(t *testing.T) {
	pending := purchase("m1", day(1), "Sona", 100, "L1")
	pending.Status = entity.StatusPending

	rejected := purchase("m2", day(1), "Sona", 100, "L1")
	rejected.Status = entity.StatusRejected

	// Approved but missing the second-level gate that purchases require.
	noAdmin := purchase("m3", day(1), "Sona", 100, "L1")
	noAdmin.AdminApprovedBy = ""

	counted := purchase("m4", day(1), "Sona", 30, "L1")

	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(1),
		Movements:  []entity.Movement{pending, rejected, noAdmin, counted},
		Outturns:   openOutturns(),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, rep.Days[0].ClosingTotal)
}

func TestReplayPaddy_MissingDateReported(t *testing.T) {
	undated := purchase("m1", time.Time{}, "Sona", 100, "L1")

	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(1),
		Movements:  []entity.Movement{undated},
		Outturns:   openOutturns(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Days[0].ClosingTotal, "an unplaceable record must not count")

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, ledger.DiagMissingDate, rep.Diagnostics[0].Kind)
	assert.Equal(t, "m1", rep.Diagnostics[0].RecordID)
}

func TestReplayPaddy_ForProductionPurchaseBypassesWarehouse(t *testing.T) {
	m := entity.Movement{
		ID: "m1", Date: day(1), Type: entity.MovementForProductionPurchase,
		Variety: "Sona", Bags: 120, OutturnCode: "OUT01",
		Status: entity.StatusApproved, AdminApprovedBy: "adm-1",
	}
	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(1),
		Movements:  []entity.Movement{m},
		Outturns:   openOutturns("OUT01"),
	})
	require.NoError(t, err)

	d1 := rep.Days[0]
	assert.Empty(t, d1.ClosingWarehouse)
	got, ok := productionBags(d1.ClosingProduction, "OUT01")
	require.True(t, ok)
	assert.Equal(t, 120, got)
	require.Len(t, d1.Movements.Purchase, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinism and derived aggregates
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayPaddy_Idempotent(t *testing.T) {
	input := ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(4),
		Movements: []entity.Movement{
			purchase("m1", day(1), "Sona", 200, "L1"),
			purchase("m2", day(1), "HMT", 80, "L2"),
			shifting("m3", day(2), "Sona", 50, "L1", "L2"),
			productionShift("m4", day(3), "Sona", 100, "L1", "OUT01"),
		},
		Productions: []entity.RiceProductionEntry{
			riceProduced("p1", day(4), "OUT01", entity.ProductRice, "23.5"),
			riceProduced("p2", day(4), "OUT01", entity.ProductBran, "4.0"),
		},
		Outturns: openOutturns("OUT01"),
	}

	first, err := ledger.ReplayPaddy(input)
	require.NoError(t, err)
	second, err := ledger.ReplayPaddy(input)
	require.NoError(t, err)

	require.Equal(t, first, second, "same input must reproduce the same snapshots")
	assert.Empty(t, ledger.CheckPaddy(first, input.Outturns))
}

func TestReplayPaddy_SameDayContentionIsStableByRecordID(t *testing.T) {
	// Two same-day shiftings contend for 60 bags in L1. The fold processes
	// them in record-ID order, so m-a wins and m-b is skipped, every run.
	input := ledger.PaddyInput{
		RangeStart: day(2), RangeEnd: day(2),
		Movements: []entity.Movement{
			purchase("m0", day(1), "Sona", 60, "L1"),
			shifting("m-b", day(2), "Sona", 50, "L1", "L3"),
			shifting("m-a", day(2), "Sona", 40, "L1", "L2"),
		},
		Outturns: openOutturns(),
	}
	for i := 0; i < 5; i++ {
		rep, err := ledger.ReplayPaddy(input)
		require.NoError(t, err)
		d := rep.Days[0]
		l2, _ := warehouseBags(d.ClosingWarehouse, "L2")
		assert.Equal(t, 40, l2)
		_, hasL3 := warehouseBags(d.ClosingWarehouse, "L3")
		assert.False(t, hasL3, "the later record loses the contention")
		require.Len(t, rep.Diagnostics, 1)
		assert.Equal(t, "m-b", rep.Diagnostics[0].RecordID)
	}
}

func TestReplayPaddy_MonthToDateProductionResetsOnTheFirst(t *testing.T) {
	feb20 := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)

	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart: day(1), RangeEnd: day(10),
		Movements: []entity.Movement{
			purchase("m0", feb20, "Sona", 300, "L1"),
			productionShift("m1", feb20, "Sona", 200, "L1", "OUT01"), // previous month: not in the working figure
			productionShift("m2", day(5), "Sona", 100, "L1", "OUT01"),
		},
		Productions: []entity.RiceProductionEntry{
			riceProduced("p1", day(6), "OUT01", entity.ProductRice, "23.5"), // 50 bags this month
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)

	require.Len(t, rep.MonthToDateProduction, 1)
	w := rep.MonthToDateProduction[0]
	assert.Equal(t, "OUT01", w.OutturnCode)
	assert.Equal(t, 100, w.ShiftedBags, "February's shift does not carry into March")
	assert.Equal(t, 50, w.ConsumedBags)
	assert.Equal(t, 50, w.RemainingBags)

	// The cumulative production stock still carries both months.
	got, ok := productionBags(rep.Days[len(rep.Days)-1].ClosingProduction, "OUT01")
	require.True(t, ok)
	assert.Equal(t, 250, got)
}
