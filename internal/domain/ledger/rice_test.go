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

func kunchinittu(id string, date time.Time, outturn string, product entity.ProductType, bags int, qtls, packaging string, sizeKg int, location string) entity.RiceProductionEntry {
	return entity.RiceProductionEntry{
		ID: id, Date: date, OutturnCode: outturn, Product: product,
		Bags: bags, QuantityQtls: decimal.RequireFromString(qtls),
		Packaging: packaging, BagSizeKg: sizeKg,
		MovementType: entity.RiceMovementKunchinittu, LocationCode: location,
		Status: entity.StatusApproved, ApprovedBy: "mgr-1",
	}
}

// loading records carry no location: dispatches identify stock by product,
// packaging, bag size and outturn only.
func loading(id string, date time.Time, outturn string, product entity.ProductType, bags int, qtls, packaging string, sizeKg int) entity.RiceProductionEntry {
	return entity.RiceProductionEntry{
		ID: id, Date: date, OutturnCode: outturn, Product: product,
		Bags: bags, QuantityQtls: decimal.RequireFromString(qtls),
		Packaging: packaging, BagSizeKg: sizeKg,
		MovementType: entity.RiceMovementLoading,
		LorryNumber:  "KA-19-1234", BillNumber: "B-77",
		Status: entity.StatusApproved, ApprovedBy: "mgr-1",
	}
}

func riceQtls(lines []ledger.RiceLine, product entity.ProductType, location string) (decimal.Decimal, bool) {
	for _, l := range lines {
		if l.Product == product && l.Location == location {
			return l.QuantityQtls, true
		}
	}
	return decimal.Zero, false
}

func TestReplayRice_ProduceThenDispatch(t *testing.T) {
	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart: day(1), RangeEnd: day(2),
		Productions: []entity.RiceProductionEntry{
			kunchinittu("p1", day(1), "OUT01", entity.ProductSteamRice, 100, "26", "PP", 26, "RS-1"),
			loading("p2", day(2), "OUT01", entity.ProductSteamRice, 50, "13", "PP", 26),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)
	require.Len(t, rep.Days, 2)
	assert.Empty(t, rep.Diagnostics)

	d1, d2 := rep.Days[0], rep.Days[1]

	q, ok := riceQtls(d1.Closing, entity.ProductSteamRice, "RS-1")
	require.True(t, ok)
	assert.True(t, q.Equal(decimal.RequireFromString("26")))
	assert.True(t, d1.ClosingTotalQtls.Equal(decimal.RequireFromString("26")))

	// The dispatch matched the RS-1 pool even though it named no location.
	q, ok = riceQtls(d2.Closing, entity.ProductSteamRice, "RS-1")
	require.True(t, ok)
	assert.True(t, q.Equal(decimal.RequireFromString("13")))
	require.Len(t, d2.Movements.Loading, 1)
	assert.Equal(t, "RS-1", d2.Movements.Loading[0].Location)
	assert.Equal(t, 50, d2.Movements.Loading[0].Bags)

	assert.Empty(t, ledger.CheckRice(rep, openOutturns("OUT01")))
}

func TestReplayRice_UnmatchedLoadingLeavesStockUntouched(t *testing.T) {
	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart: day(1), RangeEnd: day(1),
		Productions: []entity.RiceProductionEntry{
			kunchinittu("p1", day(1), "OUT01", entity.ProductSteamRice, 100, "26", "PP", 26, "RS-1"),
			// Same product, wrong bag size: no pool matches.
			loading("p2", day(1), "OUT01", entity.ProductSteamRice, 10, "5", "PP", 50),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)

	d1 := rep.Days[0]
	q, ok := riceQtls(d1.Closing, entity.ProductSteamRice, "RS-1")
	require.True(t, ok)
	assert.True(t, q.Equal(decimal.RequireFromString("26")), "unmatched dispatch must not touch existing pools")
	assert.Empty(t, d1.Movements.Loading)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, ledger.DiagUnmatchedLoading, rep.Diagnostics[0].Kind)
	assert.Equal(t, "p2", rep.Diagnostics[0].RecordID)
	assert.Contains(t, rep.Diagnostics[0].Message, "RS-1", "the diagnostic lists the pools that were considered")
}

func TestReplayRice_DrainedPoolRemoved(t *testing.T) {
	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart: day(1), RangeEnd: day(2),
		Productions: []entity.RiceProductionEntry{
			kunchinittu("p1", day(1), "OUT01", entity.ProductRice, 40, "10.4", "PP", 26, "RS-1"),
			loading("p2", day(2), "OUT01", entity.ProductRice, 40, "10.4", "PP", 26),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)
	assert.Empty(t, rep.Diagnostics)

	d2 := rep.Days[1]
	assert.Empty(t, d2.Closing, "a fully dispatched pool leaves no zero line behind")
	assert.True(t, d2.ClosingTotalQtls.IsZero())
}

func TestReplayRice_OverDispatchFlaggedAndPoolRemoved(t *testing.T) {
	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart: day(1), RangeEnd: day(1),
		Productions: []entity.RiceProductionEntry{
			kunchinittu("p1", day(1), "OUT01", entity.ProductRice, 40, "10.4", "PP", 26, "RS-1"),
			loading("p2", day(1), "OUT01", entity.ProductRice, 60, "15.6", "PP", 26),
		},
		Outturns: openOutturns("OUT01"),
	})
	require.NoError(t, err)

	d1 := rep.Days[0]
	assert.Empty(t, d1.Closing, "the over-dispatched pool is removed, never left negative")

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, ledger.DiagInsufficientStock, rep.Diagnostics[0].Kind)
	assert.Equal(t, "p2", rep.Diagnostics[0].RecordID)
}

func TestReplayRice_ClearingEntriesNeverAccumulate(t *testing.T) {
	writeOff := kunchinittu("p1", day(1), "OUT01", entity.ProductRice, 40, "10.4", "PP", 26, entity.ClearingLocationCode)

	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart:  day(1), RangeEnd: day(1),
		Productions: []entity.RiceProductionEntry{writeOff},
		Outturns:    openOutturns("OUT01"),
	})
	require.NoError(t, err)
	assert.Empty(t, rep.Days[0].Closing)
	assert.Empty(t, rep.Days[0].Movements.Kunchinittu)
	assert.Empty(t, rep.Diagnostics)
}

func TestReplayRice_ClearedOutturnDropsOnClearingDate(t *testing.T) {
	clearedAt := day(2)
	outturns := map[string]entity.Outturn{
		"OUT01": {Code: "OUT01", AllottedVariety: "Sona", IsCleared: true, ClearedAt: &clearedAt},
	}

	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart: day(1), RangeEnd: day(3),
		Productions: []entity.RiceProductionEntry{
			kunchinittu("p1", day(1), "OUT01", entity.ProductRice, 40, "10.4", "PP", 26, "RS-1"),
		},
		Outturns: outturns,
	})
	require.NoError(t, err)
	require.Len(t, rep.Days, 3)

	_, ok := riceQtls(rep.Days[0].Closing, entity.ProductRice, "RS-1")
	assert.True(t, ok, "still in stock the day before clearing")

	d2 := rep.Days[1]
	_, ok = riceQtls(d2.Opening, entity.ProductRice, "RS-1")
	assert.True(t, ok, "opening of the clearing date still shows the stock")
	// Unlike the paddy ledger, rice stock is gone from the closing of the
	// clearing date itself.
	assert.Empty(t, d2.Closing)

	assert.Empty(t, rep.Days[2].Opening)
	assert.Empty(t, rep.Days[2].Closing)

	assert.Empty(t, ledger.CheckRice(rep, outturns), "the clearing-day drop is expected, not a mismatch")
}

func TestReplayRice_RangeEndBeforeStart(t *testing.T) {
	_, err := ledger.ReplayRice(ledger.RiceInput{RangeStart: day(5), RangeEnd: day(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestReplayRice_FiltersPendingAndUndated(t *testing.T) {
	pending := kunchinittu("p1", day(1), "OUT01", entity.ProductRice, 40, "10.4", "PP", 26, "RS-1")
	pending.Status = entity.StatusPending
	undated := kunchinittu("p2", time.Time{}, "OUT01", entity.ProductRice, 40, "10.4", "PP", 26, "RS-1")

	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart:  day(1), RangeEnd: day(1),
		Productions: []entity.RiceProductionEntry{pending, undated},
		Outturns:    openOutturns("OUT01"),
	})
	require.NoError(t, err)
	assert.Empty(t, rep.Days[0].Closing)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, ledger.DiagMissingDate, rep.Diagnostics[0].Kind)
	assert.Equal(t, "p2", rep.Diagnostics[0].RecordID)
}

func TestReplayRice_Idempotent(t *testing.T) {
	input := ledger.RiceInput{
		RangeStart: day(1), RangeEnd: day(4),
		Productions: []entity.RiceProductionEntry{
			kunchinittu("p1", day(1), "OUT01", entity.ProductSteamRice, 100, "26", "PP", 26, "RS-1"),
			kunchinittu("p2", day(1), "OUT01", entity.ProductBran, 30, "15", "Jute", 50, "RS-2"),
			kunchinittu("p3", day(2), "OUT02", entity.ProductSteamRice, 80, "20.8", "PP", 26, "RS-1"),
			loading("p4", day(3), "OUT01", entity.ProductSteamRice, 50, "13", "PP", 26),
			loading("p5", day(4), "OUT02", entity.ProductSteamRice, 80, "20.8", "PP", 26),
		},
		Outturns: openOutturns("OUT01", "OUT02"),
	}

	first, err := ledger.ReplayRice(input)
	require.NoError(t, err)
	second, err := ledger.ReplayRice(input)
	require.NoError(t, err)

	require.Equal(t, first, second)
	assert.Empty(t, first.Diagnostics)
	assert.Empty(t, ledger.CheckRice(first, input.Outturns))
}
