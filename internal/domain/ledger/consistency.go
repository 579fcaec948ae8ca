package ledger

import (
	"fmt"
	"time"

	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Cross-day reconciliation: computed closing stock of day N must equal the
// opening stock of day N+1, and each day's closing total must equal opening +
// inflows - outflows. Violations are advisory diagnostics, never errors; the
// engine degrades gracefully and surfaces discrepancies for manual review
// rather than blocking report generation.

// Reconciliation tolerances.
var (
	paddyTolerance = decimal.RequireFromString("0.5")  // bags
	riceTolerance  = decimal.RequireFromString("0.01") // quintals
)

// CheckPaddy validates continuity and the balance equation over a computed
// paddy report. Outturns cleared on a given day legitimately vanish from the
// next opening and are not flagged.
func CheckPaddy(rep *PaddyReport, outturns map[string]entity.Outturn) []Diagnostic {
	var diags []Diagnostic

	for i := 0; i+1 < len(rep.Days); i++ {
		prev, next := rep.Days[i], rep.Days[i+1]

		prevClosing := make(map[WarehouseKey]int, len(prev.ClosingWarehouse))
		for _, l := range prev.ClosingWarehouse {
			prevClosing[WarehouseKey{Variety: l.Variety, Location: l.Location}] = l.Bags
		}
		nextOpening := make(map[WarehouseKey]int, len(next.OpeningWarehouse))
		for _, l := range next.OpeningWarehouse {
			nextOpening[WarehouseKey{Variety: l.Variety, Location: l.Location}] = l.Bags
		}
		diags = appendIntMismatches(diags, prev.Date, "warehouse", intKeyDiff(prevClosing, nextOpening))

		prevProd := make(map[ProductionKey]int, len(prev.ClosingProduction))
		for _, l := range prev.ClosingProduction {
			// Cleared on prev.Date: present through that closing, gone from
			// the next opening. Not a mismatch.
			if o, ok := outturns[l.OutturnCode]; ok && o.ClearedOnOrBefore(prev.Date) {
				continue
			}
			prevProd[ProductionKey{Variety: l.Variety, OutturnCode: l.OutturnCode}] = l.Bags
		}
		nextProd := make(map[ProductionKey]int, len(next.OpeningProduction))
		for _, l := range next.OpeningProduction {
			nextProd[ProductionKey{Variety: l.Variety, OutturnCode: l.OutturnCode}] = l.Bags
		}
		diags = appendIntMismatches(diags, prev.Date, "production", prodKeyDiff(prevProd, nextProd))
	}

	for _, day := range rep.Days {
		inflow, outflow := 0, 0
		for _, l := range day.Movements.Purchase {
			inflow += l.Bags
		}
		for _, l := range day.Movements.Loading {
			outflow += l.Bags
		}
		for _, l := range day.Movements.RiceProduction {
			outflow += l.BagsDeducted
		}
		expected := day.OpeningTotal + inflow - outflow
		delta := decimal.NewFromInt(int64(day.ClosingTotal - expected)).Abs()
		if delta.GreaterThan(paddyTolerance) {
			diags = append(diags, Diagnostic{
				Kind: DiagBalanceMismatch,
				Date: day.Date,
				Message: fmt.Sprintf("paddy closing total %d != opening %d + inflows %d - outflows %d",
					day.ClosingTotal, day.OpeningTotal, inflow, outflow),
			})
		}
	}

	return diags
}

// CheckRice validates continuity and the balance equation over a computed
// rice report. The balance check is skipped on days where an outturn was
// cleared: its pools drop out of that day's closing by design.
func CheckRice(rep *RiceReport, outturns map[string]entity.Outturn) []Diagnostic {
	var diags []Diagnostic

	for i := 0; i+1 < len(rep.Days); i++ {
		prev, next := rep.Days[i], rep.Days[i+1]
		prevClosing := riceLineMap(prev.Closing)
		nextOpening := riceLineMap(next.Opening)

		for k, q := range prevClosing {
			nq, ok := nextOpening[k]
			if !ok {
				diags = append(diags, continuityDiag(prev.Date, fmt.Sprintf(
					"rice pool %s/%s/%dkg@%s#%s present in closing (%s qtls) but missing from next opening",
					k.Product, k.Packaging, k.BagSizeKg, k.Location, k.OutturnCode, q)))
				continue
			}
			if !q.Equal(nq) {
				diags = append(diags, continuityDiag(prev.Date, fmt.Sprintf(
					"rice pool %s/%s/%dkg@%s#%s closing %s qtls != next opening %s qtls",
					k.Product, k.Packaging, k.BagSizeKg, k.Location, k.OutturnCode, q, nq)))
			}
		}
		for k := range nextOpening {
			if _, ok := prevClosing[k]; !ok {
				diags = append(diags, continuityDiag(prev.Date, fmt.Sprintf(
					"rice pool %s/%s/%dkg@%s#%s appears in opening of %s with no closing counterpart",
					k.Product, k.Packaging, k.BagSizeKg, k.Location, k.OutturnCode, next.Date.Format("2006-01-02"))))
			}
		}
	}

	for _, day := range rep.Days {
		if clearingOn(day.Date, outturns) {
			continue
		}
		inflow, outflow := decimal.Zero, decimal.Zero
		for _, l := range day.Movements.Kunchinittu {
			inflow = inflow.Add(l.QuantityQtls)
		}
		for _, l := range day.Movements.Loading {
			outflow = outflow.Add(l.QuantityQtls)
		}
		expected := day.OpeningTotalQtls.Add(inflow).Sub(outflow)
		if day.ClosingTotalQtls.Sub(expected).Abs().GreaterThan(riceTolerance) {
			diags = append(diags, Diagnostic{
				Kind: DiagBalanceMismatch,
				Date: day.Date,
				Message: fmt.Sprintf("rice closing total %s != opening %s + inflows %s - outflows %s",
					day.ClosingTotalQtls, day.OpeningTotalQtls, inflow, outflow),
			})
		}
	}

	return diags
}

// ─── helpers ──────────────────────────────────────────────────────────────────

type keyMismatch struct {
	key      string
	closing  int
	opening  int
	missing  bool // absent from next opening
	appeared bool // absent from previous closing
}

func intKeyDiff(prevClosing, nextOpening map[WarehouseKey]int) []keyMismatch {
	var out []keyMismatch
	for k, c := range prevClosing {
		o, ok := nextOpening[k]
		name := fmt.Sprintf("%s@%s/%s", k.Variety, k.Location.Warehouse, k.Location.StorageUnit)
		if !ok {
			out = append(out, keyMismatch{key: name, closing: c, missing: true})
		} else if c != o {
			out = append(out, keyMismatch{key: name, closing: c, opening: o})
		}
	}
	for k, o := range nextOpening {
		if _, ok := prevClosing[k]; !ok {
			name := fmt.Sprintf("%s@%s/%s", k.Variety, k.Location.Warehouse, k.Location.StorageUnit)
			out = append(out, keyMismatch{key: name, opening: o, appeared: true})
		}
	}
	return out
}

func prodKeyDiff(prevClosing, nextOpening map[ProductionKey]int) []keyMismatch {
	var out []keyMismatch
	for k, c := range prevClosing {
		o, ok := nextOpening[k]
		name := fmt.Sprintf("%s#%s", k.Variety, k.OutturnCode)
		if !ok {
			out = append(out, keyMismatch{key: name, closing: c, missing: true})
		} else if c != o {
			out = append(out, keyMismatch{key: name, closing: c, opening: o})
		}
	}
	for k, o := range nextOpening {
		if _, ok := prevClosing[k]; !ok {
			name := fmt.Sprintf("%s#%s", k.Variety, k.OutturnCode)
			out = append(out, keyMismatch{key: name, opening: o, appeared: true})
		}
	}
	return out
}

func appendIntMismatches(diags []Diagnostic, date time.Time, kind string, mismatches []keyMismatch) []Diagnostic {
	for _, m := range mismatches {
		var msg string
		switch {
		case m.missing:
			msg = fmt.Sprintf("%s stock %s closed at %d bags but is missing from next opening", kind, m.key, m.closing)
		case m.appeared:
			msg = fmt.Sprintf("%s stock %s opens at %d bags with no closing counterpart", kind, m.key, m.opening)
		default:
			msg = fmt.Sprintf("%s stock %s closed at %d bags but opens next day at %d", kind, m.key, m.closing, m.opening)
		}
		diags = append(diags, continuityDiag(date, msg))
	}
	return diags
}

func continuityDiag(date time.Time, msg string) Diagnostic {
	return Diagnostic{Kind: DiagContinuityMismatch, Date: date, Message: msg}
}

func riceLineMap(lines []RiceLine) map[RiceKey]decimal.Decimal {
	m := make(map[RiceKey]decimal.Decimal, len(lines))
	for _, l := range lines {
		m[RiceKey{
			Product:     l.Product,
			Packaging:   l.Packaging,
			BagSizeKg:   l.BagSizeKg,
			Location:    l.Location,
			OutturnCode: l.OutturnCode,
		}] = l.QuantityQtls
	}
	return m
}

func clearingOn(day time.Time, outturns map[string]entity.Outturn) bool {
	for _, o := range outturns {
		if o.IsCleared && o.ClearedAt != nil && Day(*o.ClearedAt).Equal(day) {
			return true
		}
	}
	return false
}
