// Package ledger implements the stock ledger reconciliation engine: it
// replays dated movement and rice-production records into day-by-day
// opening/closing stock, bifurcated by variety, kunchinittu and outturn.
//
// The engine is pure. It performs no I/O, takes already-fetched records and
// returns in-memory day statements plus advisory diagnostics. Recomputing the
// same range from the same records yields identical output: inputs are sorted
// by (date, record ID) before folding, and every snapshot is a structural
// copy of the running maps, never a live reference.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
)

// PaddyInput is everything the paddy ledger needs for one computation.
// Records should be pre-filtered to approved status; the engine filters
// defensively anyway.
type PaddyInput struct {
	RangeStart  time.Time
	RangeEnd    time.Time
	Movements   []entity.Movement
	Productions []entity.RiceProductionEntry
	Outturns    map[string]entity.Outturn
}

// WarehouseLine is one warehouse stock line: bags of a variety in a
// kunchinittu.
type WarehouseLine struct {
	Variety  string
	Location entity.Location
	Bags     int
}

// ProductionLine is one in-production stock line: bags of a variety standing
// against an outturn.
type ProductionLine struct {
	Variety     string
	OutturnCode string
	Bags        int
}

// MovementLine is a classified daily movement for display.
type MovementLine struct {
	RecordID    string
	Variety     string
	Bags        int
	From        *entity.Location
	To          *entity.Location
	OutturnCode string
}

// ConsumptionLine is a rice-production consumption against an outturn.
type ConsumptionLine struct {
	RecordID     string
	OutturnCode  string
	Product      entity.ProductType
	BagsDeducted int // bags actually applied (clamped at the remaining balance)
}

// PaddyDailyMovements groups one day's applied deltas by movement type.
// Skipped operations (guard violations) appear as diagnostics, not lines, so
// the lines always reconcile with opening/closing totals.
type PaddyDailyMovements struct {
	Purchase           []MovementLine // purchase, for-production-purchase, loose arrivals
	Shifting           []MovementLine
	ProductionShifting []MovementLine
	Loading            []MovementLine
	RiceProduction     []ConsumptionLine
}

// PaddyDay is the ledger statement for one calendar date.
type PaddyDay struct {
	Date              time.Time
	OpeningWarehouse  []WarehouseLine
	OpeningProduction []ProductionLine
	Movements         PaddyDailyMovements
	ClosingWarehouse  []WarehouseLine
	ClosingProduction []ProductionLine
	OpeningTotal      int
	ClosingTotal      int
}

// WorkingLine is the month-scoped "remaining in production" figure for one
// outturn: shifted minus consumed counting only records dated within the
// calendar month of the last reported day. Display-only; it resets on the 1st
// and is independent of the cumulative production stock.
type WorkingLine struct {
	OutturnCode   string
	ShiftedBags   int
	ConsumedBags  int
	RemainingBags int
}

// PaddyReport is the engine output for a date range.
type PaddyReport struct {
	Days                  []PaddyDay
	MonthToDateProduction []WorkingLine
	Diagnostics           []Diagnostic
}

// ReplayPaddy folds all approved movements and rice-production consumptions
// into per-date opening/closing paddy stock for the inclusive range.
//
// Only rangeEnd < rangeStart is a hard error; every data problem inside the
// records becomes a diagnostic on a best-effort result.
func ReplayPaddy(in PaddyInput) (*PaddyReport, error) {
	start, end := Day(in.RangeStart), Day(in.RangeEnd)
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	f := &paddyFold{
		wh:       make(map[WarehouseKey]int),
		prod:     make(map[ProductionKey]int),
		outturns: in.Outturns,
	}

	movements := f.usableMovements(in.Movements)
	productions := f.usableProductions(in.Productions)

	// History: everything strictly before the range start establishes the
	// opening balance of the first day.
	mi, pi := 0, 0
	for mi < len(movements) && Day(movements[mi].Date).Before(start) {
		f.applyMovement(movements[mi], nil)
		mi++
	}
	for pi < len(productions) && Day(productions[pi].Date).Before(start) {
		f.applyProduction(productions[pi], nil)
		pi++
	}

	rep := &PaddyReport{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := PaddyDay{Date: d}
		day.OpeningWarehouse, day.OpeningProduction, day.OpeningTotal = f.snapshot(d)

		for mi < len(movements) && Day(movements[mi].Date).Equal(d) {
			f.applyMovement(movements[mi], &day.Movements)
			mi++
		}
		for pi < len(productions) && Day(productions[pi].Date).Equal(d) {
			f.applyProduction(productions[pi], &day.Movements)
			pi++
		}

		day.ClosingWarehouse, day.ClosingProduction, day.ClosingTotal = f.snapshot(d)
		rep.Days = append(rep.Days, day)
	}

	rep.MonthToDateProduction = monthToDateProduction(end, movements, productions, in.Outturns)
	rep.Diagnostics = f.diags
	return rep, nil
}

// ─── fold state ───────────────────────────────────────────────────────────────

type paddyFold struct {
	wh       map[WarehouseKey]int
	prod     map[ProductionKey]int
	outturns map[string]entity.Outturn
	diags    []Diagnostic
}

// usableMovements filters to approved (and, where the gate exists,
// admin-approved) movements with a placeable date, sorted by (date, ID).
// Records without a date are surfaced as data-quality diagnostics, never
// silently dropped.
func (f *paddyFold) usableMovements(movements []entity.Movement) []entity.Movement {
	out := make([]entity.Movement, 0, len(movements))
	for _, m := range movements {
		if m.Status != entity.StatusApproved || !m.AdminApproved() {
			continue
		}
		if m.Date.IsZero() {
			f.diag(DiagMissingDate, time.Time{}, m.ID,
				fmt.Sprintf("movement %s (%s) has no date and cannot be placed in the ledger", m.ID, m.Type))
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := Day(out[i].Date), Day(out[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		// Same-day tie-break on record ID keeps guard behavior deterministic
		// when two shiftings contend for the same source balance.
		return out[i].ID < out[j].ID
	})
	return out
}

// usableProductions filters to approved kunchinittu entries with a date.
// Loading entries move rice, not paddy; clearing write-offs are handled by
// the cleared-outturn exclusion instead.
func (f *paddyFold) usableProductions(entries []entity.RiceProductionEntry) []entity.RiceProductionEntry {
	out := make([]entity.RiceProductionEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status != entity.StatusApproved || e.MovementType != entity.RiceMovementKunchinittu || e.IsClearing() {
			continue
		}
		if e.Date.IsZero() {
			f.diag(DiagMissingDate, time.Time{}, e.ID,
				fmt.Sprintf("rice production %s (%s) has no date and cannot be placed in the ledger", e.ID, e.Product))
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := Day(out[i].Date), Day(out[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// applyMovement mutates the running maps for one movement. When collect is
// non-nil (in-range days) the applied delta is recorded as a display line.
func (f *paddyFold) applyMovement(m entity.Movement, collect *PaddyDailyMovements) {
	day := Day(m.Date)
	switch m.Type {
	case entity.MovementPurchase, entity.MovementForProductionPurchase:
		if m.OutturnCode != "" || m.Type == entity.MovementForProductionPurchase {
			// For-production arrivals bypass the warehouse entirely.
			f.prod[f.prodKey(m)] += m.Bags
		} else {
			f.wh[WarehouseKey{Variety: m.Variety, Location: locOrZero(m.To)}] += m.Bags
		}
		if collect != nil {
			collect.Purchase = append(collect.Purchase, movementLine(m))
		}

	case entity.MovementLoose:
		// Loose paddy arrival: straight into the destination kunchinittu.
		f.wh[WarehouseKey{Variety: m.Variety, Location: locOrZero(m.To)}] += m.Bags
		if collect != nil {
			collect.Purchase = append(collect.Purchase, movementLine(m))
		}

	case entity.MovementShifting:
		from := WarehouseKey{Variety: m.Variety, Location: locOrZero(m.From)}
		if f.wh[from] < m.Bags {
			f.diag(DiagInsufficientStock, day, m.ID,
				fmt.Sprintf("shifting %d bags of %s from %s/%s: only %d available, movement skipped",
					m.Bags, m.Variety, from.Location.Warehouse, from.Location.StorageUnit, f.wh[from]))
			return
		}
		f.subtractWarehouse(from, m.Bags)
		f.wh[WarehouseKey{Variety: m.Variety, Location: locOrZero(m.To)}] += m.Bags
		if collect != nil {
			collect.Shifting = append(collect.Shifting, movementLine(m))
		}

	case entity.MovementProductionShifting:
		from := WarehouseKey{Variety: m.Variety, Location: locOrZero(m.From)}
		if f.wh[from] < m.Bags {
			f.diag(DiagInsufficientStock, day, m.ID,
				fmt.Sprintf("production-shifting %d bags of %s to outturn %s: only %d available at %s/%s, movement skipped",
					m.Bags, m.Variety, m.OutturnCode, f.wh[from], from.Location.Warehouse, from.Location.StorageUnit))
			return
		}
		f.subtractWarehouse(from, m.Bags)
		f.prod[f.prodKey(m)] += m.Bags
		if collect != nil {
			collect.ProductionShifting = append(collect.ProductionShifting, movementLine(m))
		}

	case entity.MovementLoading:
		from := WarehouseKey{Variety: m.Variety, Location: locOrZero(m.From)}
		if f.wh[from] < m.Bags {
			f.diag(DiagInsufficientStock, day, m.ID,
				fmt.Sprintf("loading %d bags of %s from %s/%s: only %d available, dispatch skipped",
					m.Bags, m.Variety, from.Location.Warehouse, from.Location.StorageUnit, f.wh[from]))
			return
		}
		f.subtractWarehouse(from, m.Bags)
		if collect != nil {
			collect.Loading = append(collect.Loading, movementLine(m))
		}
	}
}

// applyProduction deducts the paddy consumed by one kunchinittu rice
// production from its outturn's balance, floored at zero.
func (f *paddyFold) applyProduction(e entity.RiceProductionEntry, collect *PaddyDailyMovements) {
	deducted := PaddyBagsDeducted(e.Product, e.QuantityQtls)
	key := ProductionKey{Variety: f.outturnVariety(e.OutturnCode, ""), OutturnCode: e.OutturnCode}
	applied := deducted
	if have := f.prod[key]; have < deducted {
		f.diag(DiagOverConsumption, Day(e.Date), e.ID,
			fmt.Sprintf("rice production against outturn %s deducts %d paddy bags but only %d remain, floored at zero",
				e.OutturnCode, deducted, have))
		applied = have
	}
	if applied > 0 {
		f.prod[key] -= applied
	}
	if f.prod[key] <= 0 {
		// No zero-residue entries persist in the map.
		delete(f.prod, key)
	}
	if collect != nil {
		collect.RiceProduction = append(collect.RiceProduction, ConsumptionLine{
			RecordID:     e.ID,
			OutturnCode:  e.OutturnCode,
			Product:      e.Product,
			BagsDeducted: applied,
		})
	}
}

func (f *paddyFold) subtractWarehouse(key WarehouseKey, bags int) {
	f.wh[key] -= bags
	if f.wh[key] <= 0 {
		delete(f.wh, key)
	}
}

// prodKey builds the production stock key for a movement. The allotted
// variety of the outturn wins over the movement's own variety so that
// shiftings and consumptions land on the same pool.
func (f *paddyFold) prodKey(m entity.Movement) ProductionKey {
	return ProductionKey{
		Variety:     f.outturnVariety(m.OutturnCode, m.Variety),
		OutturnCode: m.OutturnCode,
	}
}

func (f *paddyFold) outturnVariety(code, fallback string) string {
	if o, ok := f.outturns[code]; ok && o.AllottedVariety != "" {
		return o.AllottedVariety
	}
	return fallback
}

// snapshot copies the running maps into sorted stock lines valid at the given
// day boundary. Outturns cleared strictly before the day are excluded; an
// outturn cleared exactly on the day remains visible through that day's
// closing and vanishes from the next day's opening.
func (f *paddyFold) snapshot(day time.Time) ([]WarehouseLine, []ProductionLine, int) {
	warehouse := make([]WarehouseLine, 0, len(f.wh))
	total := 0
	for k, bags := range f.wh {
		warehouse = append(warehouse, WarehouseLine{Variety: k.Variety, Location: k.Location, Bags: bags})
		total += bags
	}
	sort.Slice(warehouse, func(i, j int) bool {
		a, b := warehouse[i], warehouse[j]
		if a.Location.Warehouse != b.Location.Warehouse {
			return a.Location.Warehouse < b.Location.Warehouse
		}
		if a.Location.StorageUnit != b.Location.StorageUnit {
			return a.Location.StorageUnit < b.Location.StorageUnit
		}
		return a.Variety < b.Variety
	})

	production := make([]ProductionLine, 0, len(f.prod))
	for k, bags := range f.prod {
		if o, ok := f.outturns[k.OutturnCode]; ok && o.ClearedBefore(day) {
			continue
		}
		production = append(production, ProductionLine{Variety: k.Variety, OutturnCode: k.OutturnCode, Bags: bags})
		total += bags
	}
	sort.Slice(production, func(i, j int) bool {
		a, b := production[i], production[j]
		if a.OutturnCode != b.OutturnCode {
			return a.OutturnCode < b.OutturnCode
		}
		return a.Variety < b.Variety
	})

	return warehouse, production, total
}

func (f *paddyFold) diag(kind DiagnosticKind, date time.Time, recordID, msg string) {
	f.diags = append(f.diags, Diagnostic{Kind: kind, Date: date, RecordID: recordID, Message: msg})
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func movementLine(m entity.Movement) MovementLine {
	return MovementLine{
		RecordID:    m.ID,
		Variety:     m.Variety,
		Bags:        m.Bags,
		From:        copyLocation(m.From),
		To:          copyLocation(m.To),
		OutturnCode: m.OutturnCode,
	}
}

func copyLocation(l *entity.Location) *entity.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func locOrZero(l *entity.Location) entity.Location {
	if l == nil {
		return entity.Location{}
	}
	return *l
}

// monthToDateProduction computes, per outturn, shifted minus consumed using
// only records whose date falls in the same calendar month as the last
// reported day (up to and including it). The raw record values are used, not
// the guard-adjusted fold, because this is a working figure for display.
func monthToDateProduction(
	lastDay time.Time,
	movements []entity.Movement,
	productions []entity.RiceProductionEntry,
	outturns map[string]entity.Outturn,
) []WorkingLine {
	monthStart := firstOfMonth(lastDay)
	inWindow := func(t time.Time) bool {
		d := Day(t)
		return !d.Before(monthStart) && !d.After(lastDay)
	}

	shifted := make(map[string]int)
	consumed := make(map[string]int)
	for _, m := range movements {
		if m.Type == entity.MovementProductionShifting && inWindow(m.Date) {
			shifted[m.OutturnCode] += m.Bags
		}
	}
	for _, e := range productions {
		if inWindow(e.Date) {
			consumed[e.OutturnCode] += PaddyBagsDeducted(e.Product, e.QuantityQtls)
		}
	}

	codes := make(map[string]bool, len(shifted)+len(consumed))
	for c := range shifted {
		codes[c] = true
	}
	for c := range consumed {
		codes[c] = true
	}

	lines := make([]WorkingLine, 0, len(codes))
	for c := range codes {
		if o, ok := outturns[c]; ok && o.ClearedBefore(lastDay) {
			continue
		}
		remaining := shifted[c] - consumed[c]
		if remaining < 0 {
			remaining = 0
		}
		lines = append(lines, WorkingLine{
			OutturnCode:   c,
			ShiftedBags:   shifted[c],
			ConsumedBags:  consumed[c],
			RemainingBags: remaining,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].OutturnCode < lines[j].OutturnCode })
	return lines
}
