package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RiceInput is everything the rice ledger needs for one computation.
type RiceInput struct {
	RangeStart  time.Time
	RangeEnd    time.Time
	Productions []entity.RiceProductionEntry
	Outturns    map[string]entity.Outturn
}

// RiceLine is one rice stock line or movement delta, in quintals and bags.
type RiceLine struct {
	Product      entity.ProductType
	Packaging    string
	BagSizeKg    int
	Location     string
	OutturnCode  string
	QuantityQtls decimal.Decimal
	Bags         int
}

// RiceDailyMovements groups one day's applied deltas.
type RiceDailyMovements struct {
	Kunchinittu []RiceLine // production stored at a location
	Loading     []RiceLine // dispatched from the mill
}

// RiceDay is the rice ledger statement for one calendar date.
type RiceDay struct {
	Date             time.Time
	Opening          []RiceLine
	Movements        RiceDailyMovements
	Closing          []RiceLine
	OpeningTotalQtls decimal.Decimal
	ClosingTotalQtls decimal.Decimal
}

// RiceReport is the engine output for a date range.
type RiceReport struct {
	Days        []RiceDay
	Diagnostics []Diagnostic
}

// ReplayRice folds all approved rice-production entries into per-date
// opening/closing rice stock, keyed by product, packaging, bag size, location
// and source outturn.
//
// Kunchinittu entries add; loading entries subtract from the first stock
// entry matching on everything except location (dispatches carry only lorry
// and bill identifiers). Entries at the CLEARING location are acknowledged
// write-off and never accumulate. Pools whose quantity or bags reach zero are
// removed; loading never creates negative or phantom stock.
func ReplayRice(in RiceInput) (*RiceReport, error) {
	start, end := Day(in.RangeStart), Day(in.RangeEnd)
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	f := &riceFold{
		stock:    make(map[RiceKey]*riceBalance),
		outturns: in.Outturns,
	}
	entries := f.usableEntries(in.Productions)

	i := 0
	for i < len(entries) && Day(entries[i].Date).Before(start) {
		f.apply(entries[i], nil)
		i++
	}

	rep := &RiceReport{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := RiceDay{Date: d}
		day.Opening, day.OpeningTotalQtls = f.snapshot(d, false)

		for i < len(entries) && Day(entries[i].Date).Equal(d) {
			f.apply(entries[i], &day.Movements)
			i++
		}

		day.Closing, day.ClosingTotalQtls = f.snapshot(d, true)
		rep.Days = append(rep.Days, day)
	}

	rep.Diagnostics = f.diags
	return rep, nil
}

// ─── fold state ───────────────────────────────────────────────────────────────

type riceBalance struct {
	Qtls decimal.Decimal
	Bags int
}

type riceFold struct {
	stock    map[RiceKey]*riceBalance
	order    []RiceKey // insertion order; "first matching entry" is deterministic
	outturns map[string]entity.Outturn
	diags    []Diagnostic
}

// usableEntries filters to approved entries with a date, excluding CLEARING
// write-offs, sorted by (date, ID).
func (f *riceFold) usableEntries(entries []entity.RiceProductionEntry) []entity.RiceProductionEntry {
	out := make([]entity.RiceProductionEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status != entity.StatusApproved || e.IsClearing() {
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

func (f *riceFold) apply(e entity.RiceProductionEntry, collect *RiceDailyMovements) {
	switch e.MovementType {
	case entity.RiceMovementKunchinittu:
		key := RiceKey{
			Product:     e.Product,
			Packaging:   e.Packaging,
			BagSizeKg:   e.BagSizeKg,
			Location:    e.LocationCode,
			OutturnCode: e.OutturnCode,
		}
		f.add(key, e.QuantityQtls, e.Bags)
		if collect != nil {
			collect.Kunchinittu = append(collect.Kunchinittu, riceLine(key, e.QuantityQtls, e.Bags))
		}

	case entity.RiceMovementLoading:
		want := RiceKey{
			Product:     e.Product,
			Packaging:   e.Packaging,
			BagSizeKg:   e.BagSizeKg,
			OutturnCode: e.OutturnCode,
		}
		key, ok := f.firstMatch(want)
		if !ok {
			f.diag(DiagUnmatchedLoading, Day(e.Date), e.ID,
				fmt.Sprintf("loading %s x%d (%s, %dkg, outturn %s) has no stock entry to dispatch from; current keys: %s",
					e.Product, e.Bags, e.Packaging, e.BagSizeKg, e.OutturnCode, f.keySummary()))
			return
		}
		f.subtract(key, e)
		if collect != nil {
			collect.Loading = append(collect.Loading, riceLine(key, e.QuantityQtls, e.Bags))
		}
	}
}

func (f *riceFold) add(key RiceKey, qtls decimal.Decimal, bags int) {
	b, ok := f.stock[key]
	if !ok {
		b = &riceBalance{Qtls: decimal.Zero}
		f.stock[key] = b
		f.order = append(f.order, key)
	}
	b.Qtls = b.Qtls.Add(qtls)
	b.Bags += bags
}

// firstMatch scans stock in insertion order for the first pool matching the
// wanted key on everything except location.
func (f *riceFold) firstMatch(want RiceKey) (RiceKey, bool) {
	for _, k := range f.order {
		if k.SameProductLot(want) {
			return k, true
		}
	}
	return RiceKey{}, false
}

func (f *riceFold) subtract(key RiceKey, e entity.RiceProductionEntry) {
	b := f.stock[key]
	if b.Qtls.LessThan(e.QuantityQtls) || b.Bags < e.Bags {
		f.diag(DiagInsufficientStock, Day(e.Date), e.ID,
			fmt.Sprintf("loading %s x%d (%s qtls) exceeds stock at %s (%s qtls, %d bags); pool removed",
				e.Product, e.Bags, e.QuantityQtls, key.Location, b.Qtls, b.Bags))
	}
	b.Qtls = b.Qtls.Sub(e.QuantityQtls)
	b.Bags -= e.Bags
	if b.Qtls.LessThanOrEqual(decimal.Zero) || b.Bags <= 0 {
		f.remove(key)
	}
}

func (f *riceFold) remove(key RiceKey) {
	delete(f.stock, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the running stock into sorted lines valid at the day
// boundary. A cleared outturn disappears from opening stock on dates after
// clearedAt and, unlike the paddy ledger, already from closing stock on the
// clearing date itself.
func (f *riceFold) snapshot(day time.Time, closing bool) ([]RiceLine, decimal.Decimal) {
	lines := make([]RiceLine, 0, len(f.stock))
	total := decimal.Zero
	for k, b := range f.stock {
		if o, ok := f.outturns[k.OutturnCode]; ok {
			if closing && o.ClearedOnOrBefore(day) {
				continue
			}
			if !closing && o.ClearedBefore(day) {
				continue
			}
		}
		lines = append(lines, riceLine(k, b.Qtls, b.Bags))
		total = total.Add(b.Qtls)
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		if a.Packaging != b.Packaging {
			return a.Packaging < b.Packaging
		}
		if a.BagSizeKg != b.BagSizeKg {
			return a.BagSizeKg < b.BagSizeKg
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.OutturnCode < b.OutturnCode
	})
	return lines, total
}

func (f *riceFold) keySummary() string {
	if len(f.order) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(f.order))
	for _, k := range f.order {
		parts = append(parts, fmt.Sprintf("%s/%s/%dkg@%s#%s", k.Product, k.Packaging, k.BagSizeKg, k.Location, k.OutturnCode))
	}
	return strings.Join(parts, ", ")
}

func (f *riceFold) diag(kind DiagnosticKind, date time.Time, recordID, msg string) {
	f.diags = append(f.diags, Diagnostic{Kind: kind, Date: date, RecordID: recordID, Message: msg})
}

func riceLine(k RiceKey, qtls decimal.Decimal, bags int) RiceLine {
	return RiceLine{
		Product:      k.Product,
		Packaging:    k.Packaging,
		BagSizeKg:    k.BagSizeKg,
		Location:     k.Location,
		OutturnCode:  k.OutturnCode,
		QuantityQtls: qtls,
		Bags:         bags,
	}
}
