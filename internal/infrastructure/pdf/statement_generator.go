// Package pdf renders the daily stock statements as printable A4 documents:
// the paper registers the mill office keeps, generated from the replayed
// ledgers.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Mill name  │  Statement title + date range          │
//	│  ───────────────────────────────────────────────────────────│
//	│  Per day:  date, opening total                               │
//	│    TABLE: warehouse stock (variety | godown | kunch. | bags) │
//	│    TABLE: production stock (variety | outturn | bags)        │
//	│    closing total                                             │
//	│  ───────────────────────────────────────────────────────────│
//	│  MONTH-TO-DATE: outturn | shifted | consumed | remaining     │
//	│  FOOTER: diagnostics, if any                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/motherindia/millstock-api/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator renders stock statements with Maroto v2.
type StatementGenerator struct {
	MillName string
}

// NewStatementGenerator builds the generator.
func NewStatementGenerator(millName string) *StatementGenerator {
	return &StatementGenerator{MillName: millName}
}

func (g *StatementGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.MillName, true).
		Build()
	return maroto.New(cfg)
}

// GeneratePaddyStatement renders the paddy statement for a range and returns
// the PDF bytes.
func (g *StatementGenerator) GeneratePaddyStatement(rep *ledger.PaddyReport, from, to string) ([]byte, error) {
	m := g.newDocument("Paddy Stock Statement")

	m.AddRows(g.headerRow("PADDY STOCK STATEMENT", from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, day := range rep.Days {
		m.AddRows(dayHeaderRow(day.Date.Format(dateLayout), day.OpeningTotal))

		if len(day.ClosingWarehouse) > 0 {
			m.AddRows(sectionTitleRow("Warehouse stock at close"))
			m.AddRows(warehouseTableHeader())
			for _, l := range day.ClosingWarehouse {
				m.AddRows(warehouseTableRow(l))
			}
		}
		if len(day.ClosingProduction) > 0 {
			m.AddRows(sectionTitleRow("Production stock at close"))
			m.AddRows(productionTableHeader())
			for _, l := range day.ClosingProduction {
				m.AddRows(productionTableRow(l))
			}
		}

		m.AddRows(closingTotalRow(day.ClosingTotal))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	if len(rep.MonthToDateProduction) > 0 {
		m.AddRows(sectionTitleRow("Month-to-date production"))
		m.AddRows(workingTableHeader())
		for _, w := range rep.MonthToDateProduction {
			m.AddRows(workingTableRow(w))
		}
	}

	addDiagnosticsFooter(m, rep.Diagnostics)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate paddy statement: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateRiceStatement renders the rice statement for a range and returns
// the PDF bytes.
func (g *StatementGenerator) GenerateRiceStatement(rep *ledger.RiceReport, from, to string) ([]byte, error) {
	m := g.newDocument("Rice Stock Statement")

	m.AddRows(g.headerRow("RICE STOCK STATEMENT", from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, day := range rep.Days {
		m.AddRows(riceDayHeaderRow(day))

		if len(day.Closing) > 0 {
			m.AddRows(riceTableHeader())
			for _, l := range day.Closing {
				m.AddRows(riceTableRow(l))
			}
		}

		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	addDiagnosticsFooter(m, rep.Diagnostics)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate rice statement: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func (g *StatementGenerator) headerRow(title, from, to string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.MillName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s to %s", from, to), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func dayHeaderRow(date string, openingTotal int) core.Row {
	return row.New(9).Add(
		col.New(6).Add(text.New(date, props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 1,
		})),
		col.New(6).Add(text.New(fmt.Sprintf("Opening: %d bags", openingTotal), props.Text{
			Size: 9, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

func riceDayHeaderRow(day ledger.RiceDay) core.Row {
	return row.New(9).Add(
		col.New(6).Add(text.New(day.Date.Format(dateLayout), props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 1,
		})),
		col.New(6).Add(text.New(
			fmt.Sprintf("Opening: %s qtls   Closing: %s qtls",
				day.OpeningTotalQtls.StringFixed(2), day.ClosingTotalQtls.StringFixed(2)),
			props.Text{Size: 9, Align: align.Right, Top: 2, Color: colorGray},
		)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		})),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1,
	}))
}

func warehouseTableHeader() core.Row {
	return row.New(6).Add(
		headerCell("Variety", 4, align.Left),
		headerCell("Godown", 3, align.Left),
		headerCell("Kunchinittu", 3, align.Left),
		headerCell("Bags", 2, align.Right),
	)
}

func warehouseTableRow(l ledger.WarehouseLine) core.Row {
	return row.New(5).Add(
		cell(l.Variety, 4, align.Left),
		cell(l.Location.Warehouse, 3, align.Left),
		cell(l.Location.StorageUnit, 3, align.Left),
		cell(fmt.Sprintf("%d", l.Bags), 2, align.Right),
	)
}

func productionTableHeader() core.Row {
	return row.New(6).Add(
		headerCell("Variety", 5, align.Left),
		headerCell("Outturn", 5, align.Left),
		headerCell("Bags", 2, align.Right),
	)
}

func productionTableRow(l ledger.ProductionLine) core.Row {
	return row.New(5).Add(
		cell(l.Variety, 5, align.Left),
		cell(l.OutturnCode, 5, align.Left),
		cell(fmt.Sprintf("%d", l.Bags), 2, align.Right),
	)
}

func riceTableHeader() core.Row {
	return row.New(6).Add(
		headerCell("Product", 3, align.Left),
		headerCell("Packaging", 2, align.Left),
		headerCell("Bag kg", 1, align.Right),
		headerCell("Location", 2, align.Left),
		headerCell("Outturn", 2, align.Left),
		headerCell("Qtls", 1, align.Right),
		headerCell("Bags", 1, align.Right),
	)
}

func riceTableRow(l ledger.RiceLine) core.Row {
	return row.New(5).Add(
		cell(string(l.Product), 3, align.Left),
		cell(l.Packaging, 2, align.Left),
		cell(fmt.Sprintf("%d", l.BagSizeKg), 1, align.Right),
		cell(l.Location, 2, align.Left),
		cell(l.OutturnCode, 2, align.Left),
		cell(l.QuantityQtls.StringFixed(2), 1, align.Right),
		cell(fmt.Sprintf("%d", l.Bags), 1, align.Right),
	)
}

func closingTotalRow(total int) core.Row {
	return row.New(7).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Closing: %d bags", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
		})),
	)
}

func workingTableHeader() core.Row {
	return row.New(6).Add(
		headerCell("Outturn", 4, align.Left),
		headerCell("Shifted", 3, align.Right),
		headerCell("Consumed", 3, align.Right),
		headerCell("Remaining", 2, align.Right),
	)
}

func workingTableRow(w ledger.WorkingLine) core.Row {
	return row.New(5).Add(
		cell(w.OutturnCode, 4, align.Left),
		cell(fmt.Sprintf("%d", w.ShiftedBags), 3, align.Right),
		cell(fmt.Sprintf("%d", w.ConsumedBags), 3, align.Right),
		cell(fmt.Sprintf("%d", w.RemainingBags), 2, align.Right),
	)
}

func addDiagnosticsFooter(m core.Maroto, diags []ledger.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow(fmt.Sprintf("Findings (%d)", len(diags))))
	for _, d := range diags {
		m.AddRows(row.New(5).Add(
			col.New(12).Add(text.New("• "+d.Message, props.Text{
				Size: 7, Color: colorGray, Top: 1,
			})),
		))
	}
}
