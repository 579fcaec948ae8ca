// Package export writes the stock statements as spreadsheet and CSV files
// for the mill office's own bookkeeping.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/motherindia/millstock-api/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

// ExcelExporter writes XLSX workbooks with excelize.
type ExcelExporter struct{}

// NewExcelExporter builds the exporter.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// PaddyWorkbook writes one sheet of closing stock lines per day plus a
// summary sheet, and returns the XLSX bytes.
func (e *ExcelExporter) PaddyWorkbook(rep *ledger.PaddyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Paddy Stock"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	headers := []string{"Date", "Kind", "Variety", "Godown", "Kunchinittu", "Outturn", "Bags"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	r := 2
	for _, day := range rep.Days {
		date := day.Date.Format(dateLayout)
		for _, l := range day.ClosingWarehouse {
			setRow(f, sheet, r, date, "warehouse", l.Variety, l.Location.Warehouse, l.Location.StorageUnit, "", l.Bags)
			r++
		}
		for _, l := range day.ClosingProduction {
			setRow(f, sheet, r, date, "production", l.Variety, "", "", l.OutturnCode, l.Bags)
			r++
		}
	}

	if len(rep.MonthToDateProduction) > 0 {
		const summary = "Month To Date"
		if _, err := f.NewSheet(summary); err != nil {
			return nil, fmt.Errorf("export: add summary sheet: %w", err)
		}
		for i, h := range []string{"Outturn", "Shifted", "Consumed", "Remaining"} {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(summary, cell, h)
		}
		for i, w := range rep.MonthToDateProduction {
			row := strconv.Itoa(i + 2)
			f.SetCellValue(summary, "A"+row, w.OutturnCode)
			f.SetCellValue(summary, "B"+row, w.ShiftedBags)
			f.SetCellValue(summary, "C"+row, w.ConsumedBags)
			f.SetCellValue(summary, "D"+row, w.RemainingBags)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// RiceWorkbook writes the rice closing stock per day and returns the XLSX
// bytes.
func (e *ExcelExporter) RiceWorkbook(rep *ledger.RiceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Rice Stock"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	headers := []string{"Date", "Product", "Packaging", "Bag Size Kg", "Location", "Outturn", "Quintals", "Bags"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	r := 2
	for _, day := range rep.Days {
		date := day.Date.Format(dateLayout)
		for _, l := range day.Closing {
			row := strconv.Itoa(r)
			f.SetCellValue(sheet, "A"+row, date)
			f.SetCellValue(sheet, "B"+row, string(l.Product))
			f.SetCellValue(sheet, "C"+row, l.Packaging)
			f.SetCellValue(sheet, "D"+row, l.BagSizeKg)
			f.SetCellValue(sheet, "E"+row, l.Location)
			f.SetCellValue(sheet, "F"+row, l.OutturnCode)
			f.SetCellValue(sheet, "G"+row, l.QuantityQtls.InexactFloat64())
			f.SetCellValue(sheet, "H"+row, l.Bags)
			r++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, r int, date, kind, variety, warehouse, unit, outturn string, bags int) {
	row := strconv.Itoa(r)
	f.SetCellValue(sheet, "A"+row, date)
	f.SetCellValue(sheet, "B"+row, kind)
	f.SetCellValue(sheet, "C"+row, variety)
	f.SetCellValue(sheet, "D"+row, warehouse)
	f.SetCellValue(sheet, "E"+row, unit)
	f.SetCellValue(sheet, "F"+row, outturn)
	f.SetCellValue(sheet, "G"+row, bags)
}

// PaddyCSV writes the same per-day closing lines as PaddyWorkbook in CSV.
func (e *ExcelExporter) PaddyCSV(rep *ledger.PaddyReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "kind", "variety", "godown", "kunchinittu", "outturn", "bags"}); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, day := range rep.Days {
		date := day.Date.Format(dateLayout)
		for _, l := range day.ClosingWarehouse {
			rec := []string{date, "warehouse", l.Variety, l.Location.Warehouse, l.Location.StorageUnit, "", strconv.Itoa(l.Bags)}
			if err := w.Write(rec); err != nil {
				return nil, fmt.Errorf("export: write csv row: %w", err)
			}
		}
		for _, l := range day.ClosingProduction {
			rec := []string{date, "production", l.Variety, "", "", l.OutturnCode, strconv.Itoa(l.Bags)}
			if err := w.Write(rec); err != nil {
				return nil, fmt.Errorf("export: write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RiceCSV writes the rice closing stock per day in CSV.
func (e *ExcelExporter) RiceCSV(rep *ledger.RiceReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "product", "packaging", "bag_size_kg", "location", "outturn", "quintals", "bags"}); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, day := range rep.Days {
		date := day.Date.Format(dateLayout)
		for _, l := range day.Closing {
			rec := []string{
				date, string(l.Product), l.Packaging, strconv.Itoa(l.BagSizeKg),
				l.Location, l.OutturnCode, l.QuantityQtls.String(), strconv.Itoa(l.Bags),
			}
			if err := w.Write(rec); err != nil {
				return nil, fmt.Errorf("export: write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
