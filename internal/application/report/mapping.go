package report

import (
	"time"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
)

func toPaddyReportDTO(from, to string, rep *ledger.PaddyReport) *dto.PaddyStockReportResponse {
	out := &dto.PaddyStockReportResponse{
		From:                  from,
		To:                    to,
		Days:                  make([]dto.PaddyDayDTO, 0, len(rep.Days)),
		MonthToDateProduction: make([]dto.WorkingLineDTO, 0, len(rep.MonthToDateProduction)),
		Diagnostics:           toDiagnosticDTOs(rep.Diagnostics),
	}
	for _, d := range rep.Days {
		out.Days = append(out.Days, dto.PaddyDayDTO{
			Date:              d.Date.Format(dateLayout),
			OpeningWarehouse:  toWarehouseLineDTOs(d.OpeningWarehouse),
			OpeningProduction: toProductionLineDTOs(d.OpeningProduction),
			Movements: dto.PaddyMovementsDTO{
				Purchase:           toMovementLineDTOs(d.Movements.Purchase),
				Shifting:           toMovementLineDTOs(d.Movements.Shifting),
				ProductionShifting: toMovementLineDTOs(d.Movements.ProductionShifting),
				Loading:            toMovementLineDTOs(d.Movements.Loading),
				RiceProduction:     toConsumptionLineDTOs(d.Movements.RiceProduction),
			},
			ClosingWarehouse:  toWarehouseLineDTOs(d.ClosingWarehouse),
			ClosingProduction: toProductionLineDTOs(d.ClosingProduction),
			OpeningTotal:      d.OpeningTotal,
			ClosingTotal:      d.ClosingTotal,
		})
	}
	for _, w := range rep.MonthToDateProduction {
		out.MonthToDateProduction = append(out.MonthToDateProduction, dto.WorkingLineDTO{
			OutturnCode:   w.OutturnCode,
			ShiftedBags:   w.ShiftedBags,
			ConsumedBags:  w.ConsumedBags,
			RemainingBags: w.RemainingBags,
		})
	}
	return out
}

func toRiceReportDTO(from, to string, rep *ledger.RiceReport) *dto.RiceStockReportResponse {
	out := &dto.RiceStockReportResponse{
		From:        from,
		To:          to,
		Days:        make([]dto.RiceDayDTO, 0, len(rep.Days)),
		Diagnostics: toDiagnosticDTOs(rep.Diagnostics),
	}
	for _, d := range rep.Days {
		out.Days = append(out.Days, dto.RiceDayDTO{
			Date:    d.Date.Format(dateLayout),
			Opening: toRiceLineDTOs(d.Opening),
			Movements: dto.RiceMovementsDTO{
				Kunchinittu: toRiceLineDTOs(d.Movements.Kunchinittu),
				Loading:     toRiceLineDTOs(d.Movements.Loading),
			},
			Closing:          toRiceLineDTOs(d.Closing),
			OpeningTotalQtls: d.OpeningTotalQtls,
			ClosingTotalQtls: d.ClosingTotalQtls,
		})
	}
	return out
}

func toDiagnosticDTOs(diags []ledger.Diagnostic) []dto.DiagnosticDTO {
	if len(diags) == 0 {
		return nil
	}
	out := make([]dto.DiagnosticDTO, 0, len(diags))
	for _, d := range diags {
		dd := dto.DiagnosticDTO{
			Kind:     string(d.Kind),
			RecordID: d.RecordID,
			Message:  d.Message,
		}
		if !d.Date.IsZero() {
			dd.Date = d.Date.Format(dateLayout)
		}
		out = append(out, dd)
	}
	return out
}

func toWarehouseLineDTOs(lines []ledger.WarehouseLine) []dto.WarehouseLineDTO {
	out := make([]dto.WarehouseLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.WarehouseLineDTO{
			Variety:     l.Variety,
			Warehouse:   l.Location.Warehouse,
			StorageUnit: l.Location.StorageUnit,
			Bags:        l.Bags,
		})
	}
	return out
}

func toProductionLineDTOs(lines []ledger.ProductionLine) []dto.ProductionLineDTO {
	out := make([]dto.ProductionLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ProductionLineDTO{
			Variety:     l.Variety,
			OutturnCode: l.OutturnCode,
			Bags:        l.Bags,
		})
	}
	return out
}

func toMovementLineDTOs(lines []ledger.MovementLine) []dto.PaddyMovementLineDTO {
	if len(lines) == 0 {
		return nil
	}
	out := make([]dto.PaddyMovementLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.PaddyMovementLineDTO{
			RecordID:    l.RecordID,
			Variety:     l.Variety,
			Bags:        l.Bags,
			From:        toLocationDTO(l.From),
			To:          toLocationDTO(l.To),
			OutturnCode: l.OutturnCode,
		})
	}
	return out
}

func toConsumptionLineDTOs(lines []ledger.ConsumptionLine) []dto.PaddyConsumptionLineDTO {
	if len(lines) == 0 {
		return nil
	}
	out := make([]dto.PaddyConsumptionLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.PaddyConsumptionLineDTO{
			RecordID:     l.RecordID,
			OutturnCode:  l.OutturnCode,
			Product:      string(l.Product),
			BagsDeducted: l.BagsDeducted,
		})
	}
	return out
}

func toRiceLineDTOs(lines []ledger.RiceLine) []dto.RiceLineDTO {
	if len(lines) == 0 {
		return nil
	}
	out := make([]dto.RiceLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.RiceLineDTO{
			Product:      string(l.Product),
			Packaging:    l.Packaging,
			BagSizeKg:    l.BagSizeKg,
			Location:     l.Location,
			OutturnCode:  l.OutturnCode,
			QuantityQtls: l.QuantityQtls,
			Bags:         l.Bags,
		})
	}
	return out
}

func toLocationDTO(l *entity.Location) *dto.LocationDTO {
	if l == nil {
		return nil
	}
	return &dto.LocationDTO{Warehouse: l.Warehouse, StorageUnit: l.StorageUnit}
}

// DefaultRange returns today's single-day range using the mill's business
// date: before the rollover hour the operational day is still yesterday.
func DefaultRange(now time.Time, rolloverHour int) (string, string) {
	if now.Hour() < rolloverHour {
		now = now.AddDate(0, 0, -1)
	}
	d := now.Format(dateLayout)
	return d, d
}
