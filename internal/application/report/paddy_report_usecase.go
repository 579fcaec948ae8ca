// Package report computes the paddy and rice stock statements: it fetches
// records through the repository ports, replays them through the ledger
// engine and maps the result for the HTTP, PDF and export surfaces.
package report

import (
	"time"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
	"github.com/motherindia/millstock-api/internal/domain/repository"
	"github.com/motherindia/millstock-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// PaddyStockUseCase builds the day-by-day paddy stock statement.
type PaddyStockUseCase struct {
	movements   repository.MovementRepository
	productions repository.RiceProductionRepository
	outturns    repository.OutturnRepository
	log         *logger.Logger
}

// NewPaddyStockUseCase builds the usecase.
func NewPaddyStockUseCase(
	movements repository.MovementRepository,
	productions repository.RiceProductionRepository,
	outturns repository.OutturnRepository,
	log *logger.Logger,
) *PaddyStockUseCase {
	return &PaddyStockUseCase{movements: movements, productions: productions, outturns: outturns, log: log}
}

// Report replays the paddy ledger for [from, to] (YYYY-MM-DD, inclusive) and
// returns the statement plus advisory diagnostics.
func (uc *PaddyStockUseCase) Report(fromStr, toStr string) (*dto.PaddyStockReportResponse, error) {
	rep, _, err := uc.Statement(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return toPaddyReportDTO(fromStr, toStr, rep), nil
}

// Statement is the domain-level variant used by the PDF and export renderers.
// Reconciliation findings are appended to the report's diagnostics and logged;
// they never fail the request.
func (uc *PaddyStockUseCase) Statement(fromStr, toStr string) (*ledger.PaddyReport, map[string]entity.Outturn, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, nil, err
	}

	movements, err := uc.movements.ListUpTo(to)
	if err != nil {
		return nil, nil, err
	}
	productions, err := uc.productions.ListUpTo(to)
	if err != nil {
		return nil, nil, err
	}
	outturns, err := outturnMap(uc.outturns)
	if err != nil {
		return nil, nil, err
	}

	rep, err := ledger.ReplayPaddy(ledger.PaddyInput{
		RangeStart:  from,
		RangeEnd:    to,
		Movements:   movements,
		Productions: productions,
		Outturns:    outturns,
	})
	if err != nil {
		return nil, nil, err
	}
	rep.Diagnostics = append(rep.Diagnostics, ledger.CheckPaddy(rep, outturns)...)
	logDiagnostics(uc.log, "paddy", fromStr, toStr, rep.Diagnostics)
	return rep, outturns, nil
}

// ─── shared helpers ───────────────────────────────────────────────────────────

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(dateLayout, fromStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	to, err := time.ParseInLocation(dateLayout, toStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.ErrInvalidRange
	}
	return from, to, nil
}

func outturnMap(repo repository.OutturnRepository) (map[string]entity.Outturn, error) {
	list, err := repo.List(true)
	if err != nil {
		return nil, err
	}
	m := make(map[string]entity.Outturn, len(list))
	for _, o := range list {
		m[o.Code] = o
	}
	return m, nil
}

func logDiagnostics(log *logger.Logger, kind, from, to string, diags []ledger.Diagnostic) {
	for _, d := range diags {
		ev := log.Warn().
			Str("report", kind).
			Str("from", from).
			Str("to", to).
			Str("diagnostic", string(d.Kind))
		if d.RecordID != "" {
			ev = ev.Str("record_id", d.RecordID)
		}
		if !d.Date.IsZero() {
			ev = ev.Str("date", d.Date.Format(dateLayout))
		}
		ev.Msg(d.Message)
	}
}
