package report

import (
	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
	"github.com/motherindia/millstock-api/internal/domain/repository"
	"github.com/motherindia/millstock-api/pkg/logger"
)

// RiceStockUseCase builds the day-by-day rice stock statement.
type RiceStockUseCase struct {
	productions repository.RiceProductionRepository
	outturns    repository.OutturnRepository
	log         *logger.Logger
}

// NewRiceStockUseCase builds the usecase.
func NewRiceStockUseCase(
	productions repository.RiceProductionRepository,
	outturns repository.OutturnRepository,
	log *logger.Logger,
) *RiceStockUseCase {
	return &RiceStockUseCase{productions: productions, outturns: outturns, log: log}
}

// Report replays the rice ledger for [from, to] (YYYY-MM-DD, inclusive) and
// returns the statement plus advisory diagnostics.
func (uc *RiceStockUseCase) Report(fromStr, toStr string) (*dto.RiceStockReportResponse, error) {
	rep, _, err := uc.Statement(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return toRiceReportDTO(fromStr, toStr, rep), nil
}

// Statement is the domain-level variant used by the PDF and export renderers.
func (uc *RiceStockUseCase) Statement(fromStr, toStr string) (*ledger.RiceReport, map[string]entity.Outturn, error) {
	from, to, err := parseRange(fromStr, toStr)
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

	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart:  from,
		RangeEnd:    to,
		Productions: productions,
		Outturns:    outturns,
	})
	if err != nil {
		return nil, nil, err
	}
	rep.Diagnostics = append(rep.Diagnostics, ledger.CheckRice(rep, outturns)...)
	logDiagnostics(uc.log, "rice", fromStr, toStr, rep.Diagnostics)
	return rep, outturns, nil
}
