package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

// ClearingTxRunner runs outturn clearing atomically: the cleared flag and the
// synthetic write-off entries commit together or not at all.
type ClearingTxRunner interface {
	Run(ctx context.Context, fn func(
		outturns repository.OutturnRepository,
		productions repository.RiceProductionRepository,
	) error) error
}

// OutturnUseCase manages milling runs, including the irreversible clearing
// operation.
type OutturnUseCase struct {
	outturns    repository.OutturnRepository
	productions repository.RiceProductionRepository
	tx          ClearingTxRunner
}

// NewOutturnUseCase builds the usecase.
func NewOutturnUseCase(outturns repository.OutturnRepository, productions repository.RiceProductionRepository, tx ClearingTxRunner) *OutturnUseCase {
	return &OutturnUseCase{outturns: outturns, productions: productions, tx: tx}
}

// Create opens a new milling run.
func (uc *OutturnUseCase) Create(userID string, in dto.CreateOutturnRequest) (*dto.OutturnResponse, error) {
	if in.Code == "" || in.AllottedVariety == "" {
		return nil, domain.ErrInvalidInput
	}
	o := &entity.Outturn{
		Code:            in.Code,
		AllottedVariety: in.AllottedVariety,
		Type:            in.Type,
		CreatedAt:       time.Now(),
		CreatedBy:       userID,
	}
	if err := uc.outturns.Create(o); err != nil {
		return nil, err
	}
	return toOutturnResponse(o), nil
}

// GetByCode fetches an outturn.
func (uc *OutturnUseCase) GetByCode(code string) (*dto.OutturnResponse, error) {
	o, err := uc.outturns.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return toOutturnResponse(o), nil
}

// List returns outturns, optionally including cleared ones.
func (uc *OutturnUseCase) List(includeCleared bool) (*dto.OutturnListResponse, error) {
	list, err := uc.outturns.List(includeCleared)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OutturnResponse, 0, len(list))
	for i := range list {
		items = append(items, *toOutturnResponse(&list[i]))
	}
	return &dto.OutturnListResponse{Items: items}, nil
}

// Clear closes an outturn as of the given day (today when omitted). Whatever
// rice still stands against it is written off through synthetic entries at
// the clearing location, so the remaining quantities stay auditable after the
// stock itself vanishes from the ledgers. Clearing an already-cleared outturn
// is a no-op returning the current state.
func (uc *OutturnUseCase) Clear(code, dateStr, userID string) (*dto.OutturnResponse, error) {
	o, err := uc.outturns.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if o.IsCleared {
		return toOutturnResponse(o), nil
	}

	day := ledger.Day(time.Now())
	if dateStr != "" {
		if day, err = parseDay(dateStr); err != nil {
			return nil, err
		}
	}

	remaining, err := uc.remainingRice(code, day)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.tx.Run(context.Background(), func(
		outturns repository.OutturnRepository,
		productions repository.RiceProductionRepository,
	) error {
		if err := outturns.MarkCleared(code, day, userID); err != nil {
			return err
		}
		for _, l := range remaining {
			writeOff := &entity.RiceProductionEntry{
				ID:           uuid.New().String(),
				Date:         day,
				OutturnCode:  code,
				Product:      l.Product,
				Bags:         l.Bags,
				QuantityQtls: l.QuantityQtls,
				Packaging:    l.Packaging,
				BagSizeKg:    l.BagSizeKg,
				MovementType: entity.RiceMovementKunchinittu,
				LocationCode: entity.ClearingLocationCode,
				Status:       entity.StatusApproved,
				ApprovedBy:   userID,
				CreatedAt:    now,
				CreatedBy:    userID,
			}
			if err := productions.Create(writeOff); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err = uc.outturns.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return toOutturnResponse(o), nil
}

// remainingRice replays the rice ledger for the clearing day and returns the
// outturn's closing stock lines.
func (uc *OutturnUseCase) remainingRice(code string, day time.Time) ([]ledger.RiceLine, error) {
	entries, err := uc.productions.ListUpTo(day)
	if err != nil {
		return nil, err
	}
	all, err := uc.outturns.List(true)
	if err != nil {
		return nil, err
	}
	outturns := make(map[string]entity.Outturn, len(all))
	for _, o := range all {
		outturns[o.Code] = o
	}

	rep, err := ledger.ReplayRice(ledger.RiceInput{
		RangeStart:  day,
		RangeEnd:    day,
		Productions: entries,
		Outturns:    outturns,
	})
	if err != nil {
		return nil, err
	}

	var remaining []ledger.RiceLine
	for _, l := range rep.Days[len(rep.Days)-1].Closing {
		if l.OutturnCode == code {
			remaining = append(remaining, l)
		}
	}
	return remaining, nil
}

func toOutturnResponse(o *entity.Outturn) *dto.OutturnResponse {
	return &dto.OutturnResponse{
		Code:            o.Code,
		AllottedVariety: o.AllottedVariety,
		Type:            o.Type,
		IsCleared:       o.IsCleared,
		ClearedAt:       o.ClearedAt,
		CreatedAt:       o.CreatedAt,
		CreatedBy:       o.CreatedBy,
	}
}
