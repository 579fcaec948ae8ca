package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

// HamaliUseCase manages labor rates and entries. An entry's amount is frozen
// from the rate effective on its date; later rate revisions never rewrite
// recorded amounts.
type HamaliUseCase struct {
	hamali repository.HamaliRepository
}

// NewHamaliUseCase builds the usecase.
func NewHamaliUseCase(hamali repository.HamaliRepository) *HamaliUseCase {
	return &HamaliUseCase{hamali: hamali}
}

func validWorkType(s string) bool {
	switch entity.HamaliWorkType(s) {
	case entity.HamaliLoading, entity.HamaliUnloading, entity.HamaliShifting, entity.HamaliStacking:
		return true
	}
	return false
}

// SetRate records a new per-bag rate effective from a date.
func (uc *HamaliUseCase) SetRate(userID string, in dto.CreateHamaliRateRequest) (*dto.HamaliRateResponse, error) {
	if !validWorkType(in.WorkType) || in.RatePerBag.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	from, err := parseDay(in.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	rate := &entity.HamaliRate{
		ID:            uuid.New().String(),
		WorkType:      entity.HamaliWorkType(in.WorkType),
		RatePerBag:    in.RatePerBag,
		EffectiveFrom: from,
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}
	if err := uc.hamali.CreateRate(rate); err != nil {
		return nil, err
	}
	return toHamaliRateResponse(rate), nil
}

// ListRates returns the rate history for a work type, newest first.
func (uc *HamaliUseCase) ListRates(workType string) (*dto.HamaliRateListResponse, error) {
	if !validWorkType(workType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.hamali.ListRates(entity.HamaliWorkType(workType))
	if err != nil {
		return nil, err
	}
	items := make([]dto.HamaliRateResponse, 0, len(list))
	for i := range list {
		items = append(items, *toHamaliRateResponse(&list[i]))
	}
	return &dto.HamaliRateListResponse{Items: items}, nil
}

// CreateEntry records labor done on a date, pricing it at the rate effective
// that day. Without an applicable rate the entry is rejected.
func (uc *HamaliUseCase) CreateEntry(userID string, in dto.CreateHamaliEntryRequest) (*dto.HamaliEntryResponse, error) {
	if !validWorkType(in.WorkType) || in.Bags <= 0 || in.Gang == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDay(in.Date)
	if err != nil {
		return nil, err
	}
	rate, err := uc.hamali.RateFor(entity.HamaliWorkType(in.WorkType), date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}

	e := &entity.HamaliEntry{
		ID:         uuid.New().String(),
		Date:       date,
		WorkType:   entity.HamaliWorkType(in.WorkType),
		Gang:       in.Gang,
		Bags:       in.Bags,
		RatePerBag: rate.RatePerBag,
		Amount:     rate.RatePerBag.Mul(decimal.NewFromInt(int64(in.Bags))),
		Remarks:    in.Remarks,
		CreatedAt:  time.Now(),
		CreatedBy:  userID,
	}
	if err := uc.hamali.CreateEntry(e); err != nil {
		return nil, err
	}
	return toHamaliEntryResponse(e), nil
}

// ListEntries returns labor entries in a date window plus the period total.
func (uc *HamaliUseCase) ListEntries(fromStr, toStr string) (*dto.HamaliEntryListResponse, error) {
	from, err := parseDay(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(toStr)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidRange
	}
	list, err := uc.hamali.ListEntriesByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HamaliEntryResponse, 0, len(list))
	total := decimal.Zero
	for i := range list {
		items = append(items, *toHamaliEntryResponse(&list[i]))
		total = total.Add(list[i].Amount)
	}
	return &dto.HamaliEntryListResponse{Items: items, TotalAmount: total}, nil
}

// DeleteEntry removes a labor entry.
func (uc *HamaliUseCase) DeleteEntry(id string) error {
	return uc.hamali.DeleteEntry(id)
}

func toHamaliRateResponse(r *entity.HamaliRate) *dto.HamaliRateResponse {
	return &dto.HamaliRateResponse{
		ID:            r.ID,
		WorkType:      string(r.WorkType),
		RatePerBag:    r.RatePerBag,
		EffectiveFrom: r.EffectiveFrom.Format(dateLayout),
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
	}
}

func toHamaliEntryResponse(e *entity.HamaliEntry) *dto.HamaliEntryResponse {
	return &dto.HamaliEntryResponse{
		ID:         e.ID,
		Date:       e.Date.Format(dateLayout),
		WorkType:   string(e.WorkType),
		Gang:       e.Gang,
		Bags:       e.Bags,
		RatePerBag: e.RatePerBag,
		Amount:     e.Amount,
		Remarks:    e.Remarks,
		CreatedAt:  e.CreatedAt,
		CreatedBy:  e.CreatedBy,
	}
}
