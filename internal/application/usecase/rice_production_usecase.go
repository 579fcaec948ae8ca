package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

// RiceProductionUseCase records produced rice against outturns and drives the
// approval workflow for those entries.
type RiceProductionUseCase struct {
	productions repository.RiceProductionRepository
	outturns    repository.OutturnRepository
}

// NewRiceProductionUseCase builds the usecase.
func NewRiceProductionUseCase(productions repository.RiceProductionRepository, outturns repository.OutturnRepository) *RiceProductionUseCase {
	return &RiceProductionUseCase{productions: productions, outturns: outturns}
}

// Create records a rice production entry in pending status. The quantity in
// quintals is always derived here (bags x bag size kg / 100); a client-sent
// quantity is never trusted.
func (uc *RiceProductionUseCase) Create(userID string, in dto.CreateRiceProductionRequest) (*dto.RiceProductionResponse, error) {
	product := entity.ProductType(in.Product)
	mtype := entity.RiceMovementType(in.MovementType)
	if !product.Valid() || in.Bags <= 0 || in.BagSizeKg <= 0 || in.OutturnCode == "" {
		return nil, domain.ErrInvalidInput
	}
	switch mtype {
	case entity.RiceMovementKunchinittu:
		if in.LocationCode == "" || in.LocationCode == entity.ClearingLocationCode {
			// CLEARING is reserved for the synthetic write-off at clearing time.
			return nil, domain.ErrInvalidInput
		}
	case entity.RiceMovementLoading:
		if in.LocationCode != "" {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDay(in.Date)
	if err != nil {
		return nil, err
	}
	o, err := uc.outturns.GetByCode(in.OutturnCode)
	if err != nil {
		return nil, err
	}
	if o.IsCleared {
		return nil, domain.ErrOutturnCleared
	}

	qtls := decimal.NewFromInt(int64(in.Bags)).
		Mul(decimal.NewFromInt(int64(in.BagSizeKg))).
		Div(decimal.NewFromInt(100))

	e := &entity.RiceProductionEntry{
		ID:           uuid.New().String(),
		Date:         date,
		OutturnCode:  in.OutturnCode,
		Product:      product,
		Bags:         in.Bags,
		QuantityQtls: qtls,
		PackagingID:  in.PackagingID,
		Packaging:    in.Packaging,
		BagSizeKg:    in.BagSizeKg,
		MovementType: mtype,
		LocationCode: in.LocationCode,
		LorryNumber:  in.LorryNumber,
		BillNumber:   in.BillNumber,
		Status:       entity.StatusPending,
		CreatedAt:    time.Now(),
		CreatedBy:    userID,
	}
	if err := uc.productions.Create(e); err != nil {
		return nil, err
	}
	return toRiceProductionResponse(e), nil
}

// GetByID fetches an entry.
func (uc *RiceProductionUseCase) GetByID(id string) (*dto.RiceProductionResponse, error) {
	e, err := uc.productions.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toRiceProductionResponse(e), nil
}

// Approve moves a pending entry to approved.
func (uc *RiceProductionUseCase) Approve(id, approverID string) (*dto.RiceProductionResponse, error) {
	e, err := uc.productions.GetByID(id)
	if err != nil {
		return nil, err
	}
	switch e.Status {
	case entity.StatusApproved:
		return nil, domain.ErrAlreadyApproved
	case entity.StatusRejected:
		return nil, domain.ErrConflict
	}
	e.Status = entity.StatusApproved
	e.ApprovedBy = approverID
	if err := uc.productions.Update(e); err != nil {
		return nil, err
	}
	return toRiceProductionResponse(e), nil
}

// Reject moves a pending entry to rejected.
func (uc *RiceProductionUseCase) Reject(id, approverID string) (*dto.RiceProductionResponse, error) {
	e, err := uc.productions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e.Status != entity.StatusPending {
		return nil, domain.ErrConflict
	}
	e.Status = entity.StatusRejected
	e.ApprovedBy = approverID
	if err := uc.productions.Update(e); err != nil {
		return nil, err
	}
	return toRiceProductionResponse(e), nil
}

// List returns entries in a date window.
func (uc *RiceProductionUseCase) List(fromStr, toStr string, page dto.PageRequest) (*dto.RiceProductionListResponse, error) {
	page.DefaultPage()
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
	list, err := uc.productions.ListByDateRange(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toRiceProductionListResponse(list, page), nil
}

// ListPending returns the approval queue, oldest first.
func (uc *RiceProductionUseCase) ListPending(page dto.PageRequest) (*dto.RiceProductionListResponse, error) {
	page.DefaultPage()
	list, err := uc.productions.ListByStatus(entity.StatusPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toRiceProductionListResponse(list, page), nil
}

// Delete removes an entry. Approved entries are ledger facts and cannot be
// deleted.
func (uc *RiceProductionUseCase) Delete(id string) error {
	e, err := uc.productions.GetByID(id)
	if err != nil {
		return err
	}
	if e.Status == entity.StatusApproved {
		return domain.ErrConflict
	}
	return uc.productions.Delete(id)
}

// ─── mapping ──────────────────────────────────────────────────────────────────

func toRiceProductionResponse(e *entity.RiceProductionEntry) *dto.RiceProductionResponse {
	out := &dto.RiceProductionResponse{
		ID:           e.ID,
		OutturnCode:  e.OutturnCode,
		Product:      string(e.Product),
		Bags:         e.Bags,
		QuantityQtls: e.QuantityQtls,
		PackagingID:  e.PackagingID,
		Packaging:    e.Packaging,
		BagSizeKg:    e.BagSizeKg,
		MovementType: string(e.MovementType),
		LocationCode: e.LocationCode,
		LorryNumber:  e.LorryNumber,
		BillNumber:   e.BillNumber,
		Status:       string(e.Status),
		ApprovedBy:   e.ApprovedBy,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if !e.Date.IsZero() {
		out.Date = e.Date.Format(dateLayout)
	}
	return out
}

func toRiceProductionListResponse(list []entity.RiceProductionEntry, page dto.PageRequest) *dto.RiceProductionListResponse {
	items := make([]dto.RiceProductionResponse, 0, len(list))
	for i := range list {
		items = append(items, *toRiceProductionResponse(&list[i]))
	}
	return &dto.RiceProductionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
