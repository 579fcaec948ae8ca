package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// MovementUseCase records paddy movements and drives their approval workflow.
// Movements are immutable facts: after creation only the approval state
// changes, and the ledger counts a movement only once it is approved (plus
// admin-approved for purchase types).
type MovementUseCase struct {
	movements repository.MovementRepository
	outturns  repository.OutturnRepository
}

// NewMovementUseCase builds the usecase.
func NewMovementUseCase(movements repository.MovementRepository, outturns repository.OutturnRepository) *MovementUseCase {
	return &MovementUseCase{movements: movements, outturns: outturns}
}

// Create records a movement in pending status.
func (uc *MovementUseCase) Create(userID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	mtype := entity.MovementType(in.Type)
	if !mtype.Valid() || in.Bags <= 0 || in.Variety == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDay(in.Date)
	if err != nil {
		return nil, err
	}
	if err := validateEndpoints(mtype, in); err != nil {
		return nil, err
	}
	if in.OutturnCode != "" {
		o, err := uc.outturns.GetByCode(in.OutturnCode)
		if err != nil {
			return nil, err
		}
		if o.IsCleared {
			return nil, domain.ErrOutturnCleared
		}
	}

	m := &entity.Movement{
		ID:          uuid.New().String(),
		Date:        date,
		Type:        mtype,
		Variety:     in.Variety,
		Bags:        in.Bags,
		From:        fromLocationDTO(in.From),
		To:          fromLocationDTO(in.To),
		OutturnCode: in.OutturnCode,
		LorryNumber: in.LorryNumber,
		BillNumber:  in.BillNumber,
		Status:      entity.StatusPending,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}
	if err := uc.movements.Create(m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// validateEndpoints enforces which endpoints each movement kind must carry.
func validateEndpoints(mtype entity.MovementType, in dto.CreateMovementRequest) error {
	switch mtype {
	case entity.MovementPurchase, entity.MovementLoose:
		if in.To == nil {
			return domain.ErrInvalidInput
		}
	case entity.MovementShifting:
		if in.From == nil || in.To == nil {
			return domain.ErrInvalidInput
		}
	case entity.MovementProductionShifting:
		if in.From == nil || in.OutturnCode == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementForProductionPurchase:
		if in.OutturnCode == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementLoading:
		if in.From == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// GetByID fetches a movement.
func (uc *MovementUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// Approve moves a pending movement to approved.
func (uc *MovementUseCase) Approve(id, approverID string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	switch m.Status {
	case entity.StatusApproved:
		return nil, domain.ErrAlreadyApproved
	case entity.StatusRejected:
		return nil, domain.ErrConflict
	}
	m.Status = entity.StatusApproved
	m.ApprovedBy = approverID
	if err := uc.movements.Update(m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// AdminApprove applies the second-level gate. Only purchase-type movements
// carry it, and only after first-level approval.
func (uc *MovementUseCase) AdminApprove(id, adminID string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m.Type != entity.MovementPurchase && m.Type != entity.MovementForProductionPurchase {
		return nil, domain.ErrInvalidInput
	}
	if m.Status != entity.StatusApproved {
		return nil, domain.ErrConflict
	}
	if m.AdminApprovedBy != "" {
		return nil, domain.ErrAlreadyApproved
	}
	m.AdminApprovedBy = adminID
	if err := uc.movements.Update(m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// Reject moves a pending movement to rejected.
func (uc *MovementUseCase) Reject(id, approverID string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m.Status != entity.StatusPending {
		return nil, domain.ErrConflict
	}
	m.Status = entity.StatusRejected
	m.ApprovedBy = approverID
	if err := uc.movements.Update(m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// List returns movements in a date window.
func (uc *MovementUseCase) List(fromStr, toStr string, page dto.PageRequest) (*dto.MovementListResponse, error) {
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
	list, err := uc.movements.ListByDateRange(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementListResponse(list, page), nil
}

// ListPending returns the approval queue, oldest first.
func (uc *MovementUseCase) ListPending(page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.ListByStatus(entity.StatusPending, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementListResponse(list, page), nil
}

// Delete removes a movement. Approved movements are ledger facts and cannot
// be deleted.
func (uc *MovementUseCase) Delete(id string) error {
	m, err := uc.movements.GetByID(id)
	if err != nil {
		return err
	}
	if m.Status == entity.StatusApproved {
		return domain.ErrConflict
	}
	return uc.movements.Delete(id)
}

// ─── mapping ──────────────────────────────────────────────────────────────────

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

func fromLocationDTO(l *dto.LocationDTO) *entity.Location {
	if l == nil {
		return nil
	}
	return &entity.Location{Warehouse: l.Warehouse, StorageUnit: l.StorageUnit}
}

func toLocationDTO(l *entity.Location) *dto.LocationDTO {
	if l == nil {
		return nil
	}
	return &dto.LocationDTO{Warehouse: l.Warehouse, StorageUnit: l.StorageUnit}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	out := &dto.MovementResponse{
		ID:              m.ID,
		Type:            string(m.Type),
		Variety:         m.Variety,
		Bags:            m.Bags,
		From:            toLocationDTO(m.From),
		To:              toLocationDTO(m.To),
		OutturnCode:     m.OutturnCode,
		LorryNumber:     m.LorryNumber,
		BillNumber:      m.BillNumber,
		Status:          string(m.Status),
		ApprovedBy:      m.ApprovedBy,
		AdminApprovedBy: m.AdminApprovedBy,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
	if !m.Date.IsZero() {
		out.Date = m.Date.Format(dateLayout)
	}
	return out
}

func toMovementListResponse(list []entity.Movement, page dto.PageRequest) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for i := range list {
		items = append(items, *toMovementResponse(&list[i]))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
