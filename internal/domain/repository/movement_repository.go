package repository

import (
	"time"

	"github.com/motherindia/millstock-api/internal/domain/entity"
)

// MovementRepository defines the persistence port for paddy movements (DIP).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// Update rewrites the approval fields (status, approved_by,
	// admin_approved_by). Quantity and date are immutable after creation.
	Update(movement *entity.Movement) error
	// ListUpTo returns every movement dated on or before the given day,
	// oldest first. The ledger replays full history to establish opening
	// balances.
	ListUpTo(to time.Time) ([]entity.Movement, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]entity.Movement, error)
	ListByStatus(status entity.Status, limit, offset int) ([]entity.Movement, error)
	Delete(id string) error
}
