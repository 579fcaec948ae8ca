package repository

import (
	"time"

	"github.com/motherindia/millstock-api/internal/domain/entity"
)

// RiceProductionRepository defines the persistence port for rice production
// entries (DIP).
type RiceProductionRepository interface {
	Create(entry *entity.RiceProductionEntry) error
	GetByID(id string) (*entity.RiceProductionEntry, error)
	Update(entry *entity.RiceProductionEntry) error
	// ListUpTo returns every entry dated on or before the given day, oldest
	// first, including clearing write-offs.
	ListUpTo(to time.Time) ([]entity.RiceProductionEntry, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]entity.RiceProductionEntry, error)
	ListByOutturn(outturnCode string) ([]entity.RiceProductionEntry, error)
	ListByStatus(status entity.Status, limit, offset int) ([]entity.RiceProductionEntry, error)
	Delete(id string) error
}
