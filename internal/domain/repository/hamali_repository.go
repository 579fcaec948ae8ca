package repository

import (
	"time"

	"github.com/motherindia/millstock-api/internal/domain/entity"
)

// HamaliRepository defines the persistence port for hamali labor rates and
// entries (DIP).
type HamaliRepository interface {
	CreateRate(rate *entity.HamaliRate) error
	// RateFor returns the rate effective for the work type on the given day
	// (the latest rate with effective_from <= day).
	RateFor(workType entity.HamaliWorkType, day time.Time) (*entity.HamaliRate, error)
	ListRates(workType entity.HamaliWorkType) ([]entity.HamaliRate, error)

	CreateEntry(entry *entity.HamaliEntry) error
	GetEntryByID(id string) (*entity.HamaliEntry, error)
	ListEntriesByDateRange(from, to time.Time) ([]entity.HamaliEntry, error)
	DeleteEntry(id string) error
}
