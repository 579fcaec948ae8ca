package repository

import (
	"time"

	"github.com/motherindia/millstock-api/internal/domain/entity"
)

// OutturnRepository defines the persistence port for outturns (DIP).
type OutturnRepository interface {
	Create(outturn *entity.Outturn) error
	GetByCode(code string) (*entity.Outturn, error)
	// MarkCleared flips the outturn to cleared as of the given day. It is a
	// plain write; the usecase enforces the clear-once rule.
	MarkCleared(code string, clearedAt time.Time, clearedBy string) error
	List(includeCleared bool) ([]entity.Outturn, error)
	Delete(code string) error
}
