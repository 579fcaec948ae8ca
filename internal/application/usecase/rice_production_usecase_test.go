package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motherindia/millstock-api/internal/application/dto"
	"github.com/motherindia/millstock-api/internal/application/usecase"
	"github.com/motherindia/millstock-api/internal/domain"
	"github.com/motherindia/millstock-api/internal/domain/entity"
)

func newProductionFixture(t *testing.T) (*usecase.RiceProductionUseCase, *memProductionRepo, *memOutturnRepo) {
	t.Helper()
	productions := newMemProductionRepo()
	outturns := newMemOutturnRepo()
	require.NoError(t, outturns.Create(&entity.Outturn{
		Code:            "OUT-2024-002",
		AllottedVariety: "Sona Masoori",
		CreatedAt:       time.Now(),
		CreatedBy:       "adm-1",
	}))
	return usecase.NewRiceProductionUseCase(productions, outturns), productions, outturns
}

func kunchinitturRequest() dto.CreateRiceProductionRequest {
	return dto.CreateRiceProductionRequest{
		Date:         "2024-03-05",
		OutturnCode:  "OUT-2024-002",
		Product:      "Steam Rice",
		Bags:         13,
		Packaging:    "Lorry Brand",
		BagSizeKg:    26,
		MovementType: "kunchinittu",
		LocationCode: "RS-1",
	}
}

// The quantity in quintals is always derived server-side from bags and bag
// size; 13 bags of 26 kg are 3.38 qtls.
func TestRiceProductionCreate_DerivesQuintals(t *testing.T) {
	uc, _, _ := newProductionFixture(t)

	out, err := uc.Create("usr-1", kunchinitturRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "3.38", out.QuantityQtls.String())
	assert.Equal(t, 13, out.Bags)
}

func TestRiceProductionCreate_KunchinittuNeedsLocation(t *testing.T) {
	uc, _, _ := newProductionFixture(t)

	in := kunchinitturRequest()
	in.LocationCode = ""
	_, err := uc.Create("usr-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// The clearing location is reserved for synthetic write-offs.
	in.LocationCode = entity.ClearingLocationCode
	_, err = uc.Create("usr-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRiceProductionCreate_LoadingCarriesNoLocation(t *testing.T) {
	uc, _, _ := newProductionFixture(t)

	in := kunchinitturRequest()
	in.MovementType = "loading"
	in.LorryNumber = "KA-19-7788"
	_, err := uc.Create("usr-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "loading with a location must be refused")

	in.LocationCode = ""
	out, err := uc.Create("usr-1", in)
	require.NoError(t, err)
	assert.Equal(t, "loading", out.MovementType)
	assert.Empty(t, out.LocationCode)
}

func TestRiceProductionCreate_UnknownProductRefused(t *testing.T) {
	uc, _, _ := newProductionFixture(t)

	in := kunchinitturRequest()
	in.Product = "Basmati Gold"
	_, err := uc.Create("usr-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRiceProductionCreate_BlockedByClearedOutturn(t *testing.T) {
	uc, _, outturns := newProductionFixture(t)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, outturns.MarkCleared("OUT-2024-002", day, "adm-1"))

	_, err := uc.Create("usr-1", kunchinitturRequest())
	assert.ErrorIs(t, err, domain.ErrOutturnCleared)
}

func TestRiceProductionApprove_ThenDeleteRefused(t *testing.T) {
	uc, _, _ := newProductionFixture(t)
	created, err := uc.Create("usr-1", kunchinitturRequest())
	require.NoError(t, err)

	approved, err := uc.Approve(created.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	_, err = uc.Approve(created.ID, "mgr-2")
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
