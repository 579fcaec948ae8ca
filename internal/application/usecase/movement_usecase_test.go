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

func newMovementFixture(t *testing.T) (*usecase.MovementUseCase, *memMovementRepo, *memOutturnRepo) {
	t.Helper()
	movements := newMemMovementRepo()
	outturns := newMemOutturnRepo()
	require.NoError(t, outturns.Create(&entity.Outturn{
		Code:            "OUT-2024-001",
		AllottedVariety: "Sona Masoori",
		CreatedAt:       time.Now(),
		CreatedBy:       "adm-1",
	}))
	return usecase.NewMovementUseCase(movements, outturns), movements, outturns
}

func purchaseRequest() dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		Date:    "2024-03-04",
		Type:    "purchase",
		Variety: "Sona Masoori",
		Bags:    120,
		To:      &dto.LocationDTO{Warehouse: "GDN-1", StorageUnit: "K-01"},
	}
}

func TestMovementCreate_LandsPending(t *testing.T) {
	uc, _, _ := newMovementFixture(t)

	out, err := uc.Create("usr-1", purchaseRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "usr-1", out.CreatedBy)
	assert.Equal(t, 120, out.Bags)
	assert.Empty(t, out.ApprovedBy)
}

func TestMovementCreate_RejectsMissingEndpoints(t *testing.T) {
	uc, _, _ := newMovementFixture(t)

	cases := map[string]dto.CreateMovementRequest{
		"purchase without destination": {
			Date: "2024-03-04", Type: "purchase", Variety: "Sona Masoori", Bags: 10,
		},
		"shifting without source": {
			Date: "2024-03-04", Type: "shifting", Variety: "Sona Masoori", Bags: 10,
			To: &dto.LocationDTO{Warehouse: "GDN-1", StorageUnit: "K-02"},
		},
		"production shifting without outturn": {
			Date: "2024-03-04", Type: "production-shifting", Variety: "Sona Masoori", Bags: 10,
			From: &dto.LocationDTO{Warehouse: "GDN-1", StorageUnit: "K-01"},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create("usr-1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMovementCreate_BlockedByClearedOutturn(t *testing.T) {
	uc, _, outturns := newMovementFixture(t)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, outturns.MarkCleared("OUT-2024-001", day, "adm-1"))

	in := dto.CreateMovementRequest{
		Date: "2024-03-04", Type: "production-shifting", Variety: "Sona Masoori", Bags: 10,
		From:        &dto.LocationDTO{Warehouse: "GDN-1", StorageUnit: "K-01"},
		OutturnCode: "OUT-2024-001",
	}
	_, err := uc.Create("usr-1", in)
	assert.ErrorIs(t, err, domain.ErrOutturnCleared)
}

func TestMovementApprove_StateMachine(t *testing.T) {
	uc, _, _ := newMovementFixture(t)
	created, err := uc.Create("usr-1", purchaseRequest())
	require.NoError(t, err)

	approved, err := uc.Approve(created.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "mgr-1", approved.ApprovedBy)

	// Approving twice is refused.
	_, err = uc.Approve(created.ID, "mgr-2")
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	// An approved movement cannot be rejected anymore.
	_, err = uc.Reject(created.ID, "mgr-2")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMovementAdminApprove_SecondGate(t *testing.T) {
	uc, _, _ := newMovementFixture(t)
	created, err := uc.Create("usr-1", purchaseRequest())
	require.NoError(t, err)

	// The second gate opens only after first-level approval.
	_, err = uc.AdminApprove(created.ID, "adm-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Approve(created.ID, "mgr-1")
	require.NoError(t, err)

	out, err := uc.AdminApprove(created.ID, "adm-1")
	require.NoError(t, err)
	assert.Equal(t, "adm-1", out.AdminApprovedBy)

	_, err = uc.AdminApprove(created.ID, "adm-2")
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
}

func TestMovementAdminApprove_OnlyPurchaseTypes(t *testing.T) {
	uc, _, _ := newMovementFixture(t)
	created, err := uc.Create("usr-1", dto.CreateMovementRequest{
		Date: "2024-03-04", Type: "shifting", Variety: "Sona Masoori", Bags: 30,
		From: &dto.LocationDTO{Warehouse: "GDN-1", StorageUnit: "K-01"},
		To:   &dto.LocationDTO{Warehouse: "GDN-1", StorageUnit: "K-02"},
	})
	require.NoError(t, err)
	_, err = uc.Approve(created.ID, "mgr-1")
	require.NoError(t, err)

	_, err = uc.AdminApprove(created.ID, "adm-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementDelete_ApprovedIsImmutable(t *testing.T) {
	uc, movements, _ := newMovementFixture(t)
	created, err := uc.Create("usr-1", purchaseRequest())
	require.NoError(t, err)
	_, err = uc.Approve(created.ID, "mgr-1")
	require.NoError(t, err)

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// A rejected movement may be deleted.
	other, err := uc.Create("usr-1", purchaseRequest())
	require.NoError(t, err)
	_, err = uc.Reject(other.ID, "mgr-1")
	require.NoError(t, err)
	require.NoError(t, uc.Delete(other.ID))

	_, err = movements.GetByID(other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementList_RejectsInvertedRange(t *testing.T) {
	uc, _, _ := newMovementFixture(t)
	_, err := uc.List("2024-03-10", "2024-03-01", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
