package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/domain/ledger"
)

// PaddyBagsDeducted is the shared conversion both ledgers depend on: bags of
// paddy consumed per quintal of finished product at the 0.47 outturn norm,
// rounded half-up, with by-products exempt.

func TestPaddyBagsDeducted_RoundHalfUp(t *testing.T) {
	cases := []struct {
		name string
		qtls string
		want int
	}{
		{"exact multiple", "4.7", 10},
		{"below half truncates", "0.2", 0},
		{"exact five bags", "2.35", 5},
		{"half rounds up", "0.235", 1},  // 0.235/0.47 = 0.5
		{"just under half", "0.23", 0},  // 0.489...
		{"just over half", "0.24", 1},   // 0.510...
		{"large run", "117.5", 250},
		{"zero", "0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.PaddyBagsDeducted(entity.ProductRice, decimal.RequireFromString(tc.qtls))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaddyBagsDeducted_ByProductsConsumeNothing(t *testing.T) {
	qtls := decimal.RequireFromString("99.99")
	assert.Zero(t, ledger.PaddyBagsDeducted(entity.ProductBran, qtls))
	assert.Zero(t, ledger.PaddyBagsDeducted(entity.ProductFarmBran, qtls))
	assert.Zero(t, ledger.PaddyBagsDeducted(entity.ProductFaram, qtls))

	// Any rice-type product does consume paddy.
	assert.NotZero(t, ledger.PaddyBagsDeducted(entity.ProductBrokenRice, qtls))
	assert.NotZero(t, ledger.PaddyBagsDeducted(entity.ProductSteamRice, qtls))
}
