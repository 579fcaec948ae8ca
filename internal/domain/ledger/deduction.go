package ledger

import (
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ricePerPaddyBagQtls is the outturn norm: one bag of paddy yields 0.47
// quintals of finished product. Consumption is derived by inverting it.
var ricePerPaddyBagQtls = decimal.RequireFromString("0.47")

// byProducts are milling residues that do not consume paddy bags on their own;
// the paddy was already accounted for by the rice produced alongside them.
var byProducts = map[entity.ProductType]bool{
	entity.ProductBran:     true,
	entity.ProductFarmBran: true,
	entity.ProductFaram:    true,
}

// PaddyBagsDeducted derives how many paddy bags a rice-production entry
// consumes: zero for by-products, otherwise round-half-up(qtls / 0.47).
func PaddyBagsDeducted(product entity.ProductType, qtls decimal.Decimal) int {
	if byProducts[product] {
		return 0
	}
	// decimal.Round rounds half away from zero, which for positive
	// quantities is exactly the round-half-up the mill uses.
	return int(qtls.Div(ricePerPaddyBagQtls).Round(0).IntPart())
}
