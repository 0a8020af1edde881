package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/entrealasyraices/storefront/internal/cart"
)

// IVARate is the Chilean VAT rate. Catalog prices already include it.
var IVARate = decimal.NewFromFloat(0.19)

// Totals are the amounts shown at checkout and sent with the order.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	IVA      int64 `json:"iva"`
	Total    int64 `json:"total"`
}

// Compute derives the order totals for items plus a flat shipping fee. IVA is
// the tax portion contained in the product subtotal; shipping carries none.
func Compute(items []cart.Item, shipping int64) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	if shipping < 0 {
		shipping = 0
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		IVA:      IncludedIVA(subtotal),
		Total:    subtotal + shipping,
	}
}

// IncludedIVA returns the VAT contained in a gross amount, rounded to the peso.
func IncludedIVA(gross int64) int64 {
	g := decimal.NewFromInt(gross)
	net := g.Div(decimal.NewFromInt(1).Add(IVARate)).Round(0)
	return g.Sub(net).IntPart()
}
