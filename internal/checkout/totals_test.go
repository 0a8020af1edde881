package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrealasyraices/storefront/internal/cart"
)

func TestIncludedIVA(t *testing.T) {
	assert.Equal(t, int64(0), IncludedIVA(0))
	assert.Equal(t, int64(19), IncludedIVA(119))
	assert.Equal(t, int64(1900), IncludedIVA(11900))
	// 44990 / 1.19 = 37806.72 -> 37807 net
	assert.Equal(t, int64(7183), IncludedIVA(44990))
}

func TestCompute(t *testing.T) {
	items := []cart.Item{
		{ID: "a", Price: 11900, Qty: 2},
		{ID: "b", Price: 5950, Qty: 1},
	}

	got := Compute(items, 3990)
	assert.Equal(t, Totals{Subtotal: 29750, Shipping: 3990, IVA: 4750, Total: 33740}, got)
}

func TestCompute_NegativeShippingIgnored(t *testing.T) {
	got := Compute([]cart.Item{{ID: "a", Price: 119, Qty: 1}}, -10)
	assert.Equal(t, int64(0), got.Shipping)
	assert.Equal(t, int64(119), got.Total)
}
