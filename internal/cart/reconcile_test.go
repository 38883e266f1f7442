package cart_test

import (
	"testing"

	"maboutique/internal/cart"
	"maboutique/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func product(id int64, price string) domain.Product {
	return domain.Product{ID: id, Name: "p", Price: decimal.RequireFromString(price)}
}

func TestBuildViewDropsOrphanedEntries(t *testing.T) {
	c := cart.Cart{{ProductID: 5, Quantity: 2}, {ProductID: 999, Quantity: 1}}
	products := map[int64]domain.Product{5: product(5, "10.00")}

	lines, total := cart.BuildView(c, products)

	assert.Len(t, lines, 1)
	assert.Equal(t, int64(5), lines[0].Product.ID)
	assert.Equal(t, "20.00", total.StringFixed(2))
}

func TestBuildViewKeepsInsertionOrder(t *testing.T) {
	c := cart.Cart{{ProductID: 9, Quantity: 1}, {ProductID: 2, Quantity: 1}, {ProductID: 5, Quantity: 1}}
	products := map[int64]domain.Product{
		2: product(2, "1.00"),
		5: product(5, "2.00"),
		9: product(9, "3.00"),
	}

	lines, _ := cart.BuildView(c, products)

	ids := []int64{lines[0].Product.ID, lines[1].Product.ID, lines[2].Product.ID}
	assert.Equal(t, []int64{9, 2, 5}, ids, "line order follows the cart, not price or name")
}

func TestBuildViewDecimalTotal(t *testing.T) {
	// 3 x 0.10 must be exactly 0.30, no float drift.
	c := cart.Cart{{ProductID: 1, Quantity: 3}}
	products := map[int64]domain.Product{1: product(1, "0.10")}

	lines, total := cart.BuildView(c, products)

	assert.Equal(t, "0.30", total.StringFixed(2))
	assert.Equal(t, "0.30", lines[0].Subtotal.StringFixed(2))
}

func TestBuildViewEmptyCart(t *testing.T) {
	lines, total := cart.BuildView(cart.Cart{}, nil)
	assert.Empty(t, lines)
	assert.True(t, total.IsZero())
}
