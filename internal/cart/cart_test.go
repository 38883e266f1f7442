package cart_test

import (
	"testing"

	"maboutique/internal/cart"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	c := cart.Cart{
		{ProductID: 5, Quantity: 2},
		{ProductID: 9, Quantity: 99},
		{ProductID: 1, Quantity: 1},
	}

	raw, err := cart.Encode(c)
	assert.NoError(t, err)
	assert.Equal(t, c, cart.Decode(raw))
}

func TestDecodeWireFormat(t *testing.T) {
	// The cookie payload is the same JSON shape the original storefront wrote.
	raw := `[{"ProduitId":5,"Quantite":2},{"ProduitId":7,"Quantite":1}]`
	c := cart.Decode(raw)
	assert.Equal(t, cart.Cart{{ProductID: 5, Quantity: 2}, {ProductID: 7, Quantity: 1}}, c)
}

func TestDecodeMalformedYieldsEmptyCart(t *testing.T) {
	for _, raw := range []string{"", "not-json", `{"ProduitId":1}`, "]][[", "null"} {
		c := cart.Decode(raw)
		assert.NotNil(t, c, "input %q", raw)
		assert.Empty(t, c, "input %q", raw)
	}
}

func TestUpsertNewEntry(t *testing.T) {
	c := cart.Upsert(cart.Cart{}, 3, 4)
	assert.Equal(t, cart.Cart{{ProductID: 3, Quantity: 4}}, c)

	// New entries floor the quantity at 1.
	c = cart.Upsert(cart.Cart{}, 3, 0)
	assert.Equal(t, cart.Cart{{ProductID: 3, Quantity: 1}}, c)

	// And ceil at 99.
	c = cart.Upsert(cart.Cart{}, 3, 500)
	assert.Equal(t, cart.Cart{{ProductID: 3, Quantity: 99}}, c)
}

func TestUpsertExistingEntryAddsDelta(t *testing.T) {
	c := cart.Cart{{ProductID: 3, Quantity: 2}}
	c = cart.Upsert(c, 3, 1)
	assert.Equal(t, 3, c[0].Quantity)
	assert.Len(t, c, 1)
}

func TestSetQuantityClamps(t *testing.T) {
	c := cart.Cart{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 95}}

	c = cart.SetQuantity(c, 1, -5)
	assert.Equal(t, 1, c[0].Quantity, "delta below 1 floors at 1")

	c = cart.SetQuantity(c, 2, +10)
	assert.Equal(t, 99, c[1].Quantity, "delta above 99 ceils at 99")

	// Unknown id is a no-op.
	before := append(cart.Cart{}, c...)
	c = cart.SetQuantity(c, 42, 3)
	assert.Equal(t, before, c)
}

func TestRemoveKeepsOrder(t *testing.T) {
	c := cart.Cart{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 2}, {ProductID: 3, Quantity: 3}}
	c = cart.Remove(c, 2)
	assert.Equal(t, cart.Cart{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 3}}, c)

	c = cart.Remove(c, 42)
	assert.Len(t, c, 2)
}
