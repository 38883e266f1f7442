// Package cart implements the client-held cookie cart. The cart is a plain
// value passed in and out of each handler; encode/decode are pure functions
// and no server-side state exists beyond the cookie itself.
package cart

import "encoding/json"

const (
	// CookieName is the cart cookie; its value is a JSON array of entries.
	CookieName = "MonPanier"

	// CookieDays is the absolute expiry horizon, refreshed on every write.
	CookieDays = 7

	MinQty = 1
	MaxQty = 99
)

// Entry mirrors the cookie wire format: {"ProduitId":int,"Quantite":int}.
type Entry struct {
	ProductID int64 `json:"ProduitId"`
	Quantity  int   `json:"Quantite"`
}

// Cart is an ordered list of entries, uniqued by product id.
type Cart []Entry

// Decode parses a cookie value. Absent or malformed input yields an empty
// cart; decode failures are swallowed, never surfaced.
func Decode(raw string) Cart {
	if raw == "" {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}
	}
	if c == nil {
		return Cart{}
	}
	return c
}

// Encode serializes the cart back into a cookie value.
func Encode(c Cart) (string, error) {
	if c == nil {
		c = Cart{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func clamp(q int) int {
	if q < MinQty {
		return MinQty
	}
	if q > MaxQty {
		return MaxQty
	}
	return q
}

// Upsert adds delta to an existing entry's quantity, or appends a new entry.
// New entries floor the quantity at 1; results are clamped into [1,99].
func Upsert(c Cart, productID int64, delta int) Cart {
	for i := range c {
		if c[i].ProductID == productID {
			c[i].Quantity = clamp(c[i].Quantity + delta)
			return c
		}
	}
	if delta < MinQty {
		delta = MinQty
	}
	return append(c, Entry{ProductID: productID, Quantity: clamp(delta)})
}

// Remove drops the entry for productID, preserving the order of the rest.
func Remove(c Cart, productID int64) Cart {
	out := c[:0]
	for _, e := range c {
		if e.ProductID != productID {
			out = append(out, e)
		}
	}
	return out
}

// SetQuantity applies a signed delta to an existing entry, clamping the
// result into [1,99]. Unknown product ids are ignored.
func SetQuantity(c Cart, productID int64, delta int) Cart {
	for i := range c {
		if c[i].ProductID == productID {
			c[i].Quantity = clamp(c[i].Quantity + delta)
			break
		}
	}
	return c
}
