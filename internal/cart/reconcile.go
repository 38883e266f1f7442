package cart

import (
	"maboutique/internal/domain"

	"github.com/shopspring/decimal"
)

// Line is one priced row of the cart view: the live product record joined
// with the cookie quantity.
type Line struct {
	Product  domain.Product
	Quantity int
	Subtotal decimal.Decimal
}

// BuildView joins cart entries against fresh product records. Entries whose
// product no longer resolves are dropped from the view (the stored cookie is
// left untouched). Lines keep cart insertion order; the total is the decimal
// sum of price x quantity over resolved entries.
func BuildView(c Cart, products map[int64]domain.Product) ([]Line, decimal.Decimal) {
	lines := make([]Line, 0, len(c))
	total := decimal.Zero
	for _, e := range c {
		p, ok := products[e.ProductID]
		if !ok {
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		lines = append(lines, Line{Product: p, Quantity: e.Quantity, Subtotal: sub})
		total = total.Add(sub)
	}
	return lines, total
}

// IDs returns the product ids referenced by the cart, in order.
func (c Cart) IDs() []int64 {
	out := make([]int64, 0, len(c))
	for _, e := range c {
		out = append(out, e.ProductID)
	}
	return out
}
