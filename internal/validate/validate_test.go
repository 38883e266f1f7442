package validate_test

import (
	"testing"

	"maboutique/internal/validate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQtyClamps(t *testing.T) {
	assert.Equal(t, 1, validate.Qty(""))
	assert.Equal(t, 1, validate.Qty("0"))
	assert.Equal(t, 1, validate.Qty("-3"))
	assert.Equal(t, 4, validate.Qty("4"))
	assert.Equal(t, 99, validate.Qty("1000"))
}

func TestID(t *testing.T) {
	id, ok := validate.ID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, s := range []string{"", "abc", "0", "-1", "1.5"} {
		_, ok := validate.ID(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestPrice(t *testing.T) {
	p, ok := validate.Price("120.50")
	assert.True(t, ok)
	assert.True(t, p.Equal(decimal.RequireFromString("120.50")))

	_, ok = validate.Price("-1")
	assert.False(t, ok)
	_, ok = validate.Price("douze")
	assert.False(t, ok)
}

func TestProductFormRequiresNameAndCategory(t *testing.T) {
	f := validate.ProductForm{Name: "Dune", CategoryID: 2}
	assert.NoError(t, f.Validate())

	assert.Error(t, validate.ProductForm{CategoryID: 2}.Validate(), "empty name")
	assert.Error(t, validate.ProductForm{Name: "Dune"}.Validate(), "missing category")
}

func TestCategoryFormRequiresName(t *testing.T) {
	assert.NoError(t, validate.CategoryForm{Name: "Romans"}.Validate())
	assert.Error(t, validate.CategoryForm{}.Validate())
}
