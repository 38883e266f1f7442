package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	v = validator.New()
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID parses a positive integer identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Qty parses a cart quantity, flooring at 1 and ceiling at 99.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	}
	return n
}

// Delta parses a signed quantity change; malformed input means no change.
func Delta(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Rating parses a review rating without range-checking it; the review
// service owns the [1,5] rule.
func Rating(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// Price parses a fixed-point decimal amount.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return d, err == nil && !d.IsNegative()
}

// ProductForm is the admin create/edit product input.
type ProductForm struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	ImageURL    string `validate:"omitempty,url,max=500"`
	CategoryID  int64  `validate:"required,gt=0"`
	Stock       int
	Price       decimal.Decimal
}

func (f ProductForm) Validate() error { return v.Struct(f) }

// CategoryForm is the admin create category input.
type CategoryForm struct {
	Name string `validate:"required,max=100"`
}

func (f CategoryForm) Validate() error { return v.Struct(f) }

// Password enforces a simple strength window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
