package domain

import "github.com/shopspring/decimal"

// PlaceholderImage is used when a product is created without an image.
const PlaceholderImage = "https://placehold.co/200"

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	// Back-collection; only populated on category detail loads, never
	// serialized into cache snapshots.
	Products []Product `db:"-"`
}

type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    string          `db:"image_url"`
	Stock       int             `db:"stock"`
	CategoryID  int64           `db:"category_id"`
	Category    *Category       `db:"-"`
}

// CategoryName tolerates products loaded without their category joined.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

type Review struct {
	ID          int64  `db:"id"`
	Rating      int    `db:"rating"`
	PublishedAt string `db:"published_at"`
	ProductID   int64  `db:"product_id"`
	UserID      string `db:"user_id"`
}
