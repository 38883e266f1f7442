package repos

import (
	"maboutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) ListByProduct(productID int64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
		SELECT id, rating, published_at, product_id, user_id
		FROM reviews WHERE product_id=? ORDER BY published_at DESC`, productID)
	return out, err
}

// Stats returns the review count and rating average for a product.
// The average is 0 when there are no reviews.
func (r *ReviewRepo) Stats(productID int64) (int, float64, error) {
	var row struct {
		Count int     `db:"count"`
		Avg   float64 `db:"avg"`
	}
	err := r.db.Get(&row, `
		SELECT COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg
		FROM reviews WHERE product_id=?`, productID)
	return row.Count, row.Avg, err
}

func (r *ReviewRepo) HasReviewed(productID int64, userID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
		SELECT COUNT(*) FROM reviews WHERE product_id=? AND user_id=?`,
		productID, userID)
	return n > 0, err
}

func (r *ReviewRepo) Insert(rv *domain.Review) error {
	res, err := r.db.Exec(`
		INSERT INTO reviews(product_id, user_id, rating)
		VALUES(?,?,?)`, rv.ProductID, rv.UserID, rv.Rating)
	if err != nil {
		return err
	}
	rv.ID, err = res.LastInsertId()
	return err
}
