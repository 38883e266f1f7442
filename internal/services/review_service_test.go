package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"maboutique/internal/repos"
	"maboutique/internal/services"
)

func reviewdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE reviews(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  product_id INTEGER NOT NULL,
	  user_id TEXT NOT NULL,
	  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	  published_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE UNIQUE INDEX idx_reviews_product_user ON reviews(product_id, user_id);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestAggregateZeroReviews(t *testing.T) {
	svc := services.NewReviewService(repos.NewReviewRepo(reviewdb(t)))

	agg, err := svc.Aggregate(1, "")
	if err != nil {
		t.Fatal(err)
	}
	if agg.Count != 0 || agg.Average != 0 || agg.HasReviewed {
		t.Fatalf("want (0, 0, false), got %+v", agg)
	}
}

func TestAggregateComputesAverage(t *testing.T) {
	db := reviewdb(t)
	svc := services.NewReviewService(repos.NewReviewRepo(db))

	for i, rating := range []int{5, 3, 4} {
		if err := svc.Create(1, []string{"u-a", "u-b", "u-c"}[i], rating); err != nil {
			t.Fatal(err)
		}
	}

	agg, err := svc.Aggregate(1, "u-a")
	if err != nil {
		t.Fatal(err)
	}
	if agg.Count != 3 || agg.Average != 4.0 {
		t.Fatalf("want (3, 4.0), got %+v", agg)
	}
	if !agg.HasReviewed {
		t.Fatal("u-a reviewed but HasReviewed=false")
	}

	// A different user hasn't reviewed.
	agg, err = svc.Aggregate(1, "u-z")
	if err != nil {
		t.Fatal(err)
	}
	if agg.HasReviewed {
		t.Fatal("u-z never reviewed but HasReviewed=true")
	}
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	svc := services.NewReviewService(repos.NewReviewRepo(reviewdb(t)))

	if err := svc.Create(1, "u-a", 5); err != nil {
		t.Fatal(err)
	}
	before, _ := svc.Aggregate(1, "")

	for _, rating := range []int{0, 7, -1, 6} {
		err := svc.Create(1, "u-b", rating)
		if !errors.Is(err, services.ErrRatingOutOfRange) {
			t.Fatalf("rating %d: want ErrRatingOutOfRange, got %v", rating, err)
		}
	}

	after, _ := svc.Aggregate(1, "")
	if after != before {
		t.Fatalf("aggregate changed by rejected ratings: %+v -> %+v", before, after)
	}
}

func TestCreateRejectsSecondReviewFromSameUser(t *testing.T) {
	svc := services.NewReviewService(repos.NewReviewRepo(reviewdb(t)))

	if err := svc.Create(1, "u-a", 4); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(1, "u-a", 5); !errors.Is(err, services.ErrAlreadyReviewed) {
		t.Fatalf("want ErrAlreadyReviewed, got %v", err)
	}

	// Same user on another product is fine.
	if err := svc.Create(2, "u-a", 5); err != nil {
		t.Fatal(err)
	}
}
