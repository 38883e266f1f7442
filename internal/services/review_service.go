package services

import (
	"errors"
	"strings"

	"maboutique/internal/domain"
	"maboutique/internal/repos"
)

var (
	// ErrRatingOutOfRange rejects ratings outside [1,5] before anything is
	// persisted.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	// ErrAlreadyReviewed rejects a second review from the same user for the
	// same product.
	ErrAlreadyReviewed = errors.New("user already reviewed this product")
)

// ReviewService computes review aggregates and persists new reviews.
// Reviews are immutable once created.
type ReviewService struct {
	Reviews *repos.ReviewRepo
}

func NewReviewService(reviews *repos.ReviewRepo) *ReviewService {
	return &ReviewService{Reviews: reviews}
}

// Aggregate holds the display stats for a product's reviews.
type Aggregate struct {
	Count       int
	Average     float64
	HasReviewed bool
}

// Aggregate returns the review count, rating average (0 when no reviews)
// and whether the viewer already reviewed the product. An empty viewerID
// (anonymous) always yields HasReviewed=false.
func (s *ReviewService) Aggregate(productID int64, viewerID string) (Aggregate, error) {
	count, avg, err := s.Reviews.Stats(productID)
	if err != nil {
		return Aggregate{}, err
	}
	agg := Aggregate{Count: count, Average: avg}
	if viewerID != "" {
		agg.HasReviewed, err = s.Reviews.HasReviewed(productID, viewerID)
		if err != nil {
			return Aggregate{}, err
		}
	}
	return agg, nil
}

// Recent lists a product's reviews, newest first.
func (s *ReviewService) Recent(productID int64) ([]domain.Review, error) {
	return s.Reviews.ListByProduct(productID)
}

// Create validates and persists a review. The (product, user) uniqueness is
// enforced both here and by the store's unique index.
func (s *ReviewService) Create(productID int64, userID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	dup, err := s.Reviews.HasReviewed(productID, userID)
	if err != nil {
		return err
	}
	if dup {
		return ErrAlreadyReviewed
	}
	err = s.Reviews.Insert(&domain.Review{ProductID: productID, UserID: userID, Rating: rating})
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		// Lost the race against a concurrent submit from the same user.
		return ErrAlreadyReviewed
	}
	return err
}
