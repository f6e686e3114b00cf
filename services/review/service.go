package review

import (
	"context"
	"errors"
	"time"

	listingRepo "coachbar/database/repository/listing"
	reviewRepo "coachbar/database/repository/review"
	suggestionRepo "coachbar/database/repository/suggestion"
	"coachbar/models"

	"github.com/google/uuid"
)

var (
	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrOwnListing is returned when a coach reviews their own listing.
	ErrOwnListing = errors.New("cannot review your own listing")
)

// ReviewService manages listing reviews and their aggregate summary.
type ReviewService interface {
	Add(ctx context.Context, listingID, userID string, rating int, comment string) (*models.Review, error)
	ForListing(ctx context.Context, listingID string) ([]models.Review, error)
	// Summary aggregates the listing's reviews and the coach's completed
	// class count for the profile screens.
	Summary(ctx context.Context, listingID string) (*models.ListingRatingSummary, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews     reviewRepo.ReviewRepository
	Listings    listingRepo.ListingRepository
	Suggestions suggestionRepo.SuggestionRepository
}

func (s *DefaultReviewService) Add(ctx context.Context, listingID, userID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	listing, err := s.Listings.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID == userID {
		return nil, ErrOwnListing
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ListingID: listingID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.Reviews.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *DefaultReviewService) ForListing(ctx context.Context, listingID string) ([]models.Review, error) {
	return s.Reviews.ListByListing(listingID)
}

func (s *DefaultReviewService) Summary(ctx context.Context, listingID string) (*models.ListingRatingSummary, error) {
	listing, err := s.Listings.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.ListByListing(listingID)
	if err != nil {
		return nil, err
	}

	summary := &models.ListingRatingSummary{ListingID: listingID, ReviewCount: len(reviews)}
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		summary.AverageRating = float64(total) / float64(len(reviews))
	}

	taught, err := s.Suggestions.CountCompletedBy(listing.UserID)
	if err != nil {
		return nil, err
	}
	summary.ClassesTaught = int(taught)
	return summary, nil
}
