package listing

import (
	"context"
	"errors"
	"strings"
	"time"

	listingRepo "coachbar/database/repository/listing"
	"coachbar/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotOwner is returned when someone other than the coach edits a listing.
	ErrNotOwner = errors.New("only the listing owner can modify it")
	// ErrUnknownCategory is returned when the category id is not in the catalogue.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrCategoryTaken is returned when the coach already has a listing in the category.
	ErrCategoryTaken = errors.New("coach already has a listing in this category")
	// ErrMissingName is returned when a listing has no name.
	ErrMissingName = errors.New("listing name is required")
)

// ListingInput carries the fields a coach supplies for a listing.
type ListingInput struct {
	UserID      string
	Name        string
	Price       float64
	Description string
	CategoryID  string
	ImageURL    string
}

// ListingService manages coach listings and the category catalogue.
type ListingService interface {
	Create(ctx context.Context, input ListingInput) (*models.Listing, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	ByCategory(ctx context.Context, categoryID string) ([]models.Listing, error)
	ByOwner(ctx context.Context, userID string) ([]models.Listing, error)
	Update(ctx context.Context, id, userID string, input ListingInput) (*models.Listing, error)
	Delete(ctx context.Context, id, userID string) error
	Categories(ctx context.Context) ([]models.Category, error)
}

// DefaultListingService implements ListingService.
type DefaultListingService struct {
	Repo listingRepo.ListingRepository
}

// Create validates the input and inserts the listing. A coach keeps at most
// one listing per category; the class schedule under it carries the variants.
func (s *DefaultListingService) Create(ctx context.Context, input ListingInput) (*models.Listing, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrMissingName
	}
	if _, err := s.Repo.GetCategory(input.CategoryID); err != nil {
		return nil, ErrUnknownCategory
	}

	existing, err := s.Repo.ListByOwner(input.UserID)
	if err != nil {
		return nil, err
	}
	for _, l := range existing {
		if l.CategoryID == input.CategoryID {
			return nil, ErrCategoryTaken
		}
	}

	now := time.Now()
	listing := &models.Listing{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *DefaultListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultListingService) ByCategory(ctx context.Context, categoryID string) ([]models.Listing, error) {
	return s.Repo.ListByCategory(categoryID)
}

func (s *DefaultListingService) ByOwner(ctx context.Context, userID string) ([]models.Listing, error) {
	return s.Repo.ListByOwner(userID)
}

// Update applies the editable fields after an ownership check. The category
// is fixed at creation.
func (s *DefaultListingService) Update(ctx context.Context, id, userID string, input ListingInput) (*models.Listing, error) {
	listing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, ErrNotOwner
	}

	fields := bson.M{"updated_at": time.Now()}
	if strings.TrimSpace(input.Name) != "" {
		fields["name"] = input.Name
	}
	if input.Price > 0 {
		fields["price"] = input.Price
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.ImageURL != "" {
		fields["image_url"] = input.ImageURL
	}
	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

func (s *DefaultListingService) Delete(ctx context.Context, id, userID string) error {
	listing, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if listing.UserID != userID {
		return ErrNotOwner
	}
	return s.Repo.Delete(id)
}

func (s *DefaultListingService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.Categories()
}
