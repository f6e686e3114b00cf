package listingRepo

import (
	"coachbar/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListingRepository defines data access for listings and the category catalogue.
type ListingRepository interface {
	// Create inserts a new listing.
	Create(listing *models.Listing) error
	// GetByID retrieves a listing by its unique ID.
	GetByID(id string) (*models.Listing, error)
	// ListByCategory retrieves listings filed under a category.
	ListByCategory(categoryID string) ([]models.Listing, error)
	// ListByOwner retrieves a coach's listings.
	ListByOwner(userID string) ([]models.Listing, error)
	// UpdateFields applies a partial $set update to a listing document.
	UpdateFields(id string, fields bson.M) error
	// Delete removes a listing by its ID.
	Delete(id string) error
	// Categories retrieves the full category catalogue.
	Categories() ([]models.Category, error)
	// GetCategory retrieves one catalogue entry.
	GetCategory(id string) (*models.Category, error)
}
