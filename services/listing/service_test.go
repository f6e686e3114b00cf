package listing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"coachbar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeListingRepo is an in-memory ListingRepository with a fixed category
// catalogue.
type fakeListingRepo struct {
	listings   map[string]*models.Listing
	categories map[string]*models.Category
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings: make(map[string]*models.Listing),
		categories: map[string]*models.Category{
			"tennis": {ID: "tennis", Title: "Tennis"},
			"squash": {ID: "squash", Title: "Squash"},
		},
	}
}

func (r *fakeListingRepo) Create(l *models.Listing) error {
	dup := *l
	r.listings[l.ID] = &dup
	return nil
}

func (r *fakeListingRepo) GetByID(id string) (*models.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s not found", id)
	}
	dup := *l
	return &dup, nil
}

func (r *fakeListingRepo) ListByCategory(categoryID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range r.listings {
		if l.CategoryID == categoryID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) ListByOwner(userID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range r.listings {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) UpdateFields(id string, fields bson.M) error {
	l, ok := r.listings[id]
	if !ok {
		return fmt.Errorf("listing %s not found", id)
	}
	if v, ok := fields["name"].(string); ok {
		l.Name = v
	}
	if v, ok := fields["price"].(float64); ok {
		l.Price = v
	}
	if v, ok := fields["description"].(string); ok {
		l.Description = v
	}
	if v, ok := fields["image_url"].(string); ok {
		l.ImageURL = v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		l.UpdatedAt = v
	}
	return nil
}

func (r *fakeListingRepo) Delete(id string) error {
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) Categories() ([]models.Category, error) {
	var out []models.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeListingRepo) GetCategory(id string) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s not found", id)
	}
	return c, nil
}

func newTestService() *DefaultListingService {
	return &DefaultListingService{Repo: newFakeListingRepo()}
}

func input(category string) ListingInput {
	return ListingInput{
		UserID:      "coach",
		Name:        "Tennis with Sam",
		Price:       40,
		Description: "All levels welcome",
		CategoryID:  category,
	}
}

func TestCreateListing(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), input("tennis"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "coach", created.UserID)
	assert.Equal(t, "tennis", created.CategoryID)
}

func TestCreateListingRejectsUnknownCategory(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), input("curling"))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCreateListingRejectsSecondInSameCategory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, input("tennis"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, input("tennis"))
	assert.ErrorIs(t, err, ErrCategoryTaken)

	// A different category is still open.
	_, err = svc.Create(ctx, input("squash"))
	assert.NoError(t, err)
}

func TestUpdateListingChecksOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, input("tennis"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "impostor", ListingInput{Name: "Stolen"})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(ctx, created.ID, "coach", ListingInput{Name: "Tennis, advanced", Price: 55})
	require.NoError(t, err)
	assert.Equal(t, "Tennis, advanced", updated.Name)
	assert.Equal(t, 55.0, updated.Price)
	assert.Equal(t, "tennis", updated.CategoryID, "category is fixed at creation")
}

func TestDeleteListingChecksOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, input("tennis"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID, "impostor"), ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, created.ID, "coach"))

	_, err = svc.Get(ctx, created.ID)
	assert.Error(t, err)
}
