package roster

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

// fakeClassRepo is an in-memory ClassRepository mirroring the filtered-update
// semantics of the Mongo implementation: Book and Cancel report matched=false
// instead of erroring when their guard fails.
type fakeClassRepo struct {
	classes map[string]*models.GroupClass
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: make(map[string]*models.GroupClass)}
}

func (r *fakeClassRepo) Create(class *models.GroupClass) error {
	dup := *class
	r.classes[class.ID] = &dup
	return nil
}

func (r *fakeClassRepo) GetByID(id string) (*models.GroupClass, error) {
	class, ok := r.classes[id]
	if !ok {
		return nil, fmt.Errorf("class %s not found", id)
	}
	dup := *class
	dup.Students = append([]string(nil), class.Students...)
	return &dup, nil
}

func (r *fakeClassRepo) GetByListing(listingID string) ([]models.GroupClass, error) {
	var out []models.GroupClass
	for _, c := range r.classes {
		if c.ListingID == listingID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) ListByStudent(userID string) ([]models.GroupClass, error) {
	var out []models.GroupClass
	for _, c := range r.classes {
		if c.HasStudent(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) ListByTeacher(userID string) ([]models.GroupClass, error) {
	var out []models.GroupClass
	for _, c := range r.classes {
		if c.TeacherID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) Book(classID, userID string) (bool, error) {
	class, ok := r.classes[classID]
	if !ok {
		return false, nil
	}
	if class.ClassSeats <= 0 || class.HasStudent(userID) {
		return false, nil
	}
	class.ClassSeats--
	class.Students = append(class.Students, userID)
	class.ClassType = "group"
	return true, nil
}

func (r *fakeClassRepo) Cancel(classID, userID string) (bool, error) {
	class, ok := r.classes[classID]
	if !ok || !class.HasStudent(userID) {
		return false, nil
	}
	class.ClassSeats++
	kept := class.Students[:0]
	for _, s := range class.Students {
		if s != userID {
			kept = append(kept, s)
		}
	}
	class.Students = kept
	return true, nil
}

// fakeListingRepo serves only the owner lookup the roster service needs.
type fakeListingRepo struct {
	listings map[string]*models.Listing
}

func (r *fakeListingRepo) GetByID(id string) (*models.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s not found", id)
	}
	return l, nil
}

func (r *fakeListingRepo) Create(*models.Listing) error                    { return nil }
func (r *fakeListingRepo) ListByCategory(string) ([]models.Listing, error) { return nil, nil }
func (r *fakeListingRepo) ListByOwner(string) ([]models.Listing, error)    { return nil, nil }
func (r *fakeListingRepo) UpdateFields(string, bson.M) error               { return nil }
func (r *fakeListingRepo) Delete(string) error                             { return nil }
func (r *fakeListingRepo) Categories() ([]models.Category, error)          { return nil, nil }
func (r *fakeListingRepo) GetCategory(string) (*models.Category, error)    { return nil, nil }

func newTestService() (*DefaultRosterService, *fakeClassRepo) {
	classes := newFakeClassRepo()
	listings := &fakeListingRepo{listings: map[string]*models.Listing{
		"listing-1": {ID: "listing-1", UserID: "coach", CategoryID: "tennis"},
	}}
	return &DefaultRosterService{Classes: classes, Listings: listings}, classes
}

func classInput(seats int) ClassInput {
	start := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	return ClassInput{
		TeacherID:     "coach",
		ListingID:     "listing-1",
		ClassName:     "Saturday drills",
		ClassPrice:    25,
		ClassSeats:    seats,
		StartDateTime: start,
		EndDateTime:   start.Add(90 * time.Minute),
	}
}

func TestCreateClassChecksListingOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	input := classInput(5)
	input.TeacherID = "impostor"
	_, err := svc.CreateClass(ctx, input)
	assert.ErrorIs(t, err, ErrNotListingOwner)

	class, err := svc.CreateClass(ctx, classInput(5))
	require.NoError(t, err)
	assert.Equal(t, "coach", class.TeacherID)
	assert.Equal(t, 5, class.ClassSeats)
	assert.Empty(t, class.Students)
}

func TestCreateClassRejectsZeroSeats(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateClass(context.Background(), classInput(0))
	assert.ErrorIs(t, err, ErrInvalidSeats)
}

func TestBookTakesSeatAndEnrols(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, classInput(5))
	require.NoError(t, err)

	booked, err := svc.Book(ctx, class.ID, "rookie")
	require.NoError(t, err)

	assert.Equal(t, 4, booked.ClassSeats)
	assert.True(t, booked.HasStudent("rookie"))
	assert.Equal(t, "group", booked.ClassType)
}

func TestBookRejectsRepeatEnrollment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, classInput(5))
	require.NoError(t, err)

	_, err = svc.Book(ctx, class.ID, "rookie")
	require.NoError(t, err)

	_, err = svc.Book(ctx, class.ID, "rookie")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	// The failed attempt must not touch the seat count.
	current, err := svc.Get(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, current.ClassSeats)
}

func TestBookRejectsFullClass(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, classInput(1))
	require.NoError(t, err)

	_, err = svc.Book(ctx, class.ID, "first")
	require.NoError(t, err)

	_, err = svc.Book(ctx, class.ID, "second")
	assert.ErrorIs(t, err, ErrClassFull)

	current, err := svc.Get(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.ClassSeats)
	assert.False(t, current.HasStudent("second"))
}

func TestCancelReleasesSeat(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, classInput(3))
	require.NoError(t, err)

	_, err = svc.Book(ctx, class.ID, "rookie")
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, class.ID, "rookie")
	require.NoError(t, err)
	assert.Equal(t, 3, cancelled.ClassSeats)
	assert.False(t, cancelled.HasStudent("rookie"))

	// A second cancel has no seat to release.
	_, err = svc.Cancel(ctx, class.ID, "rookie")
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestBookedAndTaughtListings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, classInput(3))
	require.NoError(t, err)
	_, err = svc.Book(ctx, class.ID, "rookie")
	require.NoError(t, err)

	booked, err := svc.BookedClasses(ctx, "rookie")
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, class.ID, booked[0].ID)

	taught, err := svc.TaughtClasses(ctx, "coach")
	require.NoError(t, err)
	require.Len(t, taught, 1)

	none, err := svc.TaughtClasses(ctx, "rookie")
	require.NoError(t, err)
	assert.Empty(t, none)
}
