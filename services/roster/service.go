package roster

import (
	"context"
	"time"

	classRepo "coachbar/database/repository/class"
	listingRepo "coachbar/database/repository/listing"
	"coachbar/models"

	"github.com/google/uuid"
)

// DefaultRosterService implements RosterService on the class repository.
// Seat accounting is delegated to the repository's filtered updates, so the
// service only classifies why a booking or cancellation did not match.
type DefaultRosterService struct {
	Classes  classRepo.ClassRepository
	Listings listingRepo.ListingRepository
}

func (s *DefaultRosterService) CreateClass(ctx context.Context, input ClassInput) (*models.GroupClass, error) {
	if input.ClassSeats < 1 {
		return nil, ErrInvalidSeats
	}

	listing, err := s.Listings.GetByID(input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != input.TeacherID {
		return nil, ErrNotListingOwner
	}

	class := &models.GroupClass{
		ID:               uuid.NewString(),
		ClassName:        input.ClassName,
		ClassPrice:       input.ClassPrice,
		ClassDescription: input.ClassDescription,
		ClassSeats:       input.ClassSeats,
		StartDateTime:    input.StartDateTime,
		EndDateTime:      input.EndDateTime,
		TeacherID:        input.TeacherID,
		ListingID:        input.ListingID,
		Students:         []string{},
		CreatedAt:        time.Now(),
	}
	if err := s.Classes.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *DefaultRosterService) Get(ctx context.Context, classID string) (*models.GroupClass, error) {
	return s.Classes.GetByID(classID)
}

func (s *DefaultRosterService) ClassesForListing(ctx context.Context, listingID string) ([]models.GroupClass, error) {
	return s.Classes.GetByListing(listingID)
}

func (s *DefaultRosterService) Book(ctx context.Context, classID, userID string) (*models.GroupClass, error) {
	booked, err := s.Classes.Book(classID, userID)
	if err != nil {
		return nil, err
	}
	if !booked {
		// The filtered update did not match; read the class back to tell
		// a full roster apart from a repeat booking.
		class, err := s.Classes.GetByID(classID)
		if err != nil {
			return nil, err
		}
		if class.HasStudent(userID) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, ErrClassFull
	}
	return s.Classes.GetByID(classID)
}

func (s *DefaultRosterService) Cancel(ctx context.Context, classID, userID string) (*models.GroupClass, error) {
	cancelled, err := s.Classes.Cancel(classID, userID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, ErrNotEnrolled
	}
	return s.Classes.GetByID(classID)
}

func (s *DefaultRosterService) BookedClasses(ctx context.Context, userID string) ([]models.GroupClass, error) {
	return s.Classes.ListByStudent(userID)
}

func (s *DefaultRosterService) TaughtClasses(ctx context.Context, userID string) ([]models.GroupClass, error) {
	return s.Classes.ListByTeacher(userID)
}
