package classRepo

import "coachbar/models"

// ClassRepository defines data access for group classes and their rosters.
type ClassRepository interface {
	// Create inserts a new group class.
	Create(class *models.GroupClass) error
	// GetByID retrieves a class by its unique ID.
	GetByID(id string) (*models.GroupClass, error)
	// GetByListing retrieves the classes scheduled under a listing.
	GetByListing(listingID string) ([]models.GroupClass, error)
	// ListByStudent retrieves classes the user is enrolled in.
	ListByStudent(userID string) ([]models.GroupClass, error)
	// ListByTeacher retrieves classes the user teaches.
	ListByTeacher(userID string) ([]models.GroupClass, error)
	// Book atomically takes one seat and enrolls the user. The update
	// matches only when a seat remains and the user is not yet on the
	// roster; booked reports whether it matched.
	Book(classID, userID string) (booked bool, err error)
	// Cancel atomically releases one seat and removes the user. The update
	// matches only when the user is on the roster.
	Cancel(classID, userID string) (cancelled bool, err error)
}
