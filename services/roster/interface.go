package roster

import (
	"context"
	"time"

	"coachbar/models"
)

// ClassInput carries the fields a coach supplies when scheduling a class.
type ClassInput struct {
	TeacherID        string
	ListingID        string
	ClassName        string
	ClassPrice       float64
	ClassDescription string
	ClassSeats       int
	StartDateTime    time.Time
	EndDateTime      time.Time
}

// RosterService manages group classes and their seat inventory.
type RosterService interface {
	// CreateClass schedules a new group class under one of the coach's listings.
	CreateClass(ctx context.Context, input ClassInput) (*models.GroupClass, error)
	// Get retrieves one class.
	Get(ctx context.Context, classID string) (*models.GroupClass, error)
	// ClassesForListing lists the classes scheduled under a listing.
	ClassesForListing(ctx context.Context, listingID string) ([]models.GroupClass, error)
	// Book enrols the user into the class, taking one seat.
	Book(ctx context.Context, classID, userID string) (*models.GroupClass, error)
	// Cancel removes the user from the class, releasing their seat.
	Cancel(ctx context.Context, classID, userID string) (*models.GroupClass, error)
	// BookedClasses lists classes the user is enrolled in.
	BookedClasses(ctx context.Context, userID string) ([]models.GroupClass, error)
	// TaughtClasses lists classes the user teaches.
	TaughtClasses(ctx context.Context, userID string) ([]models.GroupClass, error)
}
