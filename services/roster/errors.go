package roster

import "errors"

var (
	// ErrClassFull is returned when no seats remain.
	ErrClassFull = errors.New("class has no seats left")
	// ErrAlreadyEnrolled is returned when the user already holds a seat.
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this class")
	// ErrNotEnrolled is returned when cancelling without a seat to release.
	ErrNotEnrolled = errors.New("user is not enrolled in this class")
	// ErrNotListingOwner is returned when scheduling under someone else's listing.
	ErrNotListingOwner = errors.New("only the listing owner can schedule classes under it")
	// ErrInvalidSeats is returned when a class is created without seats.
	ErrInvalidSeats = errors.New("class must have at least one seat")
)
