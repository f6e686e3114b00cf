package negotiation

import "errors"

var (
	// ErrMissingStudents is returned when a proposal omits the student count.
	ErrMissingStudents = errors.New("numberOfStudents must not be empty")
	// ErrSelfConfirm is returned when a user confirms their own suggestion.
	ErrSelfConfirm = errors.New("a booking suggestion cannot be confirmed by its creator")
	// ErrNotParticipant is returned when the proposer is not part of the channel.
	ErrNotParticipant = errors.New("user is not a participant of this channel")
)
