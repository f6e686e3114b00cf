package negotiation

import (
	"context"
	"time"

	"coachbar/models"
)

// ProposalInput carries the details a coach submits for a private class.
type ProposalInput struct {
	CreatedBy        string    `json:"-"`
	NumberOfStudents string    `json:"numberOfStudents"`
	Location         string    `json:"location"`
	SelectedCategory string    `json:"selectedCategory"`
	ClassStart       time.Time `json:"classStart"`
	ClassEnd         time.Time `json:"classEnd"`
}

// NegotiationService drives a booking suggestion through
// Proposed -> Confirmed; completion is handled by the background worker.
type NegotiationService interface {
	// Propose writes a new suggestion and appends its derived message to the
	// channel, as one unit.
	Propose(ctx context.Context, channelID string, input ProposalInput) (*models.BookingSuggestion, error)
	// Confirm transitions the suggestion to Confirmed on behalf of the other
	// participant. A suggestion already confirmed is returned unchanged.
	Confirm(ctx context.Context, bookingID, confirmingUserID string) (*models.BookingSuggestion, error)
	// Get retrieves one suggestion.
	Get(ctx context.Context, bookingID string) (*models.BookingSuggestion, error)
	// UpcomingFor lists confirmed suggestions the user proposed or accepted.
	UpcomingFor(ctx context.Context, userID string) ([]models.BookingSuggestion, error)
}

// CompletionScheduler schedules the Confirmed -> Completed transition to run
// once the class end time passes.
type CompletionScheduler interface {
	ScheduleCompletion(bookingID string, at time.Time) error
}
