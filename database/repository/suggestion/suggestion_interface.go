package suggestionRepo

import (
	"context"
	"errors"
	"time"

	"coachbar/models"
)

// ErrAlreadyConfirmed is returned when a confirmation's atomic guard finds
// the suggestion already confirmed.
var ErrAlreadyConfirmed = errors.New("booking suggestion already confirmed")

// SuggestionRepository defines data access for booking suggestions. The
// proposal and confirmation writes span the suggestions and chats
// collections, so both run inside one Mongo transaction.
type SuggestionRepository interface {
	// GetByID retrieves a suggestion by its unique ID.
	GetByID(id string) (*models.BookingSuggestion, error)
	// CreateWithMessage inserts the suggestion and appends its derived chat
	// message in one transaction.
	CreateWithMessage(ctx context.Context, s *models.BookingSuggestion, channelID string, msg models.ChatMessage) error
	// ConfirmWithMessageFlags sets confirmed/confirmedBy/confirmedAt on the
	// suggestion (guarded by confirmed=false) and mirrors confirmed=true onto
	// every channel message carrying its booking id, in one transaction.
	// Returns the channel id holding the mirrored message.
	ConfirmWithMessageFlags(ctx context.Context, bookingID, confirmedBy string, confirmedAt time.Time) (string, error)
	// ListUpcomingFor retrieves confirmed suggestions the user proposed or accepted.
	ListUpcomingFor(userID string) ([]models.BookingSuggestion, error)
	// CountCompletedBy counts completed suggestions created by the user.
	CountCompletedBy(userID string) (int64, error)
	// MarkCompleted flips completed=true on a confirmed suggestion.
	MarkCompleted(id string) error
}
