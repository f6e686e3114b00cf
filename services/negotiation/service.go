package negotiation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chatRepo "coachbar/database/repository/chat"
	suggestionRepo "coachbar/database/repository/suggestion"
	"coachbar/models"
	"coachbar/realtime"
	"coachbar/services/notification"
	"coachbar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// suggestionTimeLayout renders class times inside the suggestion message,
// matching what the chat screens display.
const suggestionTimeLayout = "January 2, 2006, 3:04 PM"

// DefaultNegotiationService implements NegotiationService.
type DefaultNegotiationService struct {
	Repo      suggestionRepo.SuggestionRepository
	Chats     chatRepo.ChatRepository
	Feed      *realtime.Hub
	Notifier  notification.NotificationService
	Scheduler CompletionScheduler
}

// Propose validates the input, derives the duration, and writes the
// suggestion together with its chat message in one transaction.
func (s *DefaultNegotiationService) Propose(ctx context.Context, channelID string, input ProposalInput) (*models.BookingSuggestion, error) {
	if strings.TrimSpace(input.NumberOfStudents) == "" {
		return nil, ErrMissingStudents
	}

	channel, err := s.Chats.GetByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel.Creator != input.CreatedBy && channel.Receiver != input.CreatedBy {
		return nil, ErrNotParticipant
	}

	now := time.Now()
	suggestion := &models.BookingSuggestion{
		ID:               uuid.NewString(),
		CreatedBy:        input.CreatedBy,
		ClassStart:       input.ClassStart,
		ClassEnd:         input.ClassEnd,
		DurationHours:    models.DurationHours(input.ClassStart, input.ClassEnd),
		NumberOfStudents: input.NumberOfStudents,
		Location:         input.Location,
		SelectedCategory: input.SelectedCategory,
		Confirmed:        false,
		Completed:        false,
		CreatedAt:        now,
	}

	notConfirmed := false
	msg := models.ChatMessage{
		Text:      suggestionText(input),
		Sender:    input.CreatedBy,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Read:      false,
		Confirmed: &notConfirmed,
		BookingID: suggestion.ID,
	}

	if err := s.Repo.CreateWithMessage(ctx, suggestion, channelID, msg); err != nil {
		return nil, err
	}

	s.broadcast(channelID)
	s.notify(channel.OtherParticipant(input.CreatedBy),
		"New booking suggestion",
		fmt.Sprintf("%s class, %s students", input.SelectedCategory, input.NumberOfStudents),
		map[string]string{"chatId": channelID, "bookingId": suggestion.ID})
	return suggestion, nil
}

// Confirm performs the Proposed -> Confirmed transition. Confirming an
// already-confirmed suggestion returns it unchanged; the atomic guard in the
// repository keeps two racing confirmations from both writing.
func (s *DefaultNegotiationService) Confirm(ctx context.Context, bookingID, confirmingUserID string) (*models.BookingSuggestion, error) {
	suggestion, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if suggestion.Confirmed {
		return suggestion, nil
	}
	if suggestion.CreatedBy == confirmingUserID {
		return nil, ErrSelfConfirm
	}

	channelID, err := s.Repo.ConfirmWithMessageFlags(ctx, bookingID, confirmingUserID, time.Now())
	if err != nil {
		if errors.Is(err, suggestionRepo.ErrAlreadyConfirmed) {
			// Lost the race to the other confirmation; the stored state wins.
			return s.Repo.GetByID(bookingID)
		}
		return nil, err
	}

	confirmed, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	s.broadcast(channelID)
	s.notify(confirmed.CreatedBy,
		"Booking confirmed",
		fmt.Sprintf("Your %s class suggestion was confirmed", confirmed.SelectedCategory),
		map[string]string{"bookingId": bookingID})
	s.scheduleCompletion(confirmed)
	return confirmed, nil
}

// Get retrieves one suggestion.
func (s *DefaultNegotiationService) Get(ctx context.Context, bookingID string) (*models.BookingSuggestion, error) {
	return s.Repo.GetByID(bookingID)
}

// UpcomingFor lists confirmed suggestions the user proposed or accepted.
func (s *DefaultNegotiationService) UpcomingFor(ctx context.Context, userID string) ([]models.BookingSuggestion, error) {
	return s.Repo.ListUpcomingFor(userID)
}

// suggestionText serializes the proposal into the structured message block
// the clients render and parse.
func suggestionText(input ProposalInput) string {
	return fmt.Sprintf(
		"Booking Suggestion: %s\n\nStudents: %s\nClass Start: %s\nClass End: %s\nLocation: %s",
		input.SelectedCategory,
		input.NumberOfStudents,
		input.ClassStart.Format(suggestionTimeLayout),
		input.ClassEnd.Format(suggestionTimeLayout),
		input.Location,
	)
}

func (s *DefaultNegotiationService) broadcast(channelID string) {
	if s.Feed == nil || channelID == "" {
		return
	}
	channel, err := s.Chats.GetByID(channelID)
	if err != nil {
		utils.GetLogger().Warn("negotiation: failed to load channel for broadcast",
			zap.String("channelID", channelID), zap.Error(err))
		return
	}
	s.Feed.Publish(channel)
}

func (s *DefaultNegotiationService) notify(userID, title, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.SendPush(ctx, userID, title, body, data); err != nil {
			utils.GetLogger().Warn("negotiation: push notification failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}()
}

func (s *DefaultNegotiationService) scheduleCompletion(suggestion *models.BookingSuggestion) {
	if s.Scheduler == nil {
		return
	}
	if err := s.Scheduler.ScheduleCompletion(suggestion.ID, suggestion.ClassEnd); err != nil {
		utils.GetLogger().Warn("negotiation: failed to schedule completion",
			zap.String("bookingID", suggestion.ID), zap.Error(err))
	}
}
