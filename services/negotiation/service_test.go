package negotiation

import (
	"context"
	"fmt"
	"testing"
	"time"

	suggestionRepo "coachbar/database/repository/suggestion"
	"coachbar/models"
	"coachbar/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs both the suggestion and chat repositories in memory. The
// transactional pairs (CreateWithMessage, ConfirmWithMessageFlags) mutate
// both sides together, mirroring the Mongo implementation.
type fakeStore struct {
	suggestions map[string]*models.BookingSuggestion
	channels    map[string]*models.ChatChannel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		suggestions: make(map[string]*models.BookingSuggestion),
		channels:    make(map[string]*models.ChatChannel),
	}
}

func (s *fakeStore) addChannel(id, creator, receiver string) {
	s.channels[id] = &models.ChatChannel{
		ID:             id,
		Creator:        creator,
		Receiver:       receiver,
		ParticipantKey: models.ParticipantKey(creator, receiver),
		CreatedAt:      time.Now(),
	}
}

// SuggestionRepository

func (s *fakeStore) GetByID(id string) (*models.BookingSuggestion, error) {
	sg, ok := s.suggestions[id]
	if !ok {
		return nil, fmt.Errorf("suggestion %s not found", id)
	}
	dup := *sg
	return &dup, nil
}

func (s *fakeStore) CreateWithMessage(ctx context.Context, sg *models.BookingSuggestion, channelID string, msg models.ChatMessage) error {
	channel, ok := s.channels[channelID]
	if !ok {
		return fmt.Errorf("channel %s not found", channelID)
	}
	dup := *sg
	s.suggestions[sg.ID] = &dup
	channel.Messages = append(channel.Messages, msg)
	return nil
}

func (s *fakeStore) ConfirmWithMessageFlags(ctx context.Context, bookingID, confirmedBy string, confirmedAt time.Time) (string, error) {
	sg, ok := s.suggestions[bookingID]
	if !ok {
		return "", fmt.Errorf("suggestion %s not found", bookingID)
	}
	if sg.Confirmed {
		return "", suggestionRepo.ErrAlreadyConfirmed
	}
	sg.Confirmed = true
	sg.ConfirmedBy = confirmedBy
	sg.ConfirmedAt = &confirmedAt

	for _, channel := range s.channels {
		for i := range channel.Messages {
			if channel.Messages[i].BookingID == bookingID {
				confirmed := true
				channel.Messages[i].Confirmed = &confirmed
				return channel.ID, nil
			}
		}
	}
	return "", fmt.Errorf("no message carries booking %s", bookingID)
}

func (s *fakeStore) ListUpcomingFor(userID string) ([]models.BookingSuggestion, error) {
	var out []models.BookingSuggestion
	for _, sg := range s.suggestions {
		if sg.Confirmed && (sg.CreatedBy == userID || sg.ConfirmedBy == userID) {
			out = append(out, *sg)
		}
	}
	return out, nil
}

func (s *fakeStore) CountCompletedBy(userID string) (int64, error) {
	var n int64
	for _, sg := range s.suggestions {
		if sg.CreatedBy == userID && sg.Completed {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) MarkCompleted(id string) error {
	sg, ok := s.suggestions[id]
	if !ok {
		return fmt.Errorf("suggestion %s not found", id)
	}
	sg.Completed = true
	return nil
}

// ChatRepository

func (s *fakeStore) OpenChannel(creator, receiver string) (*models.ChatChannel, error) {
	return nil, fmt.Errorf("not used in tests")
}

func (s *fakeStore) GetChannelByID(id string) (*models.ChatChannel, error) {
	channel, ok := s.channels[id]
	if !ok {
		return nil, fmt.Errorf("channel %s not found", id)
	}
	dup := *channel
	dup.Messages = append([]models.ChatMessage(nil), channel.Messages...)
	return &dup, nil
}

func (s *fakeStore) ListForUser(userID string) ([]models.ChatChannel, error) {
	return nil, fmt.Errorf("not used in tests")
}

func (s *fakeStore) AppendMessage(channelID string, msg models.ChatMessage) error {
	channel, ok := s.channels[channelID]
	if !ok {
		return fmt.Errorf("channel %s not found", channelID)
	}
	channel.Messages = append(channel.Messages, msg)
	return nil
}

func (s *fakeStore) MarkAllReadFromOthers(channelID, selfID string) error {
	return nil
}

// chatAdapter satisfies chatRepo.ChatRepository; GetByID collides between the
// two repository interfaces, so the channel variant is exposed through it.
type chatAdapter struct{ *fakeStore }

func (a chatAdapter) GetByID(id string) (*models.ChatChannel, error) {
	return a.GetChannelByID(id)
}

// fakeScheduler records completion scheduling calls.
type fakeScheduler struct {
	bookingIDs []string
	times      []time.Time
}

func (f *fakeScheduler) ScheduleCompletion(bookingID string, at time.Time) error {
	f.bookingIDs = append(f.bookingIDs, bookingID)
	f.times = append(f.times, at)
	return nil
}

func newTestService() (*DefaultNegotiationService, *fakeStore, *fakeScheduler) {
	store := newFakeStore()
	store.addChannel("chan-1", "coach", "rookie")
	scheduler := &fakeScheduler{}
	svc := &DefaultNegotiationService{
		Repo:      store,
		Chats:     chatAdapter{store},
		Feed:      realtime.NewHub(),
		Scheduler: scheduler,
	}
	return svc, store, scheduler
}

func proposal(createdBy string, start, end time.Time) ProposalInput {
	return ProposalInput{
		CreatedBy:        createdBy,
		NumberOfStudents: "2",
		Location:         "Riverside Courts",
		SelectedCategory: "Tennis",
		ClassStart:       start,
		ClassEnd:         end,
	}
}

func TestProposeWritesSuggestionAndMessage(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	sg, err := svc.Propose(ctx, "chan-1", proposal("coach", start, end))
	require.NoError(t, err)

	assert.Equal(t, 2.0, sg.DurationHours)
	assert.Equal(t, "coach", sg.CreatedBy)
	assert.False(t, sg.Confirmed)
	assert.False(t, sg.Completed)

	channel, err := store.GetChannelByID("chan-1")
	require.NoError(t, err)
	require.Len(t, channel.Messages, 1)

	msg := channel.Messages[0]
	assert.Equal(t, sg.ID, msg.BookingID)
	assert.True(t, msg.IsSuggestion())
	require.NotNil(t, msg.Confirmed)
	assert.False(t, *msg.Confirmed)

	expected := "Booking Suggestion: Tennis\n\n" +
		"Students: 2\n" +
		"Class Start: September 5, 2026, 10:00 AM\n" +
		"Class End: September 5, 2026, 12:00 PM\n" +
		"Location: Riverside Courts"
	assert.Equal(t, expected, msg.Text)
}

func TestProposeRoundsDurationToTwoDecimals(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	sg, err := svc.Propose(context.Background(), "chan-1",
		proposal("coach", start, start.Add(100*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, 1.67, sg.DurationHours)
}

func TestProposeRequiresStudentCount(t *testing.T) {
	svc, _, _ := newTestService()

	input := proposal("coach", time.Now(), time.Now().Add(time.Hour))
	input.NumberOfStudents = "  "
	_, err := svc.Propose(context.Background(), "chan-1", input)
	assert.ErrorIs(t, err, ErrMissingStudents)
}

func TestProposeRejectsNonParticipant(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Propose(context.Background(), "chan-1",
		proposal("stranger", time.Now(), time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestConfirmFlipsSuggestionAndMessage(t *testing.T) {
	svc, store, scheduler := newTestService()
	ctx := context.Background()

	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	sg, err := svc.Propose(ctx, "chan-1", proposal("coach", start, end))
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, sg.ID, "rookie")
	require.NoError(t, err)

	assert.True(t, confirmed.Confirmed)
	assert.Equal(t, "rookie", confirmed.ConfirmedBy)
	require.NotNil(t, confirmed.ConfirmedAt)

	channel, err := store.GetChannelByID("chan-1")
	require.NoError(t, err)
	require.NotNil(t, channel.Messages[0].Confirmed)
	assert.True(t, *channel.Messages[0].Confirmed)

	require.Len(t, scheduler.bookingIDs, 1)
	assert.Equal(t, sg.ID, scheduler.bookingIDs[0])
	assert.Equal(t, end, scheduler.times[0])
}

func TestConfirmIsIdempotent(t *testing.T) {
	svc, _, scheduler := newTestService()
	ctx := context.Background()

	sg, err := svc.Propose(ctx, "chan-1",
		proposal("coach", time.Now(), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	first, err := svc.Confirm(ctx, sg.ID, "rookie")
	require.NoError(t, err)

	// A repeated confirmation returns the stored state without rewriting it.
	second, err := svc.Confirm(ctx, sg.ID, "rookie")
	require.NoError(t, err)
	assert.Equal(t, first.ConfirmedBy, second.ConfirmedBy)
	assert.Equal(t, first.ConfirmedAt, second.ConfirmedAt)
	assert.Len(t, scheduler.bookingIDs, 1, "completion must be scheduled once")
}

func TestConfirmRejectsProposer(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	sg, err := svc.Propose(ctx, "chan-1",
		proposal("coach", time.Now(), time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, sg.ID, "coach")
	assert.ErrorIs(t, err, ErrSelfConfirm)
}

func TestUpcomingForListsBothSides(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	sg, err := svc.Propose(ctx, "chan-1",
		proposal("coach", time.Now(), time.Now().Add(time.Hour)))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, sg.ID, "rookie")
	require.NoError(t, err)

	forCoach, err := svc.UpcomingFor(ctx, "coach")
	require.NoError(t, err)
	forRookie, err := svc.UpcomingFor(ctx, "rookie")
	require.NoError(t, err)
	forStranger, err := svc.UpcomingFor(ctx, "stranger")
	require.NoError(t, err)

	assert.Len(t, forCoach, 1)
	assert.Len(t, forRookie, 1)
	assert.Empty(t, forStranger)
}
