package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	chatRepo "coachbar/database/repository/chat"
	"coachbar/models"
	"coachbar/realtime"
	"coachbar/services/notification"
	"coachbar/utils"

	"go.uber.org/zap"
)

// DefaultChannelService implements ChannelService.
type DefaultChannelService struct {
	Repo     chatRepo.ChatRepository
	Feed     *realtime.Hub
	Notifier notification.NotificationService
}

// Open finds or creates the channel between the caller and the receiver.
func (s *DefaultChannelService) Open(ctx context.Context, creatorID, receiverID string) (*models.ChatChannel, error) {
	if creatorID == receiverID {
		return nil, ErrSelfChannel
	}
	return s.Repo.OpenChannel(creatorID, receiverID)
}

// Get returns a channel after verifying the caller participates in it.
func (s *DefaultChannelService) Get(ctx context.Context, channelID, userID string) (*models.ChatChannel, error) {
	channel, err := s.Repo.GetByID(channelID)
	if err != nil {
		return nil, err
	}
	if channel.Creator != userID && channel.Receiver != userID {
		return nil, ErrNotParticipant
	}
	return channel, nil
}

// SendMessage appends a plain-text message, publishes the updated snapshot to
// live subscribers, and pushes a notification to the other participant.
func (s *DefaultChannelService) SendMessage(ctx context.Context, channelID, senderID, text string) (*models.ChatChannel, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	channel, err := s.Get(ctx, channelID, senderID)
	if err != nil {
		return nil, err
	}

	msg := models.ChatMessage{
		Text:      text,
		Sender:    senderID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Read:      false,
	}
	if err := s.Repo.AppendMessage(channelID, msg); err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetByID(channelID)
	if err != nil {
		return nil, err
	}
	s.broadcast(updated)
	s.notify(channel.OtherParticipant(senderID), "New message", text, map[string]string{"chatId": channelID})
	return updated, nil
}

// MarkAllRead marks every message from the other participant as read and
// publishes the resulting snapshot.
func (s *DefaultChannelService) MarkAllRead(ctx context.Context, channelID, selfID string) error {
	if _, err := s.Get(ctx, channelID, selfID); err != nil {
		return err
	}
	if err := s.Repo.MarkAllReadFromOthers(channelID, selfID); err != nil {
		return err
	}

	updated, err := s.Repo.GetByID(channelID)
	if err != nil {
		return err
	}
	s.broadcast(updated)
	return nil
}

// Inbox lists the caller's channels, newest activity first. Channels with no
// messages yet are hidden, matching what the inbox screens display.
func (s *DefaultChannelService) Inbox(ctx context.Context, userID string) ([]ChannelSummary, error) {
	channels, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChannelSummary, 0, len(channels))
	for _, c := range channels {
		if len(c.Messages) == 0 {
			continue
		}
		last := c.Messages[len(c.Messages)-1]
		summaries = append(summaries, ChannelSummary{
			Channel:     c,
			LastMessage: &last,
			HasUnread:   c.HasUnreadFor(userID),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt > summaries[j].LastMessage.CreatedAt
	})
	return summaries, nil
}

// Subscribe opens a live snapshot stream for the channel.
func (s *DefaultChannelService) Subscribe(ctx context.Context, channelID, userID string) (<-chan *models.ChatChannel, func(), error) {
	if _, err := s.Get(ctx, channelID, userID); err != nil {
		return nil, nil, err
	}
	snapshots, cancel := s.Feed.Subscribe(channelID)
	return snapshots, cancel, nil
}

func (s *DefaultChannelService) broadcast(channel *models.ChatChannel) {
	if s.Feed != nil {
		s.Feed.Publish(channel)
	}
}

func (s *DefaultChannelService) notify(userID, title, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.SendPush(ctx, userID, title, body, data); err != nil {
			utils.GetLogger().Warn("chat: push notification failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}()
}
