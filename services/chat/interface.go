package chat

import (
	"context"

	"coachbar/models"
)

// ChannelSummary is one inbox row: a channel plus derived display state.
type ChannelSummary struct {
	Channel     models.ChatChannel  `json:"channel"`
	LastMessage *models.ChatMessage `json:"lastMessage,omitempty"`
	HasUnread   bool                `json:"hasUnread"`
}

// ChannelService manages two-party conversations and their live feeds.
type ChannelService interface {
	// Open finds or creates the channel between the caller and the receiver.
	Open(ctx context.Context, creatorID, receiverID string) (*models.ChatChannel, error)
	// Get returns a channel the caller participates in.
	Get(ctx context.Context, channelID, userID string) (*models.ChatChannel, error)
	// SendMessage appends a plain-text message and returns the updated channel.
	SendMessage(ctx context.Context, channelID, senderID, text string) (*models.ChatChannel, error)
	// MarkAllRead marks every message from the other participant as read.
	MarkAllRead(ctx context.Context, channelID, selfID string) error
	// Inbox lists the caller's non-empty channels, most recent first.
	Inbox(ctx context.Context, userID string) ([]ChannelSummary, error)
	// Subscribe opens a live snapshot stream for a channel the caller
	// participates in. The returned disposer releases the subscription.
	Subscribe(ctx context.Context, channelID, userID string) (<-chan *models.ChatChannel, func(), error)
}
