package chatRepo

import "coachbar/models"

// ChatRepository defines data access for chat channels and their message logs.
type ChatRepository interface {
	// OpenChannel finds the channel for the unordered participant pair,
	// creating it atomically if none exists. Concurrent opens for the same
	// pair converge on a single channel document.
	OpenChannel(creator, receiver string) (*models.ChatChannel, error)
	// GetByID retrieves a channel with its full message log.
	GetByID(id string) (*models.ChatChannel, error)
	// ListForUser retrieves every channel the user participates in.
	ListForUser(userID string) ([]models.ChatChannel, error)
	// AppendMessage appends one message to the channel's log server-side.
	AppendMessage(channelID string, msg models.ChatMessage) error
	// MarkAllReadFromOthers flips read=true on every unread message not sent
	// by selfID, in a single filtered array update.
	MarkAllReadFromOthers(channelID, selfID string) error
}
