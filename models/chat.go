package models

import (
	"sort"
	"strings"
	"time"
)

// ChatMessage is one entry in a channel's ordered message log.
// CreatedAt is a client-generated RFC 3339 string, not a server timestamp;
// insertion order, not CreatedAt, is the authoritative ordering.
type ChatMessage struct {
	Text      string `bson:"text" json:"text"`
	Sender    string `bson:"sender" json:"sender"`
	CreatedAt string `bson:"created_at" json:"createdAt"`
	Read      bool   `bson:"read" json:"read"`

	// Present only on booking-suggestion messages.
	Confirmed *bool  `bson:"confirmed,omitempty" json:"confirmed,omitempty"`
	BookingID string `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
}

// IsSuggestion reports whether the message carries a booking suggestion.
func (m ChatMessage) IsSuggestion() bool {
	return m.BookingID != ""
}

// ChatChannel is a two-party conversation holding its full message log.
// ParticipantKey is the canonical identity of the unordered participant
// pair; a unique index on it guarantees one channel per pair.
type ChatChannel struct {
	ID             string        `bson:"id" json:"id"`
	Creator        string        `bson:"creator" json:"creator"`
	Receiver       string        `bson:"receiver" json:"receiver"`
	ParticipantKey string        `bson:"participant_key" json:"-"`
	Messages       []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
}

// OtherParticipant returns the participant that is not the given user.
func (c ChatChannel) OtherParticipant(userID string) string {
	if c.Creator == userID {
		return c.Receiver
	}
	return c.Creator
}

// HasUnreadFor reports whether the channel holds unread messages sent to userID.
func (c ChatChannel) HasUnreadFor(userID string) bool {
	for _, m := range c.Messages {
		if m.Sender != userID && !m.Read {
			return true
		}
	}
	return false
}

// ParticipantKey builds the canonical key for an unordered user pair.
func ParticipantKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}
