package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ParticipantKey("coach", "rookie"), ParticipantKey("rookie", "coach"))
	assert.Equal(t, "coach:rookie", ParticipantKey("rookie", "coach"))
}

func TestHasUnreadFor(t *testing.T) {
	channel := ChatChannel{
		Creator:  "coach",
		Receiver: "rookie",
		Messages: []ChatMessage{
			{Sender: "coach", Read: true},
			{Sender: "rookie", Read: false},
		},
	}

	assert.True(t, channel.HasUnreadFor("coach"), "rookie's unread message targets coach")
	assert.False(t, channel.HasUnreadFor("rookie"), "own unread messages do not count")
}

func TestIsSuggestion(t *testing.T) {
	assert.False(t, ChatMessage{Text: "hi"}.IsSuggestion())
	assert.True(t, ChatMessage{Text: "Booking Suggestion: Tennis", BookingID: "b-1"}.IsSuggestion())
}

func TestOtherParticipant(t *testing.T) {
	channel := ChatChannel{Creator: "coach", Receiver: "rookie"}
	assert.Equal(t, "rookie", channel.OtherParticipant("coach"))
	assert.Equal(t, "coach", channel.OtherParticipant("rookie"))
}
