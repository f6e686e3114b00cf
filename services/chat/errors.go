package chat

import "errors"

var (
	// ErrNotParticipant is returned when a caller touches a channel they are not part of.
	ErrNotParticipant = errors.New("user is not a participant of this channel")
	// ErrEmptyMessage is returned when a message is blank after trimming.
	ErrEmptyMessage = errors.New("message text must not be empty")
	// ErrSelfChannel is returned when a user opens a channel with themselves.
	ErrSelfChannel = errors.New("cannot open a channel with yourself")
)
