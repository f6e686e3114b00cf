package handlers

import (
	userRepoPkg "coachbar/database/repository/user"
	"coachbar/services/chat"
	"coachbar/services/listing"
	"coachbar/services/negotiation"
	"coachbar/services/review"
	"coachbar/services/roster"
	"coachbar/services/storage"
	"coachbar/services/user"
)

// HandlerBundle groups every endpoint handler's dependencies into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Users        user.UserService
	Chats        chat.ChannelService
	Negotiations negotiation.NegotiationService
	Roster       roster.RosterService
	Listings     listing.ListingService
	Reviews      review.ReviewService
	Storage      storage.StorageService
}
