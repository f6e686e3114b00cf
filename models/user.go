package models

import "time"

// User represents a platform account: a coach, a rookie, or both.
// Coaches are simply users who own listings.
type User struct {
	ID              string    `bson:"id" json:"id"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	FullName        string    `bson:"full_name" json:"fullName"`
	ProfileImageURL string    `bson:"profile_image_url,omitempty" json:"profileImageUrl,omitempty"`
	FCMToken        string    `bson:"fcm_token,omitempty" json:"-"`
	TokenHash       string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
