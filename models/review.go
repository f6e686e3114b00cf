package models

import "time"

// Review is a rookie's rating of a listing.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	ListingID string    `bson:"listing_id" json:"listingId"`
	UserID    string    `bson:"user_id" json:"userId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ListingRatingSummary aggregates a listing's reviews for display.
type ListingRatingSummary struct {
	ListingID     string  `json:"listingId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
	ClassesTaught int     `json:"classesTaught"`
}
