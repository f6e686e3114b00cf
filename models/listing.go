package models

import "time"

// Listing is a coach's offer in one category.
type Listing struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`
	Description string    `bson:"description" json:"description"`
	CategoryID  string    `bson:"category_id" json:"categoryId"`
	ImageURL    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Category is a fixed catalogue entry listings are filed under.
type Category struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
}
