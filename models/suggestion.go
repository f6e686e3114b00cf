package models

import (
	"math"
	"time"
)

// BookingSuggestion is a proposed private class, referenced by id from the
// chat message that carried it. It moves Proposed -> Confirmed when the other
// participant accepts, and Confirmed -> Completed once the class end passes.
type BookingSuggestion struct {
	ID               string     `bson:"id" json:"id"`
	CreatedBy        string     `bson:"created_by" json:"createdBy"`
	ConfirmedBy      string     `bson:"confirmed_by,omitempty" json:"confirmedBy,omitempty"`
	ClassStart       time.Time  `bson:"class_start" json:"classStart"`
	ClassEnd         time.Time  `bson:"class_end" json:"classEnd"`
	DurationHours    float64    `bson:"duration_hours" json:"durationHours"`
	NumberOfStudents string     `bson:"number_of_students" json:"numberOfStudents"`
	Location         string     `bson:"location" json:"location"`
	SelectedCategory string     `bson:"selected_category" json:"selectedCategory"`
	Confirmed        bool       `bson:"confirmed" json:"confirmed"`
	Completed        bool       `bson:"completed" json:"completed"`
	ConfirmedAt      *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"createdAt"`
}

// DurationHours computes the class length in hours, rounded to 2 decimals.
func DurationHours(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(hours*100) / 100
}
