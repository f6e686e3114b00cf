package models

import "time"

// GroupClass is a scheduled class with a fixed seat inventory.
// ClassSeats counts seats still open; Students holds the enrolled user ids.
type GroupClass struct {
	ID               string    `bson:"id" json:"id"`
	ClassName        string    `bson:"class_name" json:"className"`
	ClassPrice       float64   `bson:"class_price" json:"classPrice"`
	ClassDescription string    `bson:"class_description" json:"classDescription"`
	ClassSeats       int       `bson:"class_seats" json:"classSeats"`
	ClassType        string    `bson:"class_type,omitempty" json:"classType,omitempty"`
	StartDateTime    time.Time `bson:"start_date_time" json:"startDateTime"`
	EndDateTime      time.Time `bson:"end_date_time" json:"endDateTime"`
	TeacherID        string    `bson:"teacher_id" json:"teacherId"`
	ListingID        string    `bson:"listing_id" json:"listingId"`
	Students         []string  `bson:"students" json:"Students"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// HasStudent reports whether the user is enrolled.
func (g GroupClass) HasStudent(userID string) bool {
	for _, s := range g.Students {
		if s == userID {
			return true
		}
	}
	return false
}
