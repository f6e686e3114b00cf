package classRepo

import (
	"context"
	"fmt"
	"time"

	"coachbar/database"
	"coachbar/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClassRepo implements ClassRepository using MongoDB.
type MongoClassRepo struct {
	coll *mongo.Collection
}

// NewMongoClassRepo creates a new instance of ClassRepository using MongoDB.
func NewMongoClassRepo() ClassRepository {
	repo := &MongoClassRepo{coll: database.Collection("classes")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoClassRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "listing_id", Value: 1}}},
		{Keys: bson.D{{Key: "teacher_id", Value: 1}}},
		{Keys: bson.D{{Key: "students", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new group class.
func (r *MongoClassRepo) Create(class *models.GroupClass) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	class.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, class); err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

// GetByID retrieves a class by its unique ID.
func (r *MongoClassRepo) GetByID(id string) (*models.GroupClass, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var class models.GroupClass
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&class); err != nil {
		return nil, fmt.Errorf("failed to fetch class with id %s: %w", id, err)
	}
	return &class, nil
}

func (r *MongoClassRepo) find(filter bson.M) ([]models.GroupClass, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []models.GroupClass
	for cursor.Next(ctx) {
		var c models.GroupClass
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// GetByListing retrieves the classes scheduled under a listing.
func (r *MongoClassRepo) GetByListing(listingID string) ([]models.GroupClass, error) {
	return r.find(bson.M{"listing_id": listingID})
}

// ListByStudent retrieves classes the user is enrolled in.
func (r *MongoClassRepo) ListByStudent(userID string) ([]models.GroupClass, error) {
	return r.find(bson.M{"students": userID})
}

// ListByTeacher retrieves classes the user teaches.
func (r *MongoClassRepo) ListByTeacher(userID string) ([]models.GroupClass, error) {
	return r.find(bson.M{"teacher_id": userID})
}

// Book takes a seat with one filtered update: decrement and enroll happen
// only when class_seats is still positive and the user is absent from the
// roster. Two racers on the last seat cannot both match, so the counter
// never goes negative.
func (r *MongoClassRepo) Book(classID, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":          classID,
		"class_seats": bson.M{"$gt": 0},
		"students":    bson.M{"$ne": userID},
	}
	update := bson.M{
		"$inc":      bson.M{"class_seats": -1},
		"$addToSet": bson.M{"students": userID},
		"$set":      bson.M{"class_type": "group"},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to book class %s: %w", classID, err)
	}
	return result.MatchedCount > 0, nil
}

// Cancel releases a seat with one filtered update, matched only while the
// user is on the roster so a double cancel cannot inflate the seat count.
func (r *MongoClassRepo) Cancel(classID, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":       classID,
		"students": userID,
	}
	update := bson.M{
		"$inc":  bson.M{"class_seats": 1},
		"$pull": bson.M{"students": userID},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking on class %s: %w", classID, err)
	}
	return result.MatchedCount > 0, nil
}
