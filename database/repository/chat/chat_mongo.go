package chatRepo

import (
	"context"
	"fmt"
	"time"

	"coachbar/database"
	"coachbar/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoChatRepo implements ChatRepository using MongoDB.
type MongoChatRepo struct {
	coll *mongo.Collection
}

// NewMongoChatRepo creates a new instance of ChatRepository using MongoDB.
func NewMongoChatRepo() ChatRepository {
	repo := &MongoChatRepo{coll: database.Collection("chats")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for channel lookup. The unique index on
// participant_key is what prevents two channels for the same pair when both
// parties open concurrently.
func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "participant_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "creator", Value: 1}}},
		{Keys: bson.D{{Key: "receiver", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// OpenChannel upserts the channel for the pair. $setOnInsert keeps an
// existing channel untouched; the racing loser of two concurrent opens gets
// the winner's document back instead of creating a duplicate.
func (r *MongoChatRepo) OpenChannel(creator, receiver string) (*models.ChatChannel, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	key := models.ParticipantKey(creator, receiver)
	filter := bson.M{"participant_key": key}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":              uuid.NewString(),
			"creator":         creator,
			"receiver":        receiver,
			"participant_key": key,
			"messages":        []models.ChatMessage{},
			"created_at":      time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var channel models.ChatChannel
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&channel); err != nil {
		return nil, fmt.Errorf("failed to open channel for pair %s: %w", key, err)
	}
	return &channel, nil
}

// GetByID retrieves a channel by its unique ID.
func (r *MongoChatRepo) GetByID(id string) (*models.ChatChannel, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var channel models.ChatChannel
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&channel); err != nil {
		return nil, fmt.Errorf("failed to fetch channel with id %s: %w", id, err)
	}
	return &channel, nil
}

// ListForUser retrieves every channel the user participates in.
func (r *MongoChatRepo) ListForUser(userID string) ([]models.ChatChannel, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"creator": userID},
		bson.M{"receiver": userID},
	}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var channels []models.ChatChannel
	for cursor.Next(ctx) {
		var c models.ChatChannel
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode channel: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, nil
}

// AppendMessage appends one message atomically. $push cannot lose a
// concurrent sender's message the way a read-then-overwrite of the whole
// array can.
func (r *MongoChatRepo) AppendMessage(channelID string, msg models.ChatMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": channelID},
		bson.M{"$push": bson.M{"messages": msg}},
	)
	if err != nil {
		return fmt.Errorf("failed to append message to channel %s: %w", channelID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("channel with id %s not found", channelID)
	}
	return nil
}

// MarkAllReadFromOthers flips read on unread messages from the other
// participant in one filtered array update.
func (r *MongoChatRepo) MarkAllReadFromOthers(channelID, selfID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"messages.$[m].read": true}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: bson.A{bson.M{
			"m.sender": bson.M{"$ne": selfID},
			"m.read":   false,
		}},
	})

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": channelID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to mark messages read in channel %s: %w", channelID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("channel with id %s not found", channelID)
	}
	return nil
}
