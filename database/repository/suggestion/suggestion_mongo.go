package suggestionRepo

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

// MongoSuggestionRepo implements SuggestionRepository using MongoDB. It holds
// both the suggestions and chats collections because a negotiation write
// always touches the suggestion and its mirrored chat message together.
type MongoSuggestionRepo struct {
	suggestionColl *mongo.Collection
	chatColl       *mongo.Collection
}

// NewMongoSuggestionRepo creates a new instance of SuggestionRepository using MongoDB.
func NewMongoSuggestionRepo() SuggestionRepository {
	repo := &MongoSuggestionRepo{
		suggestionColl: database.Collection("bookingSuggestions"),
		chatColl:       database.Collection("chats"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSuggestionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "confirmed", Value: 1}, {Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "confirmed", Value: 1}, {Key: "confirmed_by", Value: 1}}},
	}

	_, err := r.suggestionColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a suggestion by its unique ID.
func (r *MongoSuggestionRepo) GetByID(id string) (*models.BookingSuggestion, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.BookingSuggestion
	if err := r.suggestionColl.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to fetch suggestion with id %s: %w", id, err)
	}
	return &s, nil
}

// withTransaction runs fn inside one Mongo transaction.
func (r *MongoSuggestionRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.suggestionColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateWithMessage inserts the suggestion and appends its derived chat
// message so the two records change together or not at all.
func (r *MongoSuggestionRepo) CreateWithMessage(ctx context.Context, s *models.BookingSuggestion, channelID string, msg models.ChatMessage) error {
	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.suggestionColl.InsertOne(sc, s); err != nil {
			return fmt.Errorf("insert suggestion failed: %w", err)
		}

		res, err := r.chatColl.UpdateOne(sc,
			bson.M{"id": channelID},
			bson.M{"$push": bson.M{"messages": msg}},
		)
		if err != nil {
			return fmt.Errorf("append suggestion message failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("channel with id %s not found", channelID)
		}
		return nil
	}

	if err := r.withTransaction(ctx, txnFn); err != nil {
		return fmt.Errorf("proposal transaction failed: %w", err)
	}
	return nil
}

// ConfirmWithMessageFlags performs the Proposed -> Confirmed transition. The
// suggestion update is filtered on confirmed=false, so of two racing
// confirmations exactly one matches; the loser sees ErrAlreadyConfirmed.
func (r *MongoSuggestionRepo) ConfirmWithMessageFlags(ctx context.Context, bookingID, confirmedBy string, confirmedAt time.Time) (string, error) {
	var channelID string

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.suggestionColl.UpdateOne(sc,
			bson.M{"id": bookingID, "confirmed": false},
			bson.M{"$set": bson.M{
				"confirmed":    true,
				"confirmed_by": confirmedBy,
				"confirmed_at": confirmedAt,
			}},
		)
		if err != nil {
			return fmt.Errorf("confirm suggestion failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrAlreadyConfirmed
		}

		// Locate the channel through the message that carries the booking id.
		var channel models.ChatChannel
		if err := r.chatColl.FindOne(sc, bson.M{"messages.booking_id": bookingID}).Decode(&channel); err != nil {
			return fmt.Errorf("channel for booking %s not found: %w", bookingID, err)
		}
		channelID = channel.ID

		update := bson.M{"$set": bson.M{"messages.$[m].confirmed": true}}
		opts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: bson.A{bson.M{"m.booking_id": bookingID}},
		})
		if _, err := r.chatColl.UpdateOne(sc, bson.M{"id": channel.ID}, update, opts); err != nil {
			return fmt.Errorf("mirror confirmed flag failed: %w", err)
		}
		return nil
	}

	if err := r.withTransaction(ctx, txnFn); err != nil {
		if err == ErrAlreadyConfirmed {
			return "", err
		}
		return "", fmt.Errorf("confirmation transaction failed: %w", err)
	}
	return channelID, nil
}

// ListUpcomingFor retrieves confirmed suggestions the user proposed or accepted.
func (r *MongoSuggestionRepo) ListUpcomingFor(userID string) ([]models.BookingSuggestion, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"confirmed": true,
		"$or": bson.A{
			bson.M{"created_by": userID},
			bson.M{"confirmed_by": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "class_start", Value: 1}})

	cursor, err := r.suggestionColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var suggestions []models.BookingSuggestion
	for cursor.Next(ctx) {
		var s models.BookingSuggestion
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

// CountCompletedBy counts completed suggestions created by the user.
func (r *MongoSuggestionRepo) CountCompletedBy(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.suggestionColl.CountDocuments(ctx, bson.M{
		"created_by": userID,
		"completed":  true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count completed suggestions for user %s: %w", userID, err)
	}
	return count, nil
}

// MarkCompleted flips completed=true. Only confirmed suggestions qualify;
// an unconfirmed suggestion left Proposed never completes.
func (r *MongoSuggestionRepo) MarkCompleted(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.suggestionColl.UpdateOne(ctx,
		bson.M{"id": id, "confirmed": true},
		bson.M{"$set": bson.M{"completed": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark suggestion %s completed: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("confirmed suggestion with id %s not found", id)
	}
	return nil
}
