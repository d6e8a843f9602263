package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerating/rating-api/internal/core/domain"
)

const eventsCollection = "rating_events"

// EventRepository implements ports.RatingEventRepository using MongoDB.
type EventRepository struct {
	coll  *mongo.Collection
	guard *Guard
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database, timeout time.Duration) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection), guard: NewGuard(eventsCollection, timeout)}
}

type eventDoc struct {
	StoreID    string    `bson:"store_id"`
	UserID     string    `bson:"user_id"`
	Value      int       `bson:"value"`
	Previous   int       `bson:"previous,omitempty"`
	Action     string    `bson:"action"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Insert persists a rating event to the audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.RatingEvent) error {
	doc := eventDoc{
		StoreID:    event.StoreID,
		UserID:     event.UserID,
		Value:      event.Value,
		Previous:   event.Previous,
		Action:     string(event.Action),
		OccurredAt: event.OccurredAt.UTC(),
		RecordedAt: time.Now().UTC(),
	}

	err := r.guard.Do(ctx, func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert rating event: %w", err)
	}
	return nil
}

// ListByStore returns up to limit events for a store, newest first.
func (r *EventRepository) ListByStore(ctx context.Context, storeID string, limit int64) ([]domain.RatingEvent, error) {
	var docs []eventDoc
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		opts := options.Find().
			SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
			SetLimit(limit)
		cur, err := r.coll.Find(ctx, bson.M{"store_id": storeID}, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, fmt.Errorf("list rating events: %w", err)
	}

	events := make([]domain.RatingEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.RatingEvent{
			StoreID:    d.StoreID,
			UserID:     d.UserID,
			Value:      d.Value,
			Previous:   d.Previous,
			Action:     domain.RatingAction(d.Action),
			OccurredAt: d.OccurredAt.UTC(),
		})
	}
	return events, nil
}

func (r *EventRepository) Guard() *Guard { return r.guard }

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "occurred_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("rating_events indexes: %w", err)
	}
	return nil
}
