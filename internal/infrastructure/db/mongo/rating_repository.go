package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

const ratingsCollection = "ratings"

// RatingRepository implements ports.RatingRepository using MongoDB. The
// unique (user_id, store_id) index is what keeps one rating per pair.
type RatingRepository struct {
	coll  *mongo.Collection
	guard *Guard
}

func NewRatingRepository(db *mongo.Database, timeout time.Duration) *RatingRepository {
	return &RatingRepository{coll: db.Collection(ratingsCollection), guard: NewGuard(ratingsCollection, timeout)}
}

type ratingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	StoreID   string             `bson:"store_id"`
	Value     int                `bson:"value"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *ratingDoc) toDomain() domain.Rating {
	return domain.Rating{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		StoreID:   d.StoreID,
		Value:     d.Value,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Upsert writes the rating with a single conditional update. Two first-time
// submissions for the same pair can both attempt the insert; the loser gets
// a duplicate key error and its retry lands on the winner's document.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID string, value int, at time.Time) (*ports.UpsertResult, error) {
	var res *ports.UpsertResult
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		res, err = r.upsert(ctx, userID, storeID, value, at)
		if mongo.IsDuplicateKeyError(err) {
			res, err = r.upsert(ctx, userID, storeID, value, at)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}
	return res, nil
}

func (r *RatingRepository) upsert(ctx context.Context, userID, storeID string, value int, at time.Time) (*ports.UpsertResult, error) {
	filter := bson.M{"user_id": userID, "store_id": storeID}
	update := bson.M{
		"$set":         bson.M{"value": value, "updated_at": at},
		"$setOnInsert": bson.M{"created_at": at},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var prev ratingDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&prev)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		var created ratingDoc
		if err := r.coll.FindOne(ctx, filter).Decode(&created); err != nil {
			return nil, err
		}
		rating := created.toDomain()
		return &ports.UpsertResult{Rating: &rating, Created: true}, nil
	case err != nil:
		return nil, err
	}

	rating := prev.toDomain()
	rating.Value = value
	rating.UpdatedAt = at.UTC()
	return &ports.UpsertResult{Rating: &rating, Previous: prev.Value}, nil
}

func (r *RatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	var doc ratingDoc
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"user_id": userID, "store_id": storeID}).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	rating := doc.toDomain()
	return &rating, nil
}

func (r *RatingRepository) ListByStore(ctx context.Context, storeID string) ([]domain.Rating, error) {
	docs, err := r.find(ctx, bson.M{"store_id": storeID})
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	ratings := make([]domain.Rating, 0, len(docs))
	for i := range docs {
		ratings = append(ratings, docs[i].toDomain())
	}
	return ratings, nil
}

func (r *RatingRepository) ListByStores(ctx context.Context, storeIDs []string) (map[string][]domain.Rating, error) {
	out := make(map[string][]domain.Rating, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}

	docs, err := r.find(ctx, bson.M{"store_id": bson.M{"$in": storeIDs}})
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	for i := range docs {
		out[docs[i].StoreID] = append(out[docs[i].StoreID], docs[i].toDomain())
	}
	return out, nil
}

// find returns matching ratings, most recently updated first.
func (r *RatingRepository) find(ctx context.Context, filter bson.M) ([]ratingDoc, error) {
	var docs []ratingDoc
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
		cur, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	return docs, err
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		n, err = r.coll.CountDocuments(ctx, bson.D{})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return n, nil
}

func (r *RatingRepository) Guard() *Guard { return r.guard }

func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "store_id", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("ratings indexes: %w", err)
	}
	return nil
}
