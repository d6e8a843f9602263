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

const storesCollection = "stores"

// StoreRepository implements ports.StoreRepository using MongoDB.
type StoreRepository struct {
	coll  *mongo.Collection
	guard *Guard
}

func NewStoreRepository(db *mongo.Database, timeout time.Duration) *StoreRepository {
	return &StoreRepository{coll: db.Collection(storesCollection), guard: NewGuard(storesCollection, timeout)}
}

type storeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Address   string             `bson:"address"`
	OwnerID   string             `bson:"owner_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *storeDoc) toDomain() *domain.Store {
	return &domain.Store{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Address:   d.Address,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	doc := storeDoc{
		ID:        primitive.NewObjectID(),
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}

	err := r.guard.Do(ctx, func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStoreExists
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	var doc storeDoc
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StoreRepository) List(ctx context.Context, filter ports.StoreFilter) ([]*domain.Store, error) {
	var docs []storeDoc
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
		cur, err := r.coll.Find(ctx, storeQuery(filter), opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	stores := make([]*domain.Store, 0, len(docs))
	for i := range docs {
		stores = append(stores, docs[i].toDomain())
	}
	return stores, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		n, err = r.coll.CountDocuments(ctx, bson.D{})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return n, nil
}

func (r *StoreRepository) Guard() *Guard { return r.guard }

func (r *StoreRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("stores indexes: %w", err)
	}
	return nil
}

func storeQuery(f ports.StoreFilter) bson.M {
	q := bson.M{}
	if f.Name != "" {
		q["name"] = containsFold(f.Name)
	}
	if f.Email != "" {
		q["email"] = containsFold(f.Email)
	}
	if f.Address != "" {
		q["address"] = containsFold(f.Address)
	}
	if f.OwnerID != "" {
		q["owner_id"] = f.OwnerID
	}
	return q
}
