package ports

import (
	"context"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

// UpsertResult describes the outcome of a conditional rating write.
type UpsertResult struct {
	Rating   *domain.Rating
	Created  bool
	Previous int // prior value; 0 when Created
}

// RatingRepository persists ratings. Implementations must guarantee at most
// one rating per (userID, storeID) at the storage layer.
type RatingRepository interface {
	// Upsert atomically creates or replaces the rating for (userID, storeID).
	Upsert(ctx context.Context, userID, storeID string, value int, at time.Time) (*UpsertResult, error)
	FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	// ListByStore returns the store's ratings, most recently updated first.
	ListByStore(ctx context.Context, storeID string) ([]domain.Rating, error)
	// ListByStores returns ratings for the given stores grouped by store id,
	// read with a single query.
	ListByStores(ctx context.Context, storeIDs []string) (map[string][]domain.Rating, error)
	Count(ctx context.Context) (int64, error)
}
