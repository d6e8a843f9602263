package ports

import (
	"context"

	"github.com/storerating/rating-api/internal/core/domain"
)

// StoreFilter narrows a store listing. Name, Email and Address are
// case-insensitive substring matches; OwnerID is exact.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// IsZero reports whether no filter field is set.
func (f StoreFilter) IsZero() bool {
	return f == StoreFilter{}
}

// StoreRepository persists stores.
type StoreRepository interface {
	// Create inserts a store. Returns domain.ErrStoreExists when the email is taken.
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context, filter StoreFilter) ([]*domain.Store, error)
	Count(ctx context.Context) (int64, error)
}

// StoreListCache caches the unfiltered public store listing. Entries are
// tied to a generation that Invalidate advances, so a listing read from
// storage before an invalidation is never served after it.
type StoreListCache interface {
	// Get returns the current generation and, when present, its listing.
	Get(ctx context.Context) (stores []StoreView, gen int64, ok bool, err error)
	// Set stores a listing under gen. Writes for an old generation are inert.
	Set(ctx context.Context, gen int64, stores []StoreView) error
	Invalidate(ctx context.Context) error
}
