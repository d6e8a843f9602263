package ports

import (
	"context"

	"github.com/storerating/rating-api/internal/core/domain"
)

// StoreView is a store with its owner summary and current average rating.
type StoreView struct {
	Store         *domain.Store       `json:"store"`
	Owner         *domain.UserSummary `json:"owner,omitempty"`
	AverageRating *float64            `json:"average_rating"`
	TotalRatings  int                 `json:"total_ratings"`
}

// StoreService manages the store catalogue.
type StoreService interface {
	// Create adds a store. ownerID binds it to an owner; empty means unowned.
	Create(ctx context.Context, in domain.NewStore, ownerID string) (*domain.Store, error)
	ListPublic(ctx context.Context, filter StoreFilter) ([]StoreView, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error)
	ListAll(ctx context.Context, filter StoreFilter) ([]StoreView, error)
}

// AdminService backs the administrator endpoints.
type AdminService interface {
	AddUser(ctx context.Context, in domain.NewUser) (*domain.User, error)
	AddStore(ctx context.Context, in domain.NewStore) (*domain.Store, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	ListStores(ctx context.Context, filter StoreFilter) ([]StoreView, error)
}
