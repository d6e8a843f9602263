package ports

import (
	"context"

	"github.com/storerating/rating-api/internal/core/domain"
)

// UserFilter narrows a user listing. Every non-empty field is a
// case-insensitive substring match; fields are combined with AND.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
