package service

import (
	"context"
	"strings"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

// AdminService backs the administrator endpoints. User and store creation
// follow exactly the same rules as signup and owner store creation.
type AdminService struct {
	auth   ports.AuthService
	stores ports.StoreService
	users  ports.UserRepository
}

func NewAdminService(auth ports.AuthService, stores ports.StoreService, users ports.UserRepository) *AdminService {
	return &AdminService{auth: auth, stores: stores, users: users}
}

func (s *AdminService) AddUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	return s.auth.Register(ctx, in)
}

// AddStore creates a store with no owner.
func (s *AdminService) AddStore(ctx context.Context, in domain.NewStore) (*domain.Store, error) {
	return s.stores.Create(ctx, in, "")
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	filter = ports.UserFilter{
		Name:    strings.TrimSpace(filter.Name),
		Email:   strings.TrimSpace(filter.Email),
		Address: strings.TrimSpace(filter.Address),
		Role:    strings.TrimSpace(filter.Role),
	}
	return s.users.List(ctx, filter)
}

func (s *AdminService) ListStores(ctx context.Context, filter ports.StoreFilter) ([]ports.StoreView, error) {
	filter = ports.StoreFilter{
		Name:    strings.TrimSpace(filter.Name),
		Email:   strings.TrimSpace(filter.Email),
		Address: strings.TrimSpace(filter.Address),
	}
	return s.stores.ListAll(ctx, filter)
}
