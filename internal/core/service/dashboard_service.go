package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

// recentWindow bounds the "recent ratings" count on the owner dashboard.
const recentWindow = 7 * 24 * time.Hour

// DashboardService builds the read-only, role-shaped projections.
type DashboardService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	now     func() time.Time
}

func NewDashboardService(users ports.UserRepository, stores ports.StoreRepository, ratings ports.RatingRepository) *DashboardService {
	return &DashboardService{users: users, stores: stores, ratings: ratings, now: time.Now}
}

// Admin returns platform-wide totals.
func (s *DashboardService) Admin(ctx context.Context) (*ports.AdminDashboard, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	return &ports.AdminDashboard{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
}

// Owner summarises the feedback on every store the owner holds.
func (s *DashboardService) Owner(ctx context.Context, ownerID string) (*ports.OwnerDashboard, error) {
	stores, err := s.stores.List(ctx, ports.StoreFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("list owner stores: %w", err)
	}

	byStore, err := s.ratings.ListByStores(ctx, storeIDs(stores))
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	since := s.now().Add(-recentWindow)
	out := &ports.OwnerDashboard{Stores: make([]ports.OwnerStoreDashboard, 0, len(stores))}
	for _, st := range stores {
		ratings := byStore[st.ID]

		raters, err := joinRaters(ctx, s.users, ratings)
		if err != nil {
			return nil, fmt.Errorf("join raters: %w", err)
		}

		recent := 0
		for _, r := range ratings {
			if r.UpdatedAt.After(since) {
				recent++
			}
		}

		out.Stores = append(out.Stores, ports.OwnerStoreDashboard{
			Store:         st,
			AverageRating: domain.Average(ratings),
			TotalRatings:  len(ratings),
			RecentRatings: recent,
			Raters:        raters,
		})
	}
	return out, nil
}

// User lists every store with its average and the caller's own rating. Both
// numbers for a store come from the same read of its ratings.
func (s *DashboardService) User(ctx context.Context, userID string) (*ports.UserDashboard, error) {
	stores, err := s.stores.List(ctx, ports.StoreFilter{})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	byStore, err := s.ratings.ListByStores(ctx, storeIDs(stores))
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	out := &ports.UserDashboard{Stores: make([]ports.UserStoreEntry, 0, len(stores))}
	for _, st := range stores {
		ratings := byStore[st.ID]
		entry := ports.UserStoreEntry{Store: st, AverageRating: domain.Average(ratings)}
		for _, r := range ratings {
			if r.UserID == userID {
				v := r.Value
				entry.UserRating = &v
				break
			}
		}
		out.Stores = append(out.Stores, entry)
	}
	return out, nil
}

func storeIDs(stores []*domain.Store) []string {
	ids := make([]string, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	return ids
}
