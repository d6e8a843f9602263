package ports

import (
	"context"

	"github.com/storerating/rating-api/internal/core/domain"
)

// AdminDashboard holds platform-wide totals.
type AdminDashboard struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

// OwnerStoreDashboard is the feedback summary for one owned store.
type OwnerStoreDashboard struct {
	Store         *domain.Store `json:"store"`
	AverageRating *float64      `json:"average_rating"`
	TotalRatings  int           `json:"total_ratings"`
	RecentRatings int           `json:"recent_ratings"`
	Raters        []RaterView   `json:"raters"`
}

// OwnerDashboard lists every store the caller owns.
type OwnerDashboard struct {
	Stores []OwnerStoreDashboard `json:"stores"`
}

// UserStoreEntry pairs a store's average with the caller's own rating.
type UserStoreEntry struct {
	Store         *domain.Store `json:"store"`
	AverageRating *float64      `json:"average_rating"`
	UserRating    *int          `json:"user_rating"`
}

// UserDashboard lists every store with the caller's personal rating.
type UserDashboard struct {
	Stores []UserStoreEntry `json:"stores"`
}

// DashboardService assembles the role-shaped read projections.
type DashboardService interface {
	Admin(ctx context.Context) (*AdminDashboard, error)
	Owner(ctx context.Context, ownerID string) (*OwnerDashboard, error)
	User(ctx context.Context, userID string) (*UserDashboard, error)
}
