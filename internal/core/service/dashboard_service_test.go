package service

import (
	"context"
	"testing"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

func newDashboardFixture(now time.Time) (*DashboardService, *stubStoreRepo, *stubUserRepo, *stubRatingRepo) {
	stores := newStubStoreRepo()
	users := newStubUserRepo()
	ratings := newStubRatingRepo()
	svc := NewDashboardService(users, stores, ratings)
	svc.now = func() time.Time { return now }
	return svc, stores, users, ratings
}

func TestDashboardService_Admin(t *testing.T) {
	svc, stores, users, ratings := newDashboardFixture(time.Now())
	users.seed(&domain.User{ID: "u1"})
	users.seed(&domain.User{ID: "u2"})
	stores.seed(&domain.Store{ID: "s1"})
	ratings.seed(domain.Rating{UserID: "u1", StoreID: "s1", Value: 4})
	ratings.seed(domain.Rating{UserID: "u2", StoreID: "s1", Value: 2})

	got, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}
	if got.TotalUsers != 2 || got.TotalStores != 1 || got.TotalRatings != 2 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestDashboardService_Owner(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, stores, users, ratings := newDashboardFixture(now)

	users.seed(&domain.User{ID: "u1", Name: "Alexandra Montgomery-Smith"})
	users.seed(&domain.User{ID: "u2", Name: "Bartholomew Featherstonehaugh"})
	stores.seed(&domain.Store{ID: "s1", OwnerID: "owner-1"})
	stores.seed(&domain.Store{ID: "s2", OwnerID: "owner-1"})
	stores.seed(&domain.Store{ID: "s3", OwnerID: "owner-2"})
	ratings.seed(domain.Rating{UserID: "u1", StoreID: "s1", Value: 4, UpdatedAt: now.Add(-30 * 24 * time.Hour)})
	ratings.seed(domain.Rating{UserID: "u2", StoreID: "s1", Value: 5, UpdatedAt: now.Add(-time.Hour)})
	ratings.seed(domain.Rating{UserID: "u1", StoreID: "s3", Value: 1, UpdatedAt: now})

	got, err := svc.Owner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("Owner: %v", err)
	}
	if len(got.Stores) != 2 {
		t.Fatalf("expected both owned stores, got %d", len(got.Stores))
	}

	s1 := got.Stores[0]
	if s1.Store.ID != "s1" || s1.TotalRatings != 2 || s1.RecentRatings != 1 {
		t.Errorf("unexpected summary: %+v", s1)
	}
	if s1.AverageRating == nil || *s1.AverageRating != 4.5 {
		t.Errorf("expected average 4.5, got %v", s1.AverageRating)
	}
	if len(s1.Raters) != 2 || s1.Raters[0].Name != "Bartholomew Featherstonehaugh" {
		t.Errorf("expected raters newest first, got %+v", s1.Raters)
	}

	s2 := got.Stores[1]
	if s2.AverageRating != nil || s2.TotalRatings != 0 || len(s2.Raters) != 0 {
		t.Errorf("unrated store must be empty, got %+v", s2)
	}
}

func TestDashboardService_Owner_NoStores(t *testing.T) {
	svc, _, _, _ := newDashboardFixture(time.Now())

	got, err := svc.Owner(context.Background(), "owner-9")
	if err != nil {
		t.Fatalf("Owner: %v", err)
	}
	if got.Stores == nil || len(got.Stores) != 0 {
		t.Fatalf("expected empty, non-nil store list, got %+v", got.Stores)
	}
}

func TestDashboardService_User(t *testing.T) {
	svc, stores, _, ratings := newDashboardFixture(time.Now())
	stores.seed(&domain.Store{ID: "s1"})
	stores.seed(&domain.Store{ID: "s2"})
	ratings.seed(domain.Rating{UserID: "me", StoreID: "s1", Value: 3})
	ratings.seed(domain.Rating{UserID: "other", StoreID: "s1", Value: 4})

	got, err := svc.User(context.Background(), "me")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if len(got.Stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(got.Stores))
	}

	s1 := got.Stores[0]
	if s1.UserRating == nil || *s1.UserRating != 3 {
		t.Errorf("expected own rating 3, got %v", s1.UserRating)
	}
	if s1.AverageRating == nil || *s1.AverageRating != 3.5 {
		t.Errorf("expected average 3.5, got %v", s1.AverageRating)
	}

	s2 := got.Stores[1]
	if s2.UserRating != nil || s2.AverageRating != nil {
		t.Errorf("unrated store must have null values, got %+v", s2)
	}
	if ratings.calls["ListByStores"] != 1 {
		t.Errorf("expected a single ratings read, got %d", ratings.calls["ListByStores"])
	}
}

func TestDashboardService_User_ReflectsLatestSubmission(t *testing.T) {
	stores := newStubStoreRepo()
	stores.seed(&domain.Store{ID: "s1", Name: "Corner Books"})
	users := newStubUserRepo()
	users.seed(&domain.User{ID: "u1", Name: "Alexandra Montgomery-Smith", Role: domain.RoleUser})
	ratings := newStubRatingRepo()

	ratingSvc := NewRatingService(ratings, stores, users, &stubCache{}, &recordingPublisher{}, discardLogger)
	dashboards := NewDashboardService(users, stores, ratings)
	ctx := context.Background()

	if _, err := ratingSvc.Submit(ctx, "u1", "s1", 2); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	res, err := ratingSvc.Submit(ctx, "u1", "s1", 4)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if res.Action != domain.RatingUpdated {
		t.Errorf("expected updated, got %s", res.Action)
	}

	got, err := dashboards.User(ctx, "u1")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if len(got.Stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(got.Stores))
	}
	entry := got.Stores[0]
	if entry.UserRating == nil || *entry.UserRating != 4 {
		t.Errorf("expected own rating 4, got %v", entry.UserRating)
	}
	if entry.AverageRating == nil || *entry.AverageRating != 4 {
		t.Errorf("expected average 4, got %v", entry.AverageRating)
	}
	if n := len(ratings.forStore("s1")); n != 1 {
		t.Errorf("expected one rating record, got %d", n)
	}
}
