package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.RatingEvent
}

func (p *recordingPublisher) Publish(e domain.RatingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type ratingFixture struct {
	svc     *RatingService
	ratings *stubRatingRepo
	users   *stubUserRepo
	cache   *stubCache
	events  *recordingPublisher
}

func newRatingFixture() *ratingFixture {
	stores := newStubStoreRepo()
	stores.seed(&domain.Store{ID: "store-1", Name: "Corner Books"})
	users := newStubUserRepo()
	users.seed(&domain.User{ID: "user-1", Name: "Alexandra Montgomery-Smith", Role: domain.RoleUser})

	f := &ratingFixture{
		ratings: newStubRatingRepo(),
		users:   users,
		cache:   &stubCache{},
		events:  &recordingPublisher{},
	}
	f.svc = NewRatingService(f.ratings, stores, users, f.cache, f.events, discardLogger)
	return f
}

func TestRatingService_Submit_CreateThenUpdate(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, "user-1", "store-1", 3)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.Action != domain.RatingCreated {
		t.Errorf("expected created, got %s", first.Action)
	}

	second, err := f.svc.Submit(ctx, "user-1", "store-1", 5)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.Action != domain.RatingUpdated {
		t.Errorf("expected updated, got %s", second.Action)
	}

	if n, _ := f.ratings.Count(ctx); n != 1 {
		t.Fatalf("expected one rating for the pair, got %d", n)
	}
	got, err := f.svc.MyRating(ctx, "user-1", "store-1")
	if err != nil {
		t.Fatalf("MyRating: %v", err)
	}
	if got.Value != 5 {
		t.Errorf("expected stored value 5, got %d", got.Value)
	}

	if len(f.events.events) != 2 {
		t.Fatalf("expected two events, got %d", len(f.events.events))
	}
	if ev := f.events.events[1]; ev.Previous != 3 || ev.Action != domain.RatingUpdated {
		t.Errorf("unexpected update event: %+v", ev)
	}
	if f.cache.invalidated != 2 {
		t.Errorf("expected cache invalidated per submit, got %d", f.cache.invalidated)
	}
}

func TestRatingService_Submit_SameValueIsUpdate(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "user-1", "store-1", 4); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	res, err := f.svc.Submit(ctx, "user-1", "store-1", 4)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if res.Action != domain.RatingUpdated {
		t.Errorf("identical resubmission must report updated, got %s", res.Action)
	}
	if n, _ := f.ratings.Count(ctx); n != 1 {
		t.Fatalf("expected one rating, got %d", n)
	}
}

func TestRatingService_Submit_OutOfRange(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, "user-1", "store-1", 2); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	for _, v := range []int{0, 6, -1} {
		if _, err := f.svc.Submit(ctx, "user-1", "store-1", v); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("value %d: expected ErrValidation, got %v", v, err)
		}
	}

	got, _ := f.svc.MyRating(ctx, "user-1", "store-1")
	if got.Value != 2 {
		t.Errorf("rejected submission changed stored value to %d", got.Value)
	}
	if f.ratings.calls["Upsert"] != 1 {
		t.Errorf("validation must happen before storage, upserts=%d", f.ratings.calls["Upsert"])
	}
}

func TestRatingService_Submit_UnknownStore(t *testing.T) {
	f := newRatingFixture()

	_, err := f.svc.Submit(context.Background(), "user-1", "store-404", 4)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.ratings.calls["Upsert"] != 0 {
		t.Errorf("no rating should be written for an unknown store")
	}
}

func TestRatingService_Submit_StorageUnavailable(t *testing.T) {
	f := newRatingFixture()
	f.ratings.err = fmt.Errorf("upsert: %w", domain.ErrServiceUnavailable)

	_, err := f.svc.Submit(context.Background(), "user-1", "store-1", 4)
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if len(f.events.events) != 0 {
		t.Errorf("failed submission must not publish an event")
	}
}

func TestRatingService_Submit_ConcurrentSamePair(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan domain.RatingAction, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			res, err := f.svc.Submit(ctx, "user-1", "store-1", v)
			if err != nil {
				t.Errorf("submit: %v", err)
				return
			}
			results <- res.Action
		}(i%5 + 1)
	}
	wg.Wait()
	close(results)

	created := 0
	for a := range results {
		if a == domain.RatingCreated {
			created++
		}
	}
	if created != 1 {
		t.Errorf("expected exactly one created result, got %d", created)
	}
	if n, _ := f.ratings.Count(ctx); n != 1 {
		t.Fatalf("expected one rating after concurrent submits, got %d", n)
	}
}

func TestRatingService_ListForStore(t *testing.T) {
	f := newRatingFixture()
	f.users.seed(&domain.User{ID: "user-2", Name: "Bartholomew Featherstonehaugh", Role: domain.RoleUser})

	now := time.Now()
	f.ratings.seed(domain.Rating{UserID: "user-1", StoreID: "store-1", Value: 2, UpdatedAt: now.Add(-time.Hour)})
	f.ratings.seed(domain.Rating{UserID: "user-2", StoreID: "store-1", Value: 5, UpdatedAt: now})

	raters, err := f.svc.ListForStore(context.Background(), "store-1")
	if err != nil {
		t.Fatalf("ListForStore: %v", err)
	}
	if len(raters) != 2 {
		t.Fatalf("expected 2 raters, got %d", len(raters))
	}
	if raters[0].UserID != "user-2" || raters[0].Name != "Bartholomew Featherstonehaugh" || raters[0].Rating != 5 {
		t.Errorf("unexpected newest rater: %+v", raters[0])
	}
	if raters[1].Name != "Alexandra Montgomery-Smith" {
		t.Errorf("unexpected second rater: %+v", raters[1])
	}

	if _, err := f.svc.ListForStore(context.Background(), "store-404"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown store, got %v", err)
	}
}

func TestRatingService_MyRating_NotFound(t *testing.T) {
	f := newRatingFixture()

	if _, err := f.svc.MyRating(context.Background(), "user-1", "store-1"); !errors.Is(err, domain.ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}
