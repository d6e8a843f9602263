package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

// RatingService is the rating aggregator: it validates submissions, delegates
// the create-or-update decision to the repository's atomic upsert and joins
// ratings with rater names on the read path.
type RatingService struct {
	ratings ports.RatingRepository
	stores  ports.StoreRepository
	users   ports.UserRepository
	cache   ports.StoreListCache
	events  ports.RatingEventPublisher
	log     zerolog.Logger
	now     func() time.Time
}

// NewRatingService returns a RatingService. cache and events may be nil.
func NewRatingService(
	ratings ports.RatingRepository,
	stores ports.StoreRepository,
	users ports.UserRepository,
	cache ports.StoreListCache,
	events ports.RatingEventPublisher,
	log zerolog.Logger,
) *RatingService {
	if cache == nil {
		cache = noopCache{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &RatingService{
		ratings: ratings,
		stores:  stores,
		users:   users,
		cache:   cache,
		events:  events,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit creates the caller's rating for a store or replaces its value.
// Validation happens before any storage call; a rejected submission leaves
// the previous rating untouched.
func (s *RatingService) Submit(ctx context.Context, userID, storeID string, value int) (*ports.SubmitResult, error) {
	if !domain.ValidRating(value) {
		return nil, domain.ErrInvalidRating
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	now := s.now()
	res, err := s.ratings.Upsert(ctx, userID, storeID, value, now)
	if err != nil {
		return nil, err
	}

	action := domain.RatingUpdated
	if res.Created {
		action = domain.RatingCreated
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("store cache invalidation failed")
	}

	s.events.Publish(domain.RatingEvent{
		StoreID:    storeID,
		UserID:     userID,
		Value:      value,
		Previous:   res.Previous,
		Action:     action,
		OccurredAt: now,
	})

	s.log.Info().
		Str("store_id", storeID).
		Str("user_id", userID).
		Int("rating", value).
		Str("action", string(action)).
		Msg("rating submitted")

	return &ports.SubmitResult{Rating: res.Rating, Action: action}, nil
}

// ListForStore returns a store's ratings with rater names, newest first.
func (s *RatingService) ListForStore(ctx context.Context, storeID string) ([]ports.RaterView, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	ratings, err := s.ratings.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return joinRaters(ctx, s.users, ratings)
}

// MyRating returns the caller's rating for a store.
func (s *RatingService) MyRating(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	return s.ratings.FindByUserAndStore(ctx, userID, storeID)
}

// joinRaters attaches display names to ratings, keeping their order.
func joinRaters(ctx context.Context, users ports.UserRepository, ratings []domain.Rating) ([]ports.RaterView, error) {
	out := make([]ports.RaterView, 0, len(ratings))
	if len(ratings) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(ratings))
	for _, r := range ratings {
		ids = append(ids, r.UserID)
	}
	byID, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, r := range ratings {
		view := ports.RaterView{UserID: r.UserID, Rating: r.Value, UpdatedAt: r.UpdatedAt}
		if u, ok := byID[r.UserID]; ok {
			view.Name = u.Name
		}
		out = append(out, view)
	}
	return out, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.RatingEvent) {}
