package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

// StoreService manages the store catalogue and its public listing.
type StoreService struct {
	stores  ports.StoreRepository
	users   ports.UserRepository
	ratings ports.RatingRepository
	cache   ports.StoreListCache
	log     zerolog.Logger
}

// NewStoreService returns a StoreService. cache may be nil.
func NewStoreService(
	stores ports.StoreRepository,
	users ports.UserRepository,
	ratings ports.RatingRepository,
	cache ports.StoreListCache,
	log zerolog.Logger,
) *StoreService {
	if cache == nil {
		cache = noopCache{}
	}
	return &StoreService{stores: stores, users: users, ratings: ratings, cache: cache, log: log}
}

// Create validates and stores a new store, bound to ownerID when non-empty.
func (s *StoreService) Create(ctx context.Context, in domain.NewStore, ownerID string) (*domain.Store, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.stores.Create(ctx, &domain.Store{
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("store cache invalidation failed")
	}
	s.log.Info().Str("store_id", created.ID).Str("owner_id", ownerID).Msg("store created")
	return created, nil
}

// ListPublic returns stores filtered by name and address. The unfiltered
// listing is served from cache when possible.
func (s *StoreService) ListPublic(ctx context.Context, filter ports.StoreFilter) ([]ports.StoreView, error) {
	filter = ports.StoreFilter{Name: filter.Name, Address: filter.Address}

	if !filter.IsZero() {
		return s.ListAll(ctx, filter)
	}

	// The generation is read before storage so that an invalidation racing
	// this read leaves our write under a generation nobody reads.
	cached, gen, ok, cacheErr := s.cache.Get(ctx)
	if cacheErr != nil {
		s.log.Warn().Err(cacheErr).Msg("store cache read failed")
	} else if ok {
		return cached, nil
	}

	views, err := s.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cacheErr == nil {
		if err := s.cache.Set(ctx, gen, views); err != nil {
			s.log.Warn().Err(err).Msg("store cache write failed")
		}
	}
	return views, nil
}

// ListAll returns stores matching every filter field, with owner summaries
// and averages.
func (s *StoreService) ListAll(ctx context.Context, filter ports.StoreFilter) ([]ports.StoreView, error) {
	stores, err := s.stores.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, stores)
}

// ListByOwner returns the stores bound to ownerID.
func (s *StoreService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Store, error) {
	return s.stores.List(ctx, ports.StoreFilter{OwnerID: ownerID})
}

func (s *StoreService) project(ctx context.Context, stores []*domain.Store) ([]ports.StoreView, error) {
	views := make([]ports.StoreView, 0, len(stores))
	if len(stores) == 0 {
		return views, nil
	}

	storeIDs := make([]string, 0, len(stores))
	ownerIDs := make([]string, 0, len(stores))
	for _, st := range stores {
		storeIDs = append(storeIDs, st.ID)
		if st.OwnerID != "" {
			ownerIDs = append(ownerIDs, st.OwnerID)
		}
	}

	ratings, err := s.ratings.ListByStores(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	owners, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	for _, st := range stores {
		rs := ratings[st.ID]
		views = append(views, ports.StoreView{
			Store:         st,
			Owner:         owners[st.OwnerID].Summary(),
			AverageRating: domain.Average(rs),
			TotalRatings:  len(rs),
		})
	}
	return views, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]ports.StoreView, int64, bool, error) {
	return nil, 0, false, nil
}
func (noopCache) Set(context.Context, int64, []ports.StoreView) error { return nil }
func (noopCache) Invalidate(context.Context) error                    { return nil }
