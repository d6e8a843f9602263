package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

const historyLimit = 50

type ratingEventService struct {
	events ports.RatingEventRepository
	stores ports.StoreRepository
	log    zerolog.Logger
}

// NewRatingEventService returns a RatingEventService implementation.
func NewRatingEventService(
	events ports.RatingEventRepository,
	stores ports.StoreRepository,
	log zerolog.Logger,
) ports.RatingEventService {
	return &ratingEventService{events: events, stores: stores, log: log}
}

// Record appends a submission to the activity log.
func (s *ratingEventService) Record(ctx context.Context, event domain.RatingEvent) error {
	if err := s.events.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record rating event: %w", err)
	}

	s.log.Debug().
		Str("store_id", event.StoreID).
		Str("user_id", event.UserID).
		Str("action", string(event.Action)).
		Msg("rating event recorded")
	return nil
}

// History returns the newest events for a store.
func (s *ratingEventService) History(ctx context.Context, storeID string) ([]domain.RatingEvent, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	return s.events.ListByStore(ctx, storeID, historyLimit)
}
