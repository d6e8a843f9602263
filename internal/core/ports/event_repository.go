package ports

import (
	"context"

	"github.com/storerating/rating-api/internal/core/domain"
)

// RatingEventRepository stores the rating activity log.
type RatingEventRepository interface {
	Insert(ctx context.Context, event *domain.RatingEvent) error
	// ListByStore returns up to limit events for a store, newest first.
	ListByStore(ctx context.Context, storeID string, limit int64) ([]domain.RatingEvent, error)
}
