package ports

import (
	"context"

	"github.com/storerating/rating-api/internal/core/domain"
)

// RatingEventService records and reads the rating activity log.
type RatingEventService interface {
	Record(ctx context.Context, event domain.RatingEvent) error
	History(ctx context.Context, storeID string) ([]domain.RatingEvent, error)
}
