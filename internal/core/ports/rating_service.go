package ports

import (
	"context"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

// SubmitResult is returned by RatingService.Submit.
type SubmitResult struct {
	Rating *domain.Rating
	Action domain.RatingAction
}

// RaterView is a rating joined with the rater's display name.
type RaterView struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingService is the rating aggregator.
type RatingService interface {
	Submit(ctx context.Context, userID, storeID string, value int) (*SubmitResult, error)
	ListForStore(ctx context.Context, storeID string) ([]RaterView, error)
	MyRating(ctx context.Context, userID, storeID string) (*domain.Rating, error)
}

// RatingEventPublisher hands rating events to the asynchronous activity log.
type RatingEventPublisher interface {
	Publish(event domain.RatingEvent)
}
