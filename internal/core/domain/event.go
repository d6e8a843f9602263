package domain

import "time"

// RatingAction tells whether a submission created or replaced a rating.
type RatingAction string

const (
	RatingCreated RatingAction = "created"
	RatingUpdated RatingAction = "updated"
)

// RatingEvent is an append-only audit record of a rating submission.
type RatingEvent struct {
	StoreID    string       `json:"store_id"`
	UserID     string       `json:"user_id"`
	Value      int          `json:"rating"`
	Previous   int          `json:"previous,omitempty"` // 0 when the rating was created
	Action     RatingAction `json:"action"`
	OccurredAt time.Time    `json:"occurred_at"`
}
