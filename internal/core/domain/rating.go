package domain

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a single user's score for a store. There is at most one Rating
// per (UserID, StoreID); resubmission changes Value in place.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRating reports whether v is an accepted rating value.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// Average returns the mean rating rounded to one decimal place, or nil when
// there are no ratings. Zero is a real (invalid) score, never "unrated".
func Average(ratings []Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}
