package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storerating/rating-api/internal/core/domain"
)

// Guard bounds every storage call with a timeout and runs it inside a
// circuit breaker. Infrastructure failures come back as
// domain.ErrServiceUnavailable.
type Guard struct {
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

// NewGuard returns a Guard for one collection.
func NewGuard(name string, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Guard{
		timeout: timeout,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    30 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				return !isInfraFailure(err)
			},
		}),
	}
}

// Do runs fn with a derived, bounded context.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := g.cb.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return nil, fn(callCtx)
	})
	return unavailable(err)
}

func (g *Guard) State() gobreaker.State {
	return g.cb.State()
}

type guarded interface {
	Guard() *Guard
}

// BreakerCheck returns a readiness check that fails while any of the
// repositories has an open breaker.
func BreakerCheck(repos ...guarded) func(context.Context) error {
	return func(context.Context) error {
		for _, r := range repos {
			g := r.Guard()
			if g.State() == gobreaker.StateOpen {
				return fmt.Errorf("%w: %s circuit open", domain.ErrServiceUnavailable, g.cb.Name())
			}
		}
		return nil
	}
}

func isInfraFailure(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err)
}

func unavailable(err error) error {
	if err == nil {
		return nil
	}
	if isInfraFailure(err) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}
	return err
}
