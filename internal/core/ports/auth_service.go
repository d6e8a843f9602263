package ports

import (
	"context"
	"time"

	"github.com/storerating/rating-api/internal/core/domain"
)

// TokenService issues and verifies identity tokens.
type TokenService interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	// Verify returns domain.ErrTokenExpired or domain.ErrTokenMalformed on failure.
	Verify(token string) (*domain.Claims, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService registers and authenticates users.
type AuthService interface {
	Register(ctx context.Context, in domain.NewUser) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
