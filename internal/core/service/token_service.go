package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/storerating/rating-api/internal/core/domain"
)

const DefaultTokenTTL = 24 * time.Hour

var errMissingSigningKey = errors.New("token service: signing key is required")

type tokenClaims struct {
	Role domain.Role `json:"role"`
	Name string      `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenService returns an error when key is empty; callers treat that as
// fatal at startup.
func NewTokenService(key string, ttl time.Duration) (*TokenService, error) {
	if key == "" {
		return nil, errMissingSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token carrying the user's id, role and display name.
func (s *TokenService) Issue(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := tokenClaims{
		Role: user.Role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.Claims{
		TokenID:   claims.ID,
		UserID:    claims.Subject,
		Role:      claims.Role,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
