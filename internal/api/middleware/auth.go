package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storerating/rating-api/internal/api/metrics"
	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
	NameKey   = "name"
)

// Auth verifies the bearer token and injects its claims into the context.
// Every failure is answered with the same 401 so callers cannot tell a
// tampered token from an expired one.
func Auth(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return deny("missing_token", nil, log)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired_token"
				}
				return deny(reason, err, log)
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)
			c.Set(RoleKey, string(claims.Role))
			c.Set(NameKey, claims.Name)

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims attached by Auth, or nil.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(ClaimsKey).(*domain.Claims)
	return claims
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func deny(reason string, err error, log zerolog.Logger) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	log.Debug().Err(err).Str("reason", reason).Msg("authentication rejected")
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
}
