package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/api/metrics"
	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/policy"
)

// Authorize enforces the role policy for op. It must run after Auth on
// protected routes; public operations pass without claims.
func Authorize(op policy.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := policy.Authorize(op, ClaimsFrom(c))
			switch {
			case err == nil:
				return next(c)
			case errors.Is(err, domain.ErrUnauthenticated):
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			default:
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
		}
	}
}
