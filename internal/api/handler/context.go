package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/api/middleware"
	"github.com/storerating/rating-api/internal/core/domain"
)

// currentClaims returns the verified claims set by the Auth middleware.
// Their absence on a protected route means the route was wired without Auth.
func currentClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}
	return claims, nil
}
