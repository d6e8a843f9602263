package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/api/metrics"
	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

// RatingHandler exposes the rating aggregator.
type RatingHandler struct {
	ratings ports.RatingService
}

func NewRatingHandler(ratings ports.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Submit handles POST /api/stores/:storeId/ratings.
//
// @Summary      Rate a store
// @Description  Creates the caller's rating or replaces its value. Returns 201 when created and 200 when updated.
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string         true  "Store ID"
// @Param        body     body      ratingRequest  true  "Rating between 1 and 5"
// @Success      200      {object}  ratingResponse
// @Success      201      {object}  ratingResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /stores/{storeId}/ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		metrics.RatingsRejectedTotal.WithLabelValues("invalid_value").Inc()
		return domain.ErrInvalidRating
	}

	res, err := h.ratings.Submit(c.Request().Context(), claims.UserID, c.Param("storeId"), req.Rating)
	if err != nil {
		metrics.RatingsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(string(res.Action)).Inc()
	status := http.StatusOK
	if res.Action == domain.RatingCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, ratingResponse{Rating: res.Rating, Result: string(res.Action)})
}

// List handles GET /api/stores/:storeId/ratings.
//
// @Summary      List a store's ratings
// @Description  Ratings with rater names, most recently updated first.
// @Tags         ratings
// @Produce      json
// @Param        storeId  path      string  true  "Store ID"
// @Success      200      {array}   ports.RaterView
// @Failure      404      {object}  errorResponse
// @Router       /stores/{storeId}/ratings [get]
func (h *RatingHandler) List(c echo.Context) error {
	raters, err := h.ratings.ListForStore(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, raters)
}

// Mine handles GET /api/stores/:storeId/ratings/mine.
//
// @Summary      Get the caller's rating for a store
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string  true  "Store ID"
// @Success      200      {object}  domain.Rating
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /stores/{storeId}/ratings/mine [get]
func (h *RatingHandler) Mine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	rating, err := h.ratings.MyRating(c.Request().Context(), claims.UserID, c.Param("storeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rating)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid_value"
	case errors.Is(err, domain.ErrNotFound):
		return "store_not_found"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
