package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Admin handles GET /api/dashboard/admin.
//
// @Summary      Platform totals
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminDashboard
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/admin [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	out, err := h.dashboards.Admin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Owner handles GET /api/dashboard/owner.
//
// @Summary      Feedback on the caller's stores
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.OwnerDashboard
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/owner [get]
func (h *DashboardHandler) Owner(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	out, err := h.dashboards.Owner(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// User handles GET /api/dashboard/user.
//
// @Summary      Stores with the caller's ratings
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserDashboard
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/user [get]
func (h *DashboardHandler) User(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	out, err := h.dashboards.User(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
