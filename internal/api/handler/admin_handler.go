package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/core/ports"
)

// AdminHandler serves the administrator endpoints.
type AdminHandler struct {
	admin  ports.AdminService
	events ports.RatingEventService
}

func NewAdminHandler(admin ports.AdminService, events ports.RatingEventService) *AdminHandler {
	return &AdminHandler{admin: admin, events: events}
}

// AddUser handles POST /api/admin/users.
//
// @Summary      Add a user with any role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users [post]
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.admin.AddUser(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// AddStore handles POST /api/admin/stores.
//
// @Summary      Add an unowned store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      storeRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/stores [post]
func (h *AdminHandler) AddStore(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	store, err := h.admin.AddStore(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, store)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name     query     string  false  "Name contains"
// @Param        email    query     string  false  "Email contains"
// @Param        address  query     string  false  "Address contains"
// @Param        role     query     string  false  "Role contains"
// @Success      200      {array}   domain.User
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context(), ports.UserFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    c.QueryParam("role"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListStores handles GET /api/admin/stores.
//
// @Summary      List stores
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name     query     string  false  "Name contains"
// @Param        email    query     string  false  "Email contains"
// @Param        address  query     string  false  "Address contains"
// @Success      200      {array}   ports.StoreView
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	views, err := h.admin.ListStores(c.Request().Context(), ports.StoreFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// RatingEvents handles GET /api/admin/stores/:storeId/rating-events.
//
// @Summary      Recent rating activity for a store
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        storeId  path      string  true  "Store ID"
// @Success      200      {array}   domain.RatingEvent
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /admin/stores/{storeId}/rating-events [get]
func (h *AdminHandler) RatingEvents(c echo.Context) error {
	events, err := h.events.History(c.Request().Context(), c.Param("storeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
