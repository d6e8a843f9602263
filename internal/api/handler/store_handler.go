package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/core/ports"
)

// StoreHandler serves the store catalogue.
type StoreHandler struct {
	stores ports.StoreService
}

func NewStoreHandler(stores ports.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// List handles GET /api/stores.
//
// @Summary      List stores
// @Description  Public listing with owner and average rating. Filters are case-insensitive substrings.
// @Tags         stores
// @Produce      json
// @Param        name     query     string  false  "Name contains"
// @Param        address  query     string  false  "Address contains"
// @Success      200      {array}   ports.StoreView
// @Failure      503      {object}  errorResponse
// @Router       /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	views, err := h.stores.ListPublic(c.Request().Context(), ports.StoreFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Mine handles GET /api/stores/mine.
//
// @Summary      List the caller's stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Store
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /stores/mine [get]
func (h *StoreHandler) Mine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	stores, err := h.stores.ListByOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// Create handles POST /api/stores. The store is owned by the caller.
//
// @Summary      Create a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      storeRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /stores [post]
func (h *StoreHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	store, err := h.stores.Create(c.Request().Context(), req.toDomain(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, store)
}
