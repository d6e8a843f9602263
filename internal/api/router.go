package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storerating/rating-api/internal/api/handler"
	"github.com/storerating/rating-api/internal/api/middleware"
	"github.com/storerating/rating-api/internal/core/policy"
	"github.com/storerating/rating-api/internal/core/ports"
)

// Services is everything the HTTP layer depends on.
type Services struct {
	Tokens     ports.TokenService
	Auth       ports.AuthService
	Stores     ports.StoreService
	Ratings    ports.RatingService
	Admin      ports.AdminService
	Events     ports.RatingEventService
	Dashboards ports.DashboardService

	HealthChecks map[string]handler.Check
}

// route binds a handler to the policy operation that guards it.
type route struct {
	method  string
	path    string
	op      policy.Operation
	handler echo.HandlerFunc
}

func routes(svc Services) []route {
	auth := handler.NewAuthHandler(svc.Auth)
	stores := handler.NewStoreHandler(svc.Stores)
	ratings := handler.NewRatingHandler(svc.Ratings)
	admin := handler.NewAdminHandler(svc.Admin, svc.Events)
	dash := handler.NewDashboardHandler(svc.Dashboards)

	return []route{
		{http.MethodPost, "/auth/signup", policy.SignUp, auth.Signup},
		{http.MethodPost, "/auth/login", policy.LogIn, auth.Login},

		{http.MethodGet, "/stores", policy.ListStores, stores.List},
		{http.MethodGet, "/stores/mine", policy.OwnerListStores, stores.Mine},
		{http.MethodPost, "/stores", policy.OwnerCreateStore, stores.Create},

		{http.MethodGet, "/stores/:storeId/ratings", policy.StoreRatings, ratings.List},
		{http.MethodPost, "/stores/:storeId/ratings", policy.UserSubmitRating, ratings.Submit},
		{http.MethodGet, "/stores/:storeId/ratings/mine", policy.UserMyRating, ratings.Mine},

		{http.MethodPost, "/admin/users", policy.AdminAddUser, admin.AddUser},
		{http.MethodPost, "/admin/stores", policy.AdminAddStore, admin.AddStore},
		{http.MethodGet, "/admin/users", policy.AdminListUsers, admin.ListUsers},
		{http.MethodGet, "/admin/stores", policy.AdminListStores, admin.ListStores},
		{http.MethodGet, "/admin/stores/:storeId/rating-events", policy.AdminRatingEvents, admin.RatingEvents},

		{http.MethodGet, "/dashboard/admin", policy.AdminDashboard, dash.Admin},
		{http.MethodGet, "/dashboard/owner", policy.OwnerDashboard, dash.Owner},
		{http.MethodGet, "/dashboard/user", policy.UserDashboard, dash.User},
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
// reg receives the HTTP metrics; nil means the default registry.
func NewRouter(svc Services, log zerolog.Logger, reg prometheus.Registerer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storerating",
		Registerer: reg,
	}))

	// --- API routes, each guarded by its policy operation ---
	authMiddleware := middleware.Auth(svc.Tokens, log)
	g := e.Group("/api")
	for _, r := range routes(svc) {
		mws := make([]echo.MiddlewareFunc, 0, 2)
		if !policy.IsPublic(r.op) {
			mws = append(mws, authMiddleware)
		}
		mws = append(mws, middleware.Authorize(r.op))
		g.Add(r.method, r.path, r.handler, mws...)
	}

	// --- Health probes, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(svc.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
