package server

import (
	"net/http"
	"time"

	"expense-services/internal/config"
	"expense-services/internal/handlers"
	"expense-services/internal/middleware"
	"expense-services/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceAuth      = "auth-service"
	serviceData      = "data-service"
	serviceAnalytics = "analytics-service"
	serviceGateway   = "gateway"
)

// newEcho assembles the middleware chain shared by every service and mounts
// /health and /metrics.
func newEcho(cfg *config.Config, deps *Dependencies, service string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
		MaxAge:        int((12 * time.Hour).Seconds()),
	}))
	e.Use(echomw.BodyLimit("1M"))

	health := handlers.NewHealthCheckHandler(service, deps.DB)
	e.GET("/health", health.HealthCheck)

	gatherers := prometheus.Gatherers{deps.Registry, prometheus.DefaultGatherer}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})))

	return e
}

// NewAuthServer serves registration, login and token verification.
func NewAuthServer(cfg *config.Config, deps *Dependencies) *echo.Echo {
	deps.defaults()
	e := newEcho(cfg, deps, serviceAuth)

	metrics := services.NewPrometheusMetrics(deps.Registry)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(
		deps.Users,
		services.NewPasswordService(cfg.Security.BCryptCost),
		tokenService,
		metrics,
		deps.Logger,
	)
	authHandler := handlers.NewAuthHandler(authService)
	requireToken := middleware.RequireBearer(services.NewTokenAuthenticator(tokenService))

	e.GET("/", authHandler.Root)

	// The gateway rewrites /auth/* to /api/*; direct callers use either form.
	for _, prefix := range []string{"", "/api"} {
		g := e.Group(prefix)
		g.POST("/register", authHandler.Register)
		g.POST("/login", authHandler.Login)
	}

	api := e.Group("/api")
	api.GET("/verify", authHandler.Verify)
	api.GET("/profile", authHandler.Profile, requireToken)

	return e
}

// NewDataServer serves expense and category CRUD behind delegated
// authorization.
func NewDataServer(cfg *config.Config, deps *Dependencies) *echo.Echo {
	deps.defaults()
	e := newEcho(cfg, deps, serviceData)

	metrics := services.NewPrometheusMetrics(deps.Registry)
	requireBearer := middleware.RequireBearer(authenticator(cfg, deps, metrics))

	expenseHandler := handlers.NewExpenseHandler(services.NewExpenseService(deps.Expenses, metrics, deps.Logger))
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(deps.Categories, metrics, deps.Logger))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Data service is running")
	})

	expenses := e.Group("/expenses", requireBearer)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	categories := e.Group("/categories", requireBearer)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	return e
}

// NewAnalyticsServer serves the /stats reports and /chart descriptors.
func NewAnalyticsServer(cfg *config.Config, deps *Dependencies) *echo.Echo {
	deps.defaults()
	e := newEcho(cfg, deps, serviceAnalytics)

	metrics := services.NewPrometheusMetrics(deps.Registry)
	requireBearer := middleware.RequireBearer(authenticator(cfg, deps, metrics))

	statsHandler := handlers.NewStatsHandler(services.NewAnalyticsService(deps.Stats, metrics, deps.Logger))

	e.GET("/", statsHandler.Root)

	stats := e.Group("/stats", requireBearer)
	stats.GET("/summary", statsHandler.Summary)
	stats.GET("/by-category", statsHandler.ByCategory)
	stats.GET("/monthly", statsHandler.Monthly)
	stats.GET("/top-expenses", statsHandler.TopExpenses)

	charts := e.Group("/chart", requireBearer)
	charts.GET("/bar-category", statsHandler.BarCategoryChart)
	charts.GET("/line-monthly", statsHandler.LineMonthlyChart)
	charts.GET("/pie-category", statsHandler.PieCategoryChart)

	return e
}

func authenticator(cfg *config.Config, deps *Dependencies, metrics services.MetricsRecorderInterface) services.Authenticator {
	if deps.Authenticator != nil {
		return deps.Authenticator
	}
	return services.NewRemoteAuthenticator(&cfg.Auth, metrics, deps.Logger)
}
