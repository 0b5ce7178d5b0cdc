package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/dawa-marketplace/ecommerce-api/docs"
	"github.com/dawa-marketplace/ecommerce-api/internal/api/handler"
	"github.com/dawa-marketplace/ecommerce-api/internal/api/middleware"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

// Deps holds everything the router needs. Services are built by the caller.
type Deps struct {
	Auth       ports.AuthService
	Tokens     ports.TokenService
	Products   ports.ProductService
	Categories ports.CategoryService

	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.Pinger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// process-wide default registry.
	Registry *prometheus.Registry

	AllowedOrigins []string
	ExposeErrors   bool
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.ExposeErrors)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Metrics wrap the logger so they read the status committed by the error handler.
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	authGate := middleware.Auth(d.Tokens, d.Log)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Service surfaces (no auth required) ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "E-commerce API running"})
	})
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authGate)

	// --- Catalog routes: public reads, admin writes ---
	productHandler := handler.NewProductHandler(d.Products)
	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authGate, adminOnly)
	products.PUT("/:id", productHandler.Update, authGate, adminOnly)
	products.DELETE("/:id", productHandler.Delete, authGate, adminOnly)

	categoryHandler := handler.NewCategoryHandler(d.Categories)
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, authGate, adminOnly)
	categories.PUT("/:id", categoryHandler.Update, authGate, adminOnly)
	categories.DELETE("/:id", categoryHandler.Delete, authGate, adminOnly)

	return e
}
