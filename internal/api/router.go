package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/record-admin/internal/api/handler"
	"github.com/99minutos/record-admin/internal/api/middleware"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/core/validation"
	ops "github.com/99minutos/record-admin/internal/infrastructure/http"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Logger   zerolog.Logger
	Store    ports.StoreBackend
	Users    ports.UserService
	Products ports.ProductService
	Seeder   ports.Seeder
	Auth     ports.AuthService
	// JWTSecret guards /v1 when Auth is enabled.
	JWTSecret string
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	e.Validator = handler.NewValidator(validation.New())
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// outside RequestLogger, which renders errors, so status labels are final
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "record_admin",
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(d.Logger))

	// --- Health, metrics, docs (no auth required) ---
	ops.RegisterOps(e, d.Store, gatherer)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/token", authHandler.Token)

	v1 := e.Group("/v1")
	if d.Auth.Enabled() {
		v1.Use(middleware.Auth(d.JWTSecret))
	} else {
		d.Logger.Warn().Msg("authentication disabled, /v1 is open")
	}

	users := handler.NewUserHandler(d.Users)
	v1.GET("/users", users.List)
	v1.POST("/users", users.Create)
	v1.GET("/users/:id", users.Get)
	v1.PUT("/users/:id", users.Replace)
	v1.PATCH("/users/:id", users.Patch)
	v1.DELETE("/users/:id", users.Delete)
	v1.PUT("/users/:id/avatar", users.AttachAvatar)
	v1.DELETE("/users/:id/avatar", users.ClearAvatar)

	products := handler.NewProductHandler(d.Products)
	v1.GET("/products", products.List)
	v1.POST("/products", products.Create)
	v1.GET("/products/:id", products.Get)
	v1.PUT("/products/:id", products.Replace)
	v1.PATCH("/products/:id", products.Patch)
	v1.DELETE("/products/:id", products.Delete)
	v1.PUT("/products/:id/image", products.AttachImage)
	v1.DELETE("/products/:id/image", products.ClearImage)

	seed := handler.NewSeedHandler(d.Seeder)
	v1.POST("/seed", seed.Seed)

	return e
}
