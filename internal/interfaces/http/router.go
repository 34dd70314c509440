package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/application/usecase"
	"github.com/jhoicas/logistic-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	StockUC   *inventory.StockUseCase
	Validator *Validator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validate := deps.Validator
	if validate == nil {
		validate = NewValidator()
	}
	api := app.Group("/api/v1")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, validate)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Patch)
	products.Put("/:id", productHandler.Put)
	products.Delete("/:id", productHandler.Delete)

	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, validate)
	stocks.Get("/", stockHandler.List)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Patch("/:id", stockHandler.Patch)
	stocks.Put("/:id", stockHandler.Put)
	stocks.Delete("/:id", stockHandler.Delete)
}

// ServerConfig opciones de la aplicación fiber.
type ServerConfig struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
	Logger       zerolog.Logger
	// Registry si no es nil recibe las métricas HTTP y se expone en /metrics.
	Registry *prometheus.Registry
	// HealthCheck opcional (p. ej. ping a la BD); si falla /health responde 503.
	HealthCheck func(ctx context.Context) error
}

// NewServer arma la aplicación: middlewares, /health, /metrics y las rutas de la API.
// Las rutas admiten la barra final opcional (StrictRouting desactivado).
func NewServer(cfg ServerConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestID())

	var httpMetrics *metrics.HTTPMetrics
	if cfg.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(cfg.Registry)
	}
	app.Use(RequestObserver(cfg.Logger, httpMetrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.UserContext()); err != nil {
				zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": cfg.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})
	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	Router(app, deps)
	return app
}
