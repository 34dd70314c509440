package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/logistic-api/docs"
	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/application/usecase"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
	"github.com/jhoicas/logistic-api/internal/infrastructure/memory"
	"github.com/jhoicas/logistic-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/logistic-api/internal/interfaces/http"
	"github.com/jhoicas/logistic-api/pkg/config"
	"github.com/jhoicas/logistic-api/pkg/logger"
	"github.com/jhoicas/logistic-api/pkg/metrics"
	"github.com/jhoicas/logistic-api/pkg/migrate"
)

const swaggerFile = "./docs/swagger.json"

// @title        Logistic API
// @version      1.0
// @description  Productos y stocks (almacenes) con sus posiciones.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		productRepo  repository.ProductRepository
		stockRepo    repository.StockRepository
		positionRepo repository.StockPositionRepository
		txRunner     inventory.TxRunner
		healthCheck  func(context.Context) error
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		productRepo = memory.NewProductRepository(store)
		stockRepo = memory.NewStockRepository(store)
		positionRepo = memory.NewStockPositionRepository(store)
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.Migrate.AutoRun {
			log.Info().Msg("aplicando migraciones (MIGRATE_AUTO_RUN)")
			if err := migrate.Run(ctx, migrate.OpenDB(pool), "up"); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}

		if ctype, ok, err := postgres.CaseFolding(ctx, pool); err != nil {
			log.Warn().Err(err).Msg("no se pudo verificar LC_CTYPE")
		} else if !ok {
			log.Warn().Str("lc_ctype", ctype).Msg("la búsqueda solo ignora mayúsculas en ASCII; usar una base con LC_CTYPE UTF-8")
		}

		productRepo = postgres.NewProductRepository(pool)
		stockRepo = postgres.NewStockRepository(pool)
		positionRepo = postgres.NewStockPositionRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		healthCheck = pool.Ping
	}

	productUC := usecase.NewProductUseCase(productRepo)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo, positionRepo, metrics.NewStockWriteMetrics(reg))

	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
		Logger:       log.Zerolog(),
		Registry:     reg,
		HealthCheck:  healthCheck,
	}, httpRouter.RouterDeps{
		ProductUC: productUC,
		StockUC:   stockUC,
		Validator: httpRouter.NewValidator(),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Logistic API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
