// seed carga productos y stocks de ejemplo desde un archivo JSON.
//
// Uso: go run ./cmd/seed [ruta/fixture.json]
// Por defecto busca seed.json en el directorio actual. Respeta DB_DRIVER y el resto de la configuración.
package main

import (
	"context"
	"os"

	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/application/usecase"
	"github.com/jhoicas/logistic-api/internal/infrastructure/postgres"
	"github.com/jhoicas/logistic-api/pkg/config"
	"github.com/jhoicas/logistic-api/pkg/logger"
	"github.com/jhoicas/logistic-api/pkg/metrics"
)

func main() {
	path := "seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("seed requiere DB_DRIVER=postgres")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir fixture")
	}
	defer f.Close()
	fx, err := readFixture(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer fixture")
	}

	ctx := log.WithContext(context.Background())
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	stockUC := inventory.NewStockUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewStockRepository(pool),
		postgres.NewStockPositionRepository(pool),
		metrics.NewStockWriteMetrics(nil),
	)

	res, err := load(ctx, fx, productUC, stockUC)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("products", res.Products).Int("stocks", res.Stocks).Msg("seed completado")
}
