package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/logistic-api/internal/infrastructure/postgres"
	"github.com/jhoicas/logistic-api/pkg/config"
	"github.com/jhoicas/logistic-api/pkg/logger"
	"github.com/jhoicas/logistic-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|redo|reset|version")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("las migraciones requieren DB_DRIVER=postgres")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	db := migrate.OpenDB(pool)
	defer db.Close()

	log.Info().Str("cmd", *cmd).Msg("migrate ready")

	switch *cmd {
	case "up", "down", "status", "redo", "reset":
		err = migrate.Run(ctx, db, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		err = migrate.MigrateToVersion(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migrate")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migrate done")
}
