package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"lightbnb/internal/adapters/fixtures"
	"lightbnb/internal/adapters/observability"
	"lightbnb/internal/app"
	"lightbnb/internal/shared"
	"lightbnb/internal/storage/sqlrepo"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, props, err := fixtures.Load(cfg.FixturesDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.FixturesDir).Msg("load fixtures")
	}
	log.Info().
		Str("dir", cfg.FixturesDir).
		Int("users", len(users)).
		Int("properties", len(props)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sqlrepo.Open(ctx, sqlrepo.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DBDSN,
		MaxOpenConns:    cfg.SeedWorkers,
		MaxIdleConns:    cfg.SeedWorkers,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	svc := app.NewListingService(sqlrepo.New(db))
	rep, err := app.NewSeeder(svc, cfg.SeedWorkers).Seed(ctx, users, props)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.
		Int("users", rep.Users).
		Int("users_failed", rep.FailedUsers).
		Int("properties", rep.Properties).
		Int("properties_failed", rep.FailedProps).
		Int("properties_skipped", rep.SkippedProps).
		Msg("seeding completed")
	if err != nil {
		os.Exit(1)
	}
}
