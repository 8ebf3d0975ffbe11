package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "lightbnb/internal/adapters/http_server"
	"lightbnb/internal/adapters/observability"
	"lightbnb/internal/app"
	"lightbnb/internal/query"
	"lightbnb/internal/shared"
	"lightbnb/internal/storage/sqlrepo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlrepo.Open(ctx, dbOptions(cfg))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")

	mode := query.Compat
	if cfg.StrictFilters {
		mode = query.Strict
	}
	repo := sqlrepo.New(db, sqlrepo.WithFilterMode(mode))
	svc := app.NewListingService(repo)

	// http
	reg := observability.InitRegistry()
	srv := server.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Str("filters", mode.String()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(sctx)
		}
		return httpSrv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func dbOptions(cfg shared.Config) sqlrepo.Options {
	o := sqlrepo.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DBDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}
	if observability.IsDev(cfg.AppEnv) {
		l := log.Logger.With().Str("component", "pgx").Logger()
		o.SQLLogger = &l
	}
	return o
}
