package main

import (
	"context"
	"database/sql"
	"errors"
	"flight-route-service/internal/adapters/cache"
	"flight-route-service/internal/adapters/dataset"
	"flight-route-service/internal/adapters/repositories"
	"flight-route-service/internal/api"
	"flight-route-service/internal/config"
	"flight-route-service/internal/pathfinder"
	"flight-route-service/internal/platform/db"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"flight-route-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tevino/abool"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (dataset file or SQL, cache backend) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	sqlDB, dialect, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB != nil {
		defer sqlDB.Close()
	}

	repo, err := networkRepository(ctx, cfg, sqlDB, dialect, logger)
	if err != nil {
		return err
	}
	network, err := repo.LoadNetwork(ctx)
	if err != nil {
		return err
	}

	itineraries, err := itineraryCache(ctx, cfg, sqlDB, dialect, logger)
	if err != nil {
		return err
	}

	engine := pathfinder.NewEngine(network,
		pathfinder.WithMaxExpansions(cfg.MaxExpansions),
		pathfinder.WithLogger(logger),
	)
	planner := services.NewPlanner(engine, itineraries, logger)

	ready := abool.New()
	router := api.NewRouter(api.Deps{
		Planner:         planner,
		Ready:           ready,
		Log:             logger,
		RoutesPerSecond: cfg.RoutesPerSecond,
		RoutesBurst:     cfg.RoutesBurst,
	})

	// Searches are in-memory; the write timeout only has to cover cache round trips.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("source", cfg.DatasetSource),
			zap.String("cache", cfg.CacheBackend),
		)
		errc <- srv.ListenAndServe()
	}()
	ready.Set()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	// Fail readiness first so load balancers stop routing before connections drain.
	ready.UnSet()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openDatabase returns a nil DB for the file source.
func openDatabase(cfg config.Config) (*sql.DB, db.Dialect, error) {
	switch cfg.DatasetSource {
	case config.SourceSQLite:
		conn, err := db.Open(db.DriverSQLite, cfg.DBPath)
		if err != nil {
			return nil, db.SQLite, err
		}
		return conn, db.SQLite, nil
	case config.SourcePostgres:
		conn, err := db.Open(db.DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, db.Postgres, err
		}
		return conn, db.Postgres, nil
	default:
		return nil, db.SQLite, nil
	}
}

func networkRepository(ctx context.Context, cfg config.Config, sqlDB *sql.DB, dialect db.Dialect, logger *zap.Logger) (ports.NetworkRepository, error) {
	if sqlDB == nil {
		return dataset.NewFileRepository(cfg.DatasetPath, cfg.DefaultMinConnection, logger), nil
	}

	if err := repositories.InitSchema(sqlDB, dialect); err != nil {
		return nil, err
	}

	// Seed an empty local database from the dataset file so sqlite runs work out of the box.
	if cfg.DatasetSource == config.SourceSQLite {
		if err := seedIfEmpty(ctx, cfg, sqlDB, dialect, logger); err != nil {
			return nil, err
		}
	}

	return repositories.NewSQLNetworkRepository(sqlDB, dialect, cfg.DefaultMinConnection), nil
}

func seedIfEmpty(ctx context.Context, cfg config.Config, sqlDB *sql.DB, dialect db.Dialect, logger *zap.Logger) error {
	var count int
	if err := sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM airports").Scan(&count); err != nil {
		return fmt.Errorf("seed if empty: count airports: %w", err)
	}
	if count > 0 {
		return nil
	}

	warnings, err := repositories.SeedFromFile(ctx, sqlDB, dialect, cfg.DatasetPath, cfg.DefaultMinConnection)
	for _, w := range warnings {
		logger.Warn("dataset record skipped", zap.String("path", cfg.DatasetPath), zap.Error(w))
	}
	if err != nil {
		return err
	}
	logger.Info("database seeded", zap.String("path", cfg.DatasetPath))
	return nil
}

func itineraryCache(ctx context.Context, cfg config.Config, sqlDB *sql.DB, dialect db.Dialect, logger *zap.Logger) (ports.ItineraryCache, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisItineraryCache(client, cfg.CacheTTL, logger), nil
	case config.CacheSQL:
		c := cache.NewSQLItineraryCache(sqlDB, dialect, cfg.CacheTTL, logger)
		if n, err := c.Purge(ctx); err != nil {
			logger.Warn("purge expired itineraries failed", zap.Error(err))
		} else if n > 0 {
			logger.Info("purged expired itineraries", zap.Int64("rows", n))
		}
		return c, nil
	case config.CacheNone:
		return nil, nil
	default:
		return cache.NewLRUItineraryCache(cfg.CacheSize, cfg.CacheTTL), nil
	}
}
