package main

import (
	"context"
	"database/sql"
	"flight-route-service/internal/adapters/dataset"
	"flight-route-service/internal/adapters/repositories"
	"flight-route-service/internal/config"
	"flight-route-service/internal/platform/db"
	"flight-route-service/internal/platform/obs"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
)

// dbtool initializes the schema, seeds DATASET_PATH into the configured
// database and checks that the stored network reads back unchanged.
func main() {
	config.LoadDotEnv()

	source := strings.ToLower(config.Get("DATASET_SOURCE", config.SourcePostgres))
	seedPath := config.Get("DATASET_PATH", "data/flights.json")
	defaultMCT, err := config.GetInt("DEFAULT_MIN_CONNECTION", 60)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(config.Get("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var (
		driver, dsn string
		dialect     db.Dialect
	)
	switch source {
	case config.SourcePostgres:
		dsn = os.Getenv("DATABASE_URL")
		if strings.TrimSpace(dsn) == "" {
			logger.Fatal("DATABASE_URL is required")
		}
		driver, dialect = db.DriverPostgres, db.Postgres
	case config.SourceSQLite:
		dsn = config.Get("DB_PATH", "data/app.db")
		driver, dialect = db.DriverSQLite, db.SQLite
	default:
		logger.Fatal("DATASET_SOURCE must be sqlite or postgres", zap.String("source", source))
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, dialect, seedPath, defaultMCT, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, seedPath string, defaultMCT int, logger *zap.Logger) error {
	logger.Info("initializing database schema", zap.String("dialect", dialect.String()))
	if err := repositories.InitSchema(conn, dialect); err != nil {
		return err
	}
	logger.Info("schema ready")

	logger.Info("seeding database", zap.String("path", seedPath))
	warnings, err := repositories.SeedFromFile(ctx, conn, dialect, seedPath, defaultMCT)
	for _, w := range warnings {
		logger.Warn("dataset record skipped", zap.Error(w))
	}
	if err != nil {
		return err
	}
	logger.Info("seeding complete", zap.Int("skipped", len(warnings)))

	doc, err := dataset.ReadFile(seedPath)
	if err != nil {
		return err
	}
	want, _, err := dataset.Build(doc, defaultMCT)
	if err != nil {
		return err
	}

	repo := repositories.NewSQLNetworkRepository(conn, dialect, defaultMCT)
	changes, err := repositories.VerifyNetwork(ctx, repo, want)
	if err != nil {
		return err
	}
	for _, c := range changes {
		logger.Error("stored network differs",
			zap.String("type", c.Type),
			zap.Strings("path", c.Path),
			zap.Any("want", c.From),
			zap.Any("got", c.To),
		)
	}
	if len(changes) > 0 {
		return fmt.Errorf("verify: %d difference(s) after seeding", len(changes))
	}
	logger.Info("verified stored network",
		zap.Int("airports", want.NumAirports()),
		zap.Int("flights", want.NumFlights()),
	)
	return nil
}
