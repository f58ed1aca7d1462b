package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"

	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/storage/db"
	"docvault-backend/internal/shared/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger := telemetry.Get()
		logger.Fatal().Err(err).Msg("load config")
	}
	telemetry.Init(telemetry.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultMigrateOptions())
	if err != nil {
		logger := telemetry.Get()
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		logger := telemetry.Get()
		logger.Fatal().Err(err).Msg("run migrations")
	}
	logger := telemetry.Get()
	logger.Info().Msg("migrations applied")
}
