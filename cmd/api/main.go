package main

import (
	"context"

	"docvault-backend/internal/bootstrap"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/server"
	"docvault-backend/internal/shared/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger := telemetry.Get()
		logger.Fatal().Err(err).Msg("load config")
	}

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		logger := telemetry.Get()
		logger.Fatal().Err(err).Msg("bootstrap")
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	logger := telemetry.Get()
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting API server")

	if err := app.Router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
