package main

import (
	"StegoGuard/internal/adapters/telegram"
	"StegoGuard/internal/app"
	"StegoGuard/internal/shared/config"
	"StegoGuard/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode, cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Bool("shared_key", cfg.Stego.Secret != "").
		Msg("Configuration loaded")

	if cfg.Stego.Secret == "" {
		baseLogger.Warn().Msg("STEGO_SECRET not set, signatures will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire services
	a, err := app.New(ctx, cfg, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer a.Close()

	// 4. Run the inspection bot
	if cfg.Bot.Token == "" {
		baseLogger.Info().Msg("BOT_TOKEN not set, nothing to serve")
		return
	}

	orchestrator := telegram.NewOrchestrator(cfg, a.Stego, &baseLogger)
	if err := orchestrator.Start(ctx); err != nil {
		baseLogger.Error().Err(err).Msg("Bot stopped with error")
		return
	}
	baseLogger.Info().Msg("Shutdown complete")
}
