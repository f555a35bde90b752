package telegram

import (
	"StegoGuard/internal/bot"
	_ "StegoGuard/internal/bot/handlers" // registers handlers
	"StegoGuard/internal/core/ports"
	"StegoGuard/internal/shared/config"
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// downloadTimeout bounds a single file fetch from the Bot API.
const downloadTimeout = time.Minute

// Orchestrator wires and runs the inspection bot.
type Orchestrator struct {
	cfg        *config.Config
	inspector  ports.SignatureInspector
	baseLogger *zerolog.Logger
}

// NewOrchestrator creates a new bot orchestrator.
func NewOrchestrator(
	cfg *config.Config,
	inspector ports.SignatureInspector,
	baseLogger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		inspector:  inspector,
		baseLogger: baseLogger,
	}
}

// Start connects to Telegram and serves updates until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) error {
	log := o.baseLogger.With().Str("bot", "inspector").Logger()
	cfg := &o.cfg.Bot

	// 1. Create API
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return err
	}
	api.Debug = o.cfg.AppEnv == "dev"
	log.Info().Str("username", api.Self.UserName).Msg("Bot API connected")

	// 2. Create Client (Adapter)
	client := NewClient(api, &http.Client{Timeout: downloadTimeout}, &log)

	// 3. Create Router
	router := NewRouter(client, &log)

	// 4. Register Handlers
	bot.RegisterAllHandlers(router, o.inspector, client, &log)

	// 5. Set Menu
	if err := client.SetMenuCommands(ctx); err != nil {
		log.Warn().Err(err).Msg("Continuing without menu commands")
	}

	// 6. Create and Start Server
	server := NewBotServer(api, router, cfg, &log)
	return server.Start(ctx)
}
