package telegram

import (
	"StegoGuard/internal/shared/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const jobQueueSize = 100

// BotServer is responsible for running the bot (polling or webhook)
type BotServer struct {
	api    *tgbotapi.BotAPI
	router *Router
	cfg    *config.BotConfig
	log    zerolog.Logger
}

// NewBotServer creates a new server instance
func NewBotServer(
	api *tgbotapi.BotAPI,
	router *Router,
	cfg *config.BotConfig,
	baseLogger *zerolog.Logger,
) *BotServer {
	return &BotServer{
		api:    api,
		router: router,
		cfg:    cfg,
		log:    baseLogger.With().Str("component", "bot_server").Logger(),
	}
}

// Start begins the bot server based on the config mode. It blocks until
// ctx is cancelled.
func (s *BotServer) Start(ctx context.Context) error {
	s.log.Info().Str("mode", s.cfg.Mode).Msg("Starting bot server...")

	switch s.cfg.Mode {
	case "polling":
		return s.startPolling(ctx)
	case "webhook":
		return s.startWebhook(ctx)
	default:
		return fmt.Errorf("unknown bot mode: %s", s.cfg.Mode)
	}
}

// startPolling starts the bot in long polling mode with a worker pool
func (s *BotServer) startPolling(ctx context.Context) error {
	s.log.Info().Int("workers", s.cfg.Workers).Msg("Starting bot in POLLING mode")

	// 1. Clear any existing webhook
	if _, err := s.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete webhook (continuing anyway)")
	} else {
		s.log.Info().Msg("Webhook deleted successfully")
	}

	// 2. Subscribe to updates
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.api.GetUpdatesChan(u)

	// 3. Dispatch to the pool
	jobs := make(chan tgbotapi.Update, jobQueueSize)
	wg := s.startWorkers(ctx, jobs, "polling")

	s.log.Info().Msg("Polling update listener started")
	s.dispatch(ctx, updates, jobs)

	s.api.StopReceivingUpdates()
	wg.Wait()
	s.log.Info().Msg("Polling stopped gracefully")
	return nil
}

// startWebhook starts the bot in webhook mode (for production)
func (s *BotServer) startWebhook(ctx context.Context) error {
	s.log.Info().
		Int("port", s.cfg.Webhook.ListenPort).
		Int("workers", s.cfg.Workers).
		Msg("Starting bot in WEBHOOK mode")

	// 1. Set the webhook
	path := "/webhook/" + s.api.Token
	webhookURL := s.cfg.Webhook.URL + path

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create webhook config")
		return err
	}
	if _, err := s.api.Request(wh); err != nil {
		s.log.Error().Err(err).Msg("Failed to set webhook")
		return err
	}

	// 2. Check what Telegram thinks of it
	info, err := s.api.GetWebhookInfo()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get webhook info")
		return err
	}
	if info.LastErrorDate != 0 {
		s.log.Error().
			Str("error_message", info.LastErrorMessage).
			Msg("Telegram webhook has a last error")
	} else {
		s.log.Info().Msg("Webhook set successfully, no last error")
	}

	// 3. Serve the webhook. TLS is terminated by the reverse proxy.
	mux := http.NewServeMux()
	updates := make(chan tgbotapi.Update, jobQueueSize)
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		update, err := s.api.HandleUpdate(r)
		if err != nil {
			s.log.Warn().Err(err).Msg("Rejected webhook request")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		select {
		case updates <- *update:
		case <-r.Context().Done():
		}
	})

	listenAddr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Webhook.ListenPort)
	s.log.Info().Str("addr", listenAddr).Msg("Starting HTTP server for webhook")

	httpServer := &http.Server{Addr: listenAddr, Handler: mux}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("Webhook HTTP server failed")
		}
	}()

	// 4. Dispatch to the pool
	jobs := make(chan tgbotapi.Update, jobQueueSize)
	wg := s.startWorkers(ctx, jobs, "webhook")

	s.log.Info().Msg("Webhook update listener started")
	s.dispatch(ctx, updates, jobs)

	s.log.Info().Msg("Shutting down HTTP server...")
	if err := httpServer.Shutdown(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	wg.Wait()
	s.log.Info().Msg("Webhook server stopped gracefully")
	return nil
}

// dispatch forwards updates to jobs until ctx is done, then closes jobs.
func (s *BotServer) dispatch(ctx context.Context, updates <-chan tgbotapi.Update, jobs chan<- tgbotapi.Update) {
	defer close(jobs)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			select {
			case jobs <- update:
			case <-ctx.Done():
				return
			}
		}
	}
}

// startWorkers launches cfg.Workers goroutines draining jobs.
func (s *BotServer) startWorkers(ctx context.Context, jobs <-chan tgbotapi.Update, kind string) *sync.WaitGroup {
	var wg sync.WaitGroup
	for w := 1; w <= s.cfg.Workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := s.router.log.With().Int("worker_id", id).Str("kind", kind).Logger()
			log.Info().Msg("Starting worker")
			for job := range jobs {
				// Handlers finish their update even during shutdown.
				s.router.HandleUpdate(context.WithoutCancel(ctx), &job)
			}
			log.Info().Msg("Stopping worker (channel closed)")
		}(w)
	}
	return &wg
}
