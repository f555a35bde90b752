package telegram

import (
	"StegoGuard/internal/core/ports"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Router is the "Bot Facade." It holds all "plugins"
// and routes incoming updates to the correct handler.
type Router struct {
	log             zerolog.Logger
	botClient       ports.BotClientPort
	commandHandlers map[string]ports.CommandHandler
	fileHandler     ports.FileHandler
}

// NewRouter creates a new bot facade/router.
func NewRouter(botClient ports.BotClientPort, baseLogger *zerolog.Logger) *Router {
	return &Router{
		log:             baseLogger.With().Str("component", "tg_router").Logger(),
		botClient:       botClient,
		commandHandlers: make(map[string]ports.CommandHandler),
	}
}

// RegisterCommandHandler adds a "plugin" to the router.
func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	cmd := handler.Command()
	r.commandHandlers[cmd] = handler
	r.log.Info().Str("command", cmd).Msg("Registered new command handler")
}

// SetFileHandler registers the single handler for photos and documents.
func (r *Router) SetFileHandler(handler ports.FileHandler) {
	r.fileHandler = handler
}

// HandleUpdate is the main entry point for a new update from Telegram.
func (r *Router) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	// 1. Convert to our generic BotUpdate
	botUpdate, isSupported := r.parseUpdate(update)
	if !isSupported {
		r.log.Debug().Int("update_id", update.UpdateID).Msg("Received unsupported update type")
		return
	}

	// 2. Add logger context
	ctxLogger := r.log.With().
		Int64("user_id", botUpdate.UserID).
		Int64("chat_id", botUpdate.ChatID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	// 3. Files first, a caption may look like a command
	if botUpdate.File != nil {
		if r.fileHandler == nil {
			ctxLogger.Warn().Msg("Received file but no file handler is registered")
			return
		}
		ctxLogger.Info().Str("file_id", botUpdate.File.FileID).Msg("Routing to file handler")
		if err := r.fileHandler.Handle(ctx, botUpdate); err != nil {
			ctxLogger.Error().Err(err).Msg("File handler failed")
		}
		return
	}

	// 4. Then commands
	if botUpdate.Command != "" {
		if handler, ok := r.commandHandlers[botUpdate.Command]; ok {
			ctxLogger.Info().Str("handler", botUpdate.Command).Msg("Routing to command handler")
			if err := handler.Handle(ctx, botUpdate); err != nil {
				ctxLogger.Error().Err(err).Msg("Command handler failed")
			}
			return
		}
	}

	// 5. Anything else gets a hint
	ctxLogger.Info().Str("text", botUpdate.Text).Msg("Received unhandled message")
	if _, err := r.botClient.SendMessage(ctx, ports.SendMessageParams{
		ChatID: botUpdate.ChatID,
		Text:   "Send me an image as a file and I will check it for a signature. Type /help for details.",
	}); err != nil {
		ctxLogger.Error().Err(err).Msg("Failed to send hint")
	}
}

// parseUpdate converts a tgbotapi.Update into our internal, simplified struct.
func (r *Router) parseUpdate(update *tgbotapi.Update) (*ports.BotUpdate, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil, false
	}

	botUpdate := &ports.BotUpdate{
		MessageID: msg.MessageID,
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		Text:      msg.Text,
		Command:   msg.Command(),
	}

	// Documents keep the original bytes; photos are recompressed by
	// Telegram, but we still check the largest size.
	switch {
	case msg.Document != nil:
		botUpdate.File = &ports.FileInfo{
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
			FileSize: msg.Document.FileSize,
		}
	case len(msg.Photo) > 0:
		best := msg.Photo[len(msg.Photo)-1]
		botUpdate.File = &ports.FileInfo{
			FileID:   best.FileID,
			FileSize: best.FileSize,
		}
	}

	return botUpdate, true
}
