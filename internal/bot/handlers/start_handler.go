package handlers

import (
	"StegoGuard/internal/bot"
	"StegoGuard/internal/bot/messages"
	"StegoGuard/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewStartHandler)
	bot.RegisterCommand(NewHelpHandler)
}

const helpText = "Send me an image *as a file* and I will tell you whether it carries a StegoGuard signature and who signed it\\.\n\n" +
	"Photos sent as pictures are recompressed by Telegram, which destroys the signature\\."

// textHandler answers a fixed command with a fixed text.
type textHandler struct {
	log     zerolog.Logger
	bot     ports.BotClientPort
	command string
	text    string
}

// NewStartHandler creates a new handler for the /start command.
func NewStartHandler(
	_ ports.SignatureInspector,
	bot ports.BotClientPort,
	baseLogger *zerolog.Logger,
) ports.CommandHandler {
	return &textHandler{
		log:     baseLogger.With().Str("component", "start_handler").Logger(),
		bot:     bot,
		command: "start",
		text:    "👋 Welcome to StegoGuard\\!\n\n" + helpText,
	}
}

// NewHelpHandler creates a new handler for the /help command.
func NewHelpHandler(
	_ ports.SignatureInspector,
	bot ports.BotClientPort,
	baseLogger *zerolog.Logger,
) ports.CommandHandler {
	return &textHandler{
		log:     baseLogger.With().Str("component", "help_handler").Logger(),
		bot:     bot,
		command: "help",
		text:    helpText,
	}
}

// Command returns the command string (without the "/")
func (h *textHandler) Command() string {
	return h.command
}

func (h *textHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	params := messages.NewBuilder(update.ChatID).WithText(h.text).Build()
	if _, err := h.bot.SendMessage(ctx, params); err != nil {
		h.log.Error().Err(err).Int64("chat_id", update.ChatID).Msg("Failed to send message")
		return err
	}
	return nil
}
