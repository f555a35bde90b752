package handlers

import (
	"StegoGuard/internal/bot"
	"StegoGuard/internal/bot/messages"
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterFile(NewInspectHandler)
}

// maxInspectSize mirrors the Bot API download limit.
const maxInspectSize = 20 << 20

// inspectHandler downloads an uploaded image and reports its signature.
type inspectHandler struct {
	log       zerolog.Logger
	inspector ports.SignatureInspector
	bot       ports.BotClientPort
}

// NewInspectHandler creates the handler for uploaded files.
func NewInspectHandler(
	inspector ports.SignatureInspector,
	bot ports.BotClientPort,
	baseLogger *zerolog.Logger,
) ports.FileHandler {
	return &inspectHandler{
		log:       baseLogger.With().Str("component", "inspect_handler").Logger(),
		inspector: inspector,
		bot:       bot,
	}
}

func (h *inspectHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	log := h.log.With().Int64("chat_id", update.ChatID).Str("file_id", update.File.FileID).Logger()

	if update.File.FileSize > maxInspectSize {
		log.Info().Int("size", update.File.FileSize).Msg("File too large to inspect")
		return h.reply(ctx, update, "This file is too large to inspect\\.")
	}

	data, err := h.bot.DownloadFile(ctx, update.File.FileID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to download file")
		if replyErr := h.reply(ctx, update, "I could not download this file\\. Please try again later\\."); replyErr != nil {
			return errors.Join(fmt.Errorf("download %s: %w", update.File.FileID, err), replyErr)
		}
		return fmt.Errorf("download %s: %w", update.File.FileID, err)
	}

	raw, ok := h.inspector.ExtractPayload(data)
	if !ok {
		log.Info().Int("size", len(data)).Msg("No signature found")
		return h.reply(ctx, update, "No StegoGuard signature was found in this file\\.")
	}

	payload, _ := domain.SplitPayload(raw)
	log.Info().Str("identifier", payload.Identifier).Msg("Signature found")
	return h.reply(ctx, update, fmt.Sprintf(
		"✅ Signature found\\.\n\n*Signed by:* `%s`\n*Details:* `%s`",
		messages.Escape("MarkdownV2", payload.Identifier),
		messages.Escape("MarkdownV2", payload.Secondary),
	))
}

func (h *inspectHandler) reply(ctx context.Context, update *ports.BotUpdate, text string) error {
	params := messages.NewBuilder(update.ChatID).WithText(text).ReplyTo(update.MessageID).Build()
	if _, err := h.bot.SendMessage(ctx, params); err != nil {
		h.log.Error().Err(err).Int64("chat_id", update.ChatID).Msg("Failed to send reply")
		return err
	}
	return nil
}
