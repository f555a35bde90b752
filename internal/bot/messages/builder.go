package messages

import (
	"StegoGuard/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder helps construct SendMessageParams.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder creates a new message builder.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{
			ChatID:    chatID,
			ParseMode: tgbotapi.ModeMarkdownV2,
		},
	}
}

// WithText sets the message text. It must already be valid for the parse mode.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithPlainText sets text that is escaped for the current parse mode.
func (b *Builder) WithPlainText(text string) *Builder {
	b.params.Text = Escape(b.params.ParseMode, text)
	return b
}

// WithParseMode overrides the default parse mode.
func (b *Builder) WithParseMode(mode string) *Builder {
	b.params.ParseMode = mode
	return b
}

// ReplyTo threads the message under an earlier one.
func (b *Builder) ReplyTo(messageID int) *Builder {
	b.params.ReplyToMessageID = messageID
	return b
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}

// Escape makes user-controlled text safe for parseMode.
func Escape(parseMode, text string) string {
	if parseMode == "" {
		return text
	}
	return tgbotapi.EscapeText(parseMode, text)
}
