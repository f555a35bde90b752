package telegram

import (
	"StegoGuard/internal/core/ports"
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// MaxDownloadSize is the largest file the bot fetches (Bot API limit).
const MaxDownloadSize = 20 << 20

// botAPI is the part of *tgbotapi.BotAPI the client uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// tgClient implements the BotClientPort.
type tgClient struct {
	api  botAPI
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates a new Telegram client adapter.
func NewClient(api botAPI, httpClient *http.Client, baseLogger *zerolog.Logger) ports.BotClientPort {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log := baseLogger.With().Str("component", "tg_client").Logger()
	return &tgClient{api: api, http: httpClient, log: log}
}

// SendMessage translates our params into a tgbotapi message.
func (c *tgClient) SendMessage(ctx context.Context, params ports.SendMessageParams) (int, error) {
	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	msg.ParseMode = params.ParseMode
	msg.ReplyToMessageID = params.ReplyToMessageID

	sent, err := c.api.Send(msg)
	if err != nil {
		c.log.Error().Err(err).Int64("chat_id", params.ChatID).Msg("Failed to send message")
		return 0, err
	}
	return sent.MessageID, nil
}

// SetMenuCommands sets the bot's /menu commands.
func (c *tgClient) SetMenuCommands(ctx context.Context) error {
	commands := []tgbotapi.BotCommand{
		{Command: "/start", Description: "Start the bot"},
		{Command: "/help", Description: "How to check an image"},
	}

	if _, err := c.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		c.log.Error().Err(err).Msg("Failed to set menu commands")
		return err
	}
	return nil
}

// DownloadFile fetches an uploaded file through the Bot API file endpoint.
func (c *tgClient) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		c.log.Error().Err(err).Str("file_id", fileID).Msg("Failed to resolve file URL")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("file_id", fileID).Msg("Failed to download file")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: unexpected status %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("download %s: file larger than %d bytes", fileID, MaxDownloadSize)
	}
	return data, nil
}
