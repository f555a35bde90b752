package ports

import (
	"context"
)

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID           int64
	Text             string
	ParseMode        string // e.g., "MarkdownV2" or "HTML"
	ReplyToMessageID int
}

// BotClientPort defines the interface for talking back to the chat platform.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)
	SetMenuCommands(ctx context.Context) error
	// DownloadFile fetches the raw bytes of an uploaded file.
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// FileInfo describes a file attached to an update.
type FileInfo struct {
	FileID   string
	FileName string
	FileSize int
}

// BotUpdate represents a simplified, generic update.
type BotUpdate struct {
	MessageID int
	ChatID    int64
	UserID    int64
	Text      string
	Command   string
	File      *FileInfo
}

// CommandHandler defines the "plugin" interface for handling bot commands.
type CommandHandler interface {
	// Command returns the command string (e.g., "start")
	Command() string
	// Handle processes the update.
	Handle(ctx context.Context, update *BotUpdate) error
}

// FileHandler handles updates that carry a file.
type FileHandler interface {
	Handle(ctx context.Context, update *BotUpdate) error
}
