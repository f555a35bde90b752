package bot

import (
	"StegoGuard/internal/core/ports"

	"github.com/rs/zerolog"
)

// --- Define types for handler "constructors" ---
// This allows us to pass dependencies from main.go

type CommandHandlerConstructor func(ports.SignatureInspector, ports.BotClientPort, *zerolog.Logger) ports.CommandHandler
type FileHandlerConstructor func(ports.SignatureInspector, ports.BotClientPort, *zerolog.Logger) ports.FileHandler

// Router is what the registry fills with handlers.
type Router interface {
	RegisterCommandHandler(handler ports.CommandHandler)
	SetFileHandler(handler ports.FileHandler)
}

// --- Create the global registries ---

var (
	commandRegistry []CommandHandlerConstructor
	fileHandler     FileHandlerConstructor
)

// RegisterCommand is called by handlers in their init() function
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterFile is called by the file handler in its init() function
func RegisterFile(constructor FileHandlerConstructor) {
	// We only allow one global file handler
	fileHandler = constructor
}

// RegisterAllHandlers builds all registered handlers and passes them to the router.
func RegisterAllHandlers(
	router Router,
	inspector ports.SignatureInspector,
	botClient ports.BotClientPort,
	baseLogger *zerolog.Logger,
) {
	log := baseLogger.With().Str("component", "handler_registry").Logger()

	for _, constructor := range commandRegistry {
		router.RegisterCommandHandler(constructor(inspector, botClient, baseLogger))
	}

	if fileHandler != nil {
		router.SetFileHandler(fileHandler(inspector, botClient, baseLogger))
		log.Info().Msg("Registered file handler")
	}
}
