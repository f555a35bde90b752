package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// StegoConfig configures the signing engine.
type StegoConfig struct {
	Secret        string // Empty means a random per-process key
	Salt          string
	CipherMode    string // gcm | ecb
	BitsPerByte   int
	SignatureMode string // identity | timestamp
}

// OracleConfig points at the external detection service.
type OracleConfig struct {
	URL     string // Empty means local detection only
	Timeout time.Duration
}

// WebhookConfig holds webhook-specific settings.
type WebhookConfig struct {
	URL        string
	ListenPort int
}

// BotConfig configures the inspection bot. An empty token disables it.
type BotConfig struct {
	Token   string
	Mode    string // polling | webhook
	Workers int
	Webhook WebhookConfig
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv      string
	LogLevel    string
	DatabaseURL string
	Stego       StegoConfig
	Oracle      OracleConfig
	Bot         BotConfig
}

// bindings maps viper keys to the environment variables feeding them.
var bindings = map[string]string{
	"app.env":              "APP_ENV",
	"log.level":            "LOG_LEVEL",
	"database.url":         "DATABASE_URL",
	"stego.secret":         "STEGO_SECRET",
	"stego.salt":           "STEGO_SALT",
	"stego.cipher_mode":    "STEGO_CIPHER_MODE",
	"stego.bits_per_byte":  "STEGO_BITS_PER_BYTE",
	"stego.signature_mode": "STEGO_SIGNATURE_MODE",
	"oracle.url":           "ORACLE_URL",
	"oracle.timeout":       "ORACLE_TIMEOUT",
	"bot.token":            "BOT_TOKEN",
	"bot.mode":             "BOT_MODE",
	"bot.workers":          "BOT_WORKERS",
	"bot.webhook.url":      "BOT_WEBHOOK_URL",
	"bot.webhook.port":     "BOT_WEBHOOK_PORT",
}

// Load loads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// 1. Load .env file into the process environment.
	// A missing file is fine, OS-set env vars are used then.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// 2. Explicitly bind viper keys to env var names
	v := viper.New()
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("stego.salt", "stegoguard")
	v.SetDefault("stego.cipher_mode", "gcm")
	v.SetDefault("stego.bits_per_byte", 1)
	v.SetDefault("stego.signature_mode", "identity")
	v.SetDefault("oracle.timeout", 10*time.Second)
	v.SetDefault("bot.mode", "polling")
	v.SetDefault("bot.workers", 4)
	v.SetDefault("bot.webhook.port", 8443)

	cfg := Config{
		AppEnv:      v.GetString("app.env"),
		LogLevel:    v.GetString("log.level"),
		DatabaseURL: v.GetString("database.url"),
		Stego: StegoConfig{
			Secret:        v.GetString("stego.secret"),
			Salt:          v.GetString("stego.salt"),
			CipherMode:    strings.ToLower(v.GetString("stego.cipher_mode")),
			BitsPerByte:   v.GetInt("stego.bits_per_byte"),
			SignatureMode: strings.ToLower(v.GetString("stego.signature_mode")),
		},
		Oracle: OracleConfig{
			URL:     v.GetString("oracle.url"),
			Timeout: v.GetDuration("oracle.timeout"),
		},
		Bot: BotConfig{
			Token:   v.GetString("bot.token"),
			Mode:    strings.ToLower(v.GetString("bot.mode")),
			Workers: v.GetInt("bot.workers"),
			Webhook: WebhookConfig{
				URL:        v.GetString("bot.webhook.url"),
				ListenPort: v.GetInt("bot.webhook.port"),
			},
		},
	}

	// 4. Validation
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Stego.CipherMode {
	case "gcm", "ecb":
	default:
		return fmt.Errorf("STEGO_CIPHER_MODE must be gcm or ecb, got %q", c.Stego.CipherMode)
	}
	if c.Stego.BitsPerByte < 1 || c.Stego.BitsPerByte > 8 {
		return fmt.Errorf("STEGO_BITS_PER_BYTE must be between 1 and 8, got %d", c.Stego.BitsPerByte)
	}
	switch c.Stego.SignatureMode {
	case "identity", "timestamp":
	default:
		return fmt.Errorf("STEGO_SIGNATURE_MODE must be identity or timestamp, got %q", c.Stego.SignatureMode)
	}
	if c.Oracle.Timeout <= 0 {
		return errors.New("ORACLE_TIMEOUT must be positive")
	}

	if c.Bot.Token == "" {
		return nil
	}
	if c.Bot.Workers < 1 {
		return fmt.Errorf("BOT_WORKERS must be at least 1, got %d", c.Bot.Workers)
	}
	switch c.Bot.Mode {
	case "polling":
	case "webhook":
		if c.Bot.Webhook.URL == "" {
			return errors.New("BOT_WEBHOOK_URL is required in webhook mode")
		}
	default:
		return fmt.Errorf("BOT_MODE must be polling or webhook, got %q", c.Bot.Mode)
	}
	return nil
}
