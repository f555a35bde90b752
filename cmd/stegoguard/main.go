package main

import (
	"StegoGuard/internal/app"
	"StegoGuard/internal/shared/config"
	"StegoGuard/internal/shared/logger"
	"context"
	"fmt"
	"io"
	"os"
)

const usage = `usage: stegoguard <command> [flags]

commands:
  sign     run an image through the upload pipeline and write the signed copy
  embed    sign an image with an explicit identifier and secondary field
  inspect  print the signature carried by an image`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	baseLogger := logger.New(cfg.AppEnv == "dev", cfg.LogLevel)
	if cfg.Stego.Secret == "" {
		baseLogger.Warn().Msg("STEGO_SECRET not set, signatures written now cannot be read by a later run")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, &baseLogger)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize: %v\n", err)
		return 1
	}
	defer a.Close()

	switch args[0] {
	case "sign":
		return runSign(ctx, a, args[1:], stdout, stderr)
	case "embed":
		return runEmbed(a, args[1:], stdout, stderr)
	case "inspect":
		return runInspect(a, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s\n", args[0], usage)
		return 2
	}
}
