// cmd/vocab-tutor/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"vocab_tutor/internal/busy"
	"vocab_tutor/internal/client"
	"vocab_tutor/internal/config"
	"vocab_tutor/internal/flashcards"
	"vocab_tutor/internal/lang"
	"vocab_tutor/internal/notify"
	"vocab_tutor/internal/settings"
	"vocab_tutor/internal/ui"
)

func main() {
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	store, err := settings.Open(config.Cfg.Storage.Path, logger)
	if err != nil {
		slog.Error("Error opening settings storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Error closing settings storage", slog.Any("error", err))
		}
	}()

	api := client.New(config.Cfg.API.BaseURL, time.Duration(config.Cfg.API.TimeoutSeconds)*time.Second, logger)

	notifier := notify.New(time.Duration(config.Cfg.App.NotifySeconds)*time.Second, logger)
	defer notifier.Close()
	api.SetErrorHandler(notifier.Error)

	gate := busy.NewGate()
	cards := flashcards.NewViewModel(api, notifier, gate, logger)

	initial := store.NativeLanguage(config.Cfg.App.DefaultLanguage)
	machine := lang.NewMachine(api, store, cards, initial, logger)

	app := ui.NewApp(api, cards, machine, notifier, gate, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Application exited with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Println("Exiting")
}
