package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/hyperengineering/reviewlens/internal/api"
	"github.com/hyperengineering/reviewlens/internal/config"
	"github.com/hyperengineering/reviewlens/internal/review"
	"github.com/hyperengineering/reviewlens/internal/sentiment"
	"github.com/hyperengineering/reviewlens/internal/store"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "Reviewlens - Review Sentiment Service",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func run(cmd *cobra.Command, args []string) error {
	// Signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := gotenv.Load(); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(newLogHandler(cfg.Log))
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "version", Version)

	// The store must load the full review log before serving; an unreadable
	// or malformed log is fatal.
	db, err := store.NewCSVStore(cfg.Data.Path)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "path", cfg.Data.Path, "reviews", db.Count())

	analyzer := sentiment.NewVADER()
	slog.Info("analyzer initialized", "model", analyzer.Name())

	handler := api.NewHandler(
		review.NewEngine(db, analyzer),
		review.NewIngestor(db),
	)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully; anything else should trigger shutdown.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// Drain in-flight requests before releasing the log
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func newLogHandler(cfg config.LogConfig) slog.Handler {
	level := parseLogLevel(cfg.Level)
	if cfg.Format == "text" {
		return tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
