package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mpetrun5/hobbylog/internal/config"
	"github.com/mpetrun5/hobbylog/internal/db"
	"github.com/mpetrun5/hobbylog/internal/maintenance"
	"github.com/mpetrun5/hobbylog/internal/server"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := db.EnsureDefaultUser(database); err != nil {
		slog.Error("failed to seed default user", "error", err)
		os.Exit(1)
	}

	cron, err := maintenance.Run(database, cfg.MaintenanceCron)
	if err != nil {
		slog.Error("failed to start maintenance scheduler", "error", err)
		os.Exit(1)
	}
	defer cron.Stop()

	srv := server.New(cfg, database)

	go func() {
		slog.Info("api listening", "port", cfg.Port, "db", cfg.DBPath)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	if err := srv.Shutdown(10 * time.Second); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
