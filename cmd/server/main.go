package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"roipulse/internal/analyze"
	"roipulse/internal/config"
	"roipulse/internal/httpx"
	"roipulse/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	th, err := analyze.LoadThresholds(cfg.ThresholdsPath)
	if err != nil {
		logger.Warn("thresholds config ignored", slog.String("err", err.Error()))
	}

	var kv store.KV
	if sq, err := store.NewSQLiteKV(cfg.DBPath); err != nil {
		logger.Error("sqlite unavailable, falling back to memory store", slog.String("path", cfg.DBPath), slog.String("err", err.Error()))
		kv = store.NewMemoryKV()
	} else {
		kv = sq
	}
	defer kv.Close()

	rs := store.NewRecordStore(kv, logger)
	r := httpx.NewRouter(logger, rs, th)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port), slog.String("db", cfg.DBPath))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
