package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarrero/whalewatch/internal/api"
	"github.com/dmarrero/whalewatch/internal/archive"
	"github.com/dmarrero/whalewatch/internal/config"
	"github.com/dmarrero/whalewatch/internal/database"
	"github.com/dmarrero/whalewatch/internal/dedup"
	"github.com/dmarrero/whalewatch/internal/filter"
	"github.com/dmarrero/whalewatch/internal/metrics"
	"github.com/dmarrero/whalewatch/internal/price"
	"github.com/dmarrero/whalewatch/internal/runner"
	"github.com/dmarrero/whalewatch/internal/sink"
	"github.com/dmarrero/whalewatch/internal/source"
	"github.com/dmarrero/whalewatch/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/whalewatch.yaml", "path to config file")
	once := flag.Bool("once", false, "run one poll cycle then exit")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting whalewatch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"once", *once,
	)

	// Load configuration; a bad config is the only fatal error after this
	// point short of a stop signal.
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"watch", cfg.Watch.Assets,
		"global_min_usd", cfg.Thresholds.GlobalMinUSD,
		"interval", cfg.Poll.Interval.Std(),
		"dedup_ttl", cfg.Dedup.TTL.Std(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Upstream API client
	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.FallbackURL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout.Std()),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff.Std()),
	)

	var adapters []source.Adapter
	if cfg.Sources.WalletPositionsEnabled() {
		adapters = append(adapters, source.NewWalletAdapter(client, logger))
	}
	if cfg.Sources.OrderbookFillsEnabled() {
		adapters = append(adapters, source.NewFillAdapter(client, cfg.Sources.Exchanges, logger))
	}

	// Sinks
	notifier := sink.NewTelegram(
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.Tag,
		sink.WithTelegramLogger(logger),
	)

	var primary, fallback sink.RowAppender
	if cfg.Sheets.SpreadsheetID != "" {
		primary = sink.NewSheets(
			cfg.Sheets.SpreadsheetID,
			cfg.Sheets.Tab,
			cfg.Sheets.Token,
			sink.WithSheetsLogger(logger),
		)
	}
	if cfg.Sheets.FallbackWebhookURL != "" {
		fallback = sink.NewWebhook(cfg.Sheets.FallbackWebhookURL)
	}
	alertLog := sink.NewAlertLog(primary, fallback, logger)

	// Optional Postgres archive
	var archiver sink.Archiver
	if cfg.Archive.Enabled() {
		logger.Info("connecting to archive database",
			"host", cfg.Archive.Postgres.Host,
			"database", cfg.Archive.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Archive.Postgres)
		if err != nil {
			logger.Error("failed to connect to archive database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		writer, err := archive.NewWriter(ctx, pool, logger)
		if err != nil {
			logger.Error("failed to initialize archive", "error", err)
			os.Exit(1)
		}
		archiver = writer
	}

	fanout := sink.NewFanout(notifier, alertLog, archiver, logger)

	var prices *price.Fetcher
	if cfg.Price.PriceEnabled() {
		prices = price.NewFetcher(cfg.Price.Timeout.Std(), cfg.Price.Cooldown.Std(), price.WithLogger(logger))
	}

	// Metrics and health server
	metrics.Register()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: newServeMux(cfg.Metrics.Path, len(adapters)),
	}
	go func() {
		logger.Info("starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	pipeline := runner.New(
		runner.Config{
			Interval:   cfg.Poll.Interval.Std(),
			Pacing:     cfg.Poll.Pacing.Std(),
			AllowedLag: cfg.Poll.AllowedLag.Std(),
			Once:       *once,
		},
		adapters,
		filter.NewRules(cfg),
		dedup.NewCache(cfg.Dedup.TTL.Std()),
		fanout,
		prices,
		logger,
	)

	if err := pipeline.Run(ctx); err != nil {
		logger.Error("pipeline error", "error", err)
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	logger.Info("whalewatch stopped")
}

// newServeMux serves /health plus the Prometheus endpoint.
func newServeMux(metricsPath string, sources int) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"version": version.Version,
			"sources": sources,
		})
	})

	return mux
}
