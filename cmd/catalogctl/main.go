// Command catalogctl browses the public catalog from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/config"
	"github.com/light-bringer/fulfillment-service/internal/pkg/logging"
	"github.com/light-bringer/fulfillment-service/pkg/catalogclient"
)

var (
	configPath = flag.String("config", "", "Path to config.yaml (optional)")
	baseURL    = flag.String("base-url", "", "Service address, overrides client.base_url")
	rateLimit  = flag.Float64("rate", 5, "Maximum catalog requests per second")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("catalogctl: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}

	// stdout belongs to the browser.
	logCfg := cfg.Log
	if logCfg.Output == "" || logCfg.Output == "stdout" {
		logCfg.Output = "stderr"
		logCfg.Format = "console"
		logCfg.Level = "warn"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := catalogclient.New(cfg.Client.BaseURL,
		catalogclient.WithTimeout(cfg.Client.Timeout),
		catalogclient.WithRateLimit(*rateLimit, 1),
		catalogclient.WithLogger(logger))
	fetcher := catalogclient.NewCachingFetcher(client, cfg.Client.CacheSize, cfg.Client.CacheTTL)

	sh := newShell(os.Stdout, logger)
	session := catalogclient.NewSession(fetcher,
		catalogclient.WithDebounce(cfg.Client.Debounce),
		catalogclient.WithCredits(cfg.Client.InitialCredits),
		catalogclient.WithNotifier(sh),
		catalogclient.WithSessionLogger(logger))
	defer session.Close()
	sh.session = session

	logger.Info("browsing catalog", zap.String("base_url", cfg.Client.BaseURL))
	return sh.Run(ctx, os.Stdin)
}
