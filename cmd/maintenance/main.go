// Command maintenance runs scheduler jobs once and exits. It is meant for
// external schedulers when the in-process scheduler is disabled.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/config"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/logging"
	"github.com/light-bringer/fulfillment-service/internal/scheduler"
	"github.com/light-bringer/fulfillment-service/internal/services"
)

var (
	configPath = flag.String("config", "", "Path to config.yaml (optional)")
	jobs       = flag.String("jobs", strings.Join(allJobs, ","), "Comma-separated jobs to run")
)

var allJobs = []string{scheduler.JobOTPPurge, scheduler.JobOutboxRelay, scheduler.JobOutboxRetention}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("Maintenance failed: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	names, err := selectJobs(*jobs)
	if err != nil {
		return err
	}

	client, err := spanner.NewClient(ctx, cfg.Spanner.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	sched, err := services.NewScheduler(cfg.Scheduler, client, committer.NewCommitter(client), clock.NewRealClock(), logger, nil)
	if err != nil {
		return err
	}

	var failed []string
	for _, name := range names {
		logger.Info("running job", zap.String("job", name))
		if err := sched.Trigger(ctx, name); err != nil {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("jobs failed: %s", strings.Join(failed, ", "))
	}
	logger.Info("maintenance completed", zap.Strings("jobs", names))
	return nil
}

// selectJobs parses the -jobs flag, rejecting unknown names.
func selectJobs(raw string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !slices.Contains(allJobs, name) {
			return nil, fmt.Errorf("unknown job %q (known: %s)", name, strings.Join(allJobs, ", "))
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no jobs selected")
	}
	return names, nil
}
