package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/trainerdash/internal"
	"github.com/2beens/trainerdash/internal/cli"
	"github.com/2beens/trainerdash/internal/config"
	"github.com/2beens/trainerdash/internal/logging"
	"github.com/2beens/trainerdash/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd(buildDeps, os.Stdout)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func buildDeps(ctx context.Context, env, configPath string) (*cli.Deps, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
	})
	// stdout carries the json output
	log.SetOutput(os.Stderr)

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret not set. use TRAINERDASH_SESSION_SECRET")
	}

	// metrics are not scraped from the cli, the registry only satisfies the collaborators
	metricsManager := metrics.NewManager("trainerdash", "cli", prometheus.NewRegistry())

	components, err := internal.NewComponents(ctx, cfg, metricsManager)
	if err != nil {
		return nil, err
	}

	return &cli.Deps{
		Syncer:   components.Orchestrator,
		Analyzer: components.Analyzer,
		Sessions: components.Sessions,
		Close:    components.Close,
	}, nil
}
