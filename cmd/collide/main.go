// cmd/collide/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-narrowphase/pkg/config"
	"github.com/opd-ai/go-narrowphase/pkg/event"
	"github.com/opd-ai/go-narrowphase/pkg/logging"
	"github.com/opd-ai/go-narrowphase/pkg/scenario"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), "")

	configPath := flag.String("config", "scenario.yaml", "Path to scenario file (.json, .yaml or .yml)")
	createDefault := flag.Bool("default", false, "Write the reference scenario to -config and exit")
	workers := flag.Int("workers", 0, "Worker count (overrides file and environment when > 0)")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default scenario", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default scenario file", "config_path", *configPath)
		return
	}

	cfg, err := loadScenario(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load scenario", err, "config_path", *configPath)
		os.Exit(1)
	}

	envCfg, err := config.LoadEnvironmentConfig()
	if err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	envCfg.Apply(cfg)
	if *workers > 0 {
		cfg.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if envCfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, envCfg.RunTimeout)
		defer cancel()
	}

	bus := event.NewEventBus()
	bus.Subscribe(event.PairCollided, func(e event.Event) {
		ce := e.(*event.CollisionEvent)
		fmt.Printf("%-32s collided    normal=(%g, %g) penetration=%g\n",
			ce.Pair, ce.Normal.X, ce.Normal.Y, ce.Penetration)
	})
	bus.Subscribe(event.PairSeparated, func(e event.Event) {
		fmt.Printf("%-32s separated\n", e.(*event.CollisionEvent).Pair)
	})

	report, err := scenario.NewRunner(cfg, bus, logger).Run(ctx)
	if report != nil {
		fmt.Printf("%d pairs, %d collisions, %d failures, digest %016x\n",
			len(report.Results), report.Collisions, report.Failures, report.Digest)
	}
	if err != nil {
		if errors.Is(err, scenario.ErrExpectationFailed) {
			os.Exit(2)
		}
		logger.Error(ctx, "Scenario run failed", err)
		os.Exit(1)
	}
}

func loadScenario(ctx context.Context, logger *logging.Logger, path string) (*config.ScenarioConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Scenario file not found, using reference scenario", "config_path", path)
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}
