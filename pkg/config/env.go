// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by LoadEnvironmentConfig
const (
	EnvWorkers      = "NARROWPHASE_WORKERS"
	EnvTolerance    = "NARROWPHASE_TOLERANCE"
	EnvScenarioName = "NARROWPHASE_SCENARIO_NAME"
	EnvRunTimeout   = "NARROWPHASE_RUN_TIMEOUT"
)

// MaxWorkers bounds the runner's worker pool
const MaxWorkers = 256

// EnvironmentConfig holds settings taken from the environment. Zero values
// mean "not set".
type EnvironmentConfig struct {
	Workers      int
	Tolerance    float32
	ScenarioName string
	RunTimeout   time.Duration
}

// LoadEnvironmentConfig reads and validates the environment settings
func LoadEnvironmentConfig() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		Workers:      getEnvAsIntOrDefault(EnvWorkers, 0),
		Tolerance:    float32(getEnvAsFloatOrDefault(EnvTolerance, 0)),
		ScenarioName: getEnvOrDefault(EnvScenarioName, ""),
		RunTimeout:   getEnvAsDurationOrDefault(EnvRunTimeout, 0),
	}

	if err := ValidateEnvironmentConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return cfg, nil
}

// ValidateEnvironmentConfig rejects out-of-range values
func ValidateEnvironmentConfig(cfg *EnvironmentConfig) error {
	if cfg.Workers < 0 || cfg.Workers > MaxWorkers {
		return fmt.Errorf("Workers must be between 0 and %d, got %d", MaxWorkers, cfg.Workers)
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("Tolerance must not be negative, got %g", cfg.Tolerance)
	}
	if cfg.RunTimeout < 0 {
		return fmt.Errorf("RunTimeout must not be negative, got %v", cfg.RunTimeout)
	}
	return nil
}

// ApplyEnvironmentOverrides copies every set environment value into cfg
func ApplyEnvironmentOverrides(cfg *ScenarioConfig) error {
	envCfg, err := LoadEnvironmentConfig()
	if err != nil {
		return err
	}
	envCfg.Apply(cfg)
	return nil
}

// Apply copies the non-zero settings into cfg
func (e *EnvironmentConfig) Apply(cfg *ScenarioConfig) {
	if e.Workers > 0 {
		cfg.Workers = e.Workers
	}
	if e.Tolerance > 0 {
		cfg.Tolerance = e.Tolerance
	}
	if e.ScenarioName != "" {
		cfg.Name = e.ScenarioName
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
