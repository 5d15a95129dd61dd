// pkg/config/env_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvWorkers, EnvTolerance, EnvScenarioName, EnvRunTimeout} {
		t.Setenv(key, "")
	}
}

func TestLoadEnvironmentConfig(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadEnvironmentConfig()
		require.NoError(t, err)
		assert.Equal(t, &EnvironmentConfig{}, cfg)
	})

	t.Run("all set", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvWorkers, "8")
		t.Setenv(EnvTolerance, "0.001")
		t.Setenv(EnvScenarioName, "ci")
		t.Setenv(EnvRunTimeout, "2s")

		cfg, err := LoadEnvironmentConfig()
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Workers)
		assert.InDelta(t, 0.001, cfg.Tolerance, 1e-9)
		assert.Equal(t, "ci", cfg.ScenarioName)
		assert.Equal(t, 2*time.Second, cfg.RunTimeout)
	})

	t.Run("out of range workers", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvWorkers, "100000")
		_, err := LoadEnvironmentConfig()
		assert.Error(t, err)
	})

	t.Run("unparsable values fall back", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvWorkers, "many")
		t.Setenv(EnvRunTimeout, "soon")
		cfg, err := LoadEnvironmentConfig()
		require.NoError(t, err)
		assert.Zero(t, cfg.Workers)
		assert.Zero(t, cfg.RunTimeout)
	})
}

func TestValidateEnvironmentConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      EnvironmentConfig
		expectError bool
	}{
		{"zero", EnvironmentConfig{}, false},
		{"max workers", EnvironmentConfig{Workers: MaxWorkers}, false},
		{"negative workers", EnvironmentConfig{Workers: -1}, true},
		{"negative tolerance", EnvironmentConfig{Tolerance: -1}, true},
		{"negative timeout", EnvironmentConfig{RunTimeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvironmentConfig(&tt.config)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Run("overrides set values only", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvWorkers, "16")

		cfg := DefaultConfig()
		require.NoError(t, ApplyEnvironmentOverrides(cfg))
		assert.Equal(t, 16, cfg.Workers)
		assert.Equal(t, "reference", cfg.Name)
		assert.Equal(t, float32(1e-5), cfg.Tolerance)
	})

	t.Run("invalid environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvTolerance, "-3")
		assert.Error(t, ApplyEnvironmentOverrides(DefaultConfig()))
	})
}

func TestGetEnvHelperFunctions(t *testing.T) {
	t.Setenv("NARROWPHASE_TEST_STRING", "value")
	assert.Equal(t, "value", getEnvOrDefault("NARROWPHASE_TEST_STRING", "default"))
	assert.Equal(t, "default", getEnvOrDefault("NARROWPHASE_TEST_UNSET", "default"))

	t.Setenv("NARROWPHASE_TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsIntOrDefault("NARROWPHASE_TEST_INT", 10))
	t.Setenv("NARROWPHASE_TEST_INT", "invalid")
	assert.Equal(t, 10, getEnvAsIntOrDefault("NARROWPHASE_TEST_INT", 10))

	t.Setenv("NARROWPHASE_TEST_FLOAT", "0.5")
	assert.Equal(t, 0.5, getEnvAsFloatOrDefault("NARROWPHASE_TEST_FLOAT", 1))
	t.Setenv("NARROWPHASE_TEST_FLOAT", "nope")
	assert.Equal(t, 1.0, getEnvAsFloatOrDefault("NARROWPHASE_TEST_FLOAT", 1))

	t.Setenv("NARROWPHASE_TEST_DURATION", "5s")
	assert.Equal(t, 5*time.Second, getEnvAsDurationOrDefault("NARROWPHASE_TEST_DURATION", time.Second))
	t.Setenv("NARROWPHASE_TEST_DURATION", "invalid")
	assert.Equal(t, time.Second, getEnvAsDurationOrDefault("NARROWPHASE_TEST_DURATION", time.Second))
}
