package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/artpar/vercel-deploy-task/internal/shell/azdo"
)

// =============================================================================
// Config Loading Tests
// =============================================================================

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "https://api.vercel.com", cfg.Platform.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Platform.Timeout)
	assert.Equal(t, "vercel.app", cfg.Alias.Suffix)
	assert.Equal(t, 50, cfg.Alias.Budget)
	assert.Equal(t, "npm", cfg.CLI.NPM)
	assert.Equal(t, "vercel", cfg.CLI.Binary)
	assert.Equal(t, "vercel", cfg.CLI.Package)
	assert.Equal(t, "latest", cfg.CLI.DefaultVersion)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)

	fixture := map[string]any{
		"log": map[string]any{
			"level":  "debug",
			"format": "json",
		},
		"platform": map[string]any{
			"api_url": "http://localhost:9999",
			"timeout": "5s",
		},
		"alias": map[string]any{
			"suffix": "preview.example.com",
			"budget": 40,
		},
		"cli": map[string]any{
			"default_version": "32.1.0",
		},
	}
	content, err := yaml.Marshal(fixture)
	require.NoError(t, err)

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, content, 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "http://localhost:9999", cfg.Platform.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Platform.Timeout)
	assert.Equal(t, "preview.example.com", cfg.Alias.Suffix)
	assert.Equal(t, 40, cfg.Alias.Budget)
	assert.Equal(t, "32.1.0", cfg.CLI.DefaultVersion)
	assert.Equal(t, "npm", cfg.CLI.NPM)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	clearEnv(t)

	t.Setenv("VERCEL_TASK_LOG_LEVEL", "warn")
	t.Setenv("VERCEL_TASK_PLATFORM_API_URL", "http://127.0.0.1:8080")
	t.Setenv("VERCEL_TASK_ALIAS_BUDGET", "45")
	t.Setenv("VERCEL_TASK_CLI_BINARY", "vc")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.Platform.APIURL)
	assert.Equal(t, 45, cfg.Alias.Budget)
	assert.Equal(t, "vc", cfg.CLI.Binary)
}

func TestLoadConfig_FileNotFound_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "vercel.app", cfg.Alias.Suffix)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)

	tmpFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: [[["), 0644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsNonPositiveBudget(t *testing.T) {
	clearEnv(t)
	t.Setenv("VERCEL_TASK_ALIAS_BUDGET", "0")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestConfig_Conversions(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "vercel", cfg.CLI.Tools().Binary)
	assert.Equal(t, 50, cfg.Alias.Options().Budget)
	assert.Equal(t, 30*time.Second, cfg.Platform.Client().Timeout)
}

// =============================================================================
// Logger Setup Tests
// =============================================================================

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warning", false, false, true},
		{"error", false, false, false},
		{"invalid", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := SetupLogger(&Config{Log: LogConfig{Level: tt.level}}, &buf, nil)

			logger.Debug("debug-line")
			logger.Info("info-line")
			logger.Warn("warn-line")

			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug-line")))
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("info-line")))
			assert.Equal(t, tt.warnSeen, bytes.Contains(buf.Bytes(), []byte("warn-line")))
		})
	}
}

func TestSetupLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&Config{Log: LogConfig{Level: "info", Format: "json"}}, &buf, nil)

	logger.Info("hello", "run_id", "r1")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"run_id":"r1"`)
}

func TestSetupLogger_RaisesIssues(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&Config{Log: LogConfig{Level: "info"}}, &buf, azdo.NewCommands(&buf))

	logger.Warn("careful")
	assert.Contains(t, buf.String(), "##vso[task.logissue type=warning]careful\n")
}

// =============================================================================
// Test Helpers
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"VERCEL_TASK_LOG_LEVEL",
		"VERCEL_TASK_LOG_FORMAT",
		"VERCEL_TASK_PLATFORM_API_URL",
		"VERCEL_TASK_PLATFORM_TIMEOUT",
		"VERCEL_TASK_ALIAS_SUFFIX",
		"VERCEL_TASK_ALIAS_BUDGET",
		"VERCEL_TASK_CLI_NPM",
		"VERCEL_TASK_CLI_BINARY",
		"VERCEL_TASK_CLI_PACKAGE",
		"VERCEL_TASK_CLI_DEFAULT_VERSION",
	}
	for _, v := range envVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}
