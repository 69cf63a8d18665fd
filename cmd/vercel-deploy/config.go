package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/artpar/vercel-deploy-task/internal/core/alias"
	"github.com/artpar/vercel-deploy-task/internal/shell/azdo"
	"github.com/artpar/vercel-deploy-task/internal/shell/orchestrator"
	"github.com/artpar/vercel-deploy-task/internal/shell/vercel"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds the task settings. Per-run values (project, token, flags)
// are task inputs and are resolved separately.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Platform PlatformConfig `mapstructure:"platform"`
	Alias    AliasConfig    `mapstructure:"alias"`
	CLI      CLIConfig      `mapstructure:"cli"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PlatformConfig holds platform API configuration.
type PlatformConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Client returns the platform API client configuration.
func (c PlatformConfig) Client() vercel.Config {
	return vercel.Config{BaseURL: c.APIURL, Timeout: c.Timeout}
}

// AliasConfig holds preview alias layout configuration.
type AliasConfig struct {
	// Suffix is the domain aliases are created under.
	Suffix string `mapstructure:"suffix"`

	// Budget is the number of characters shared by the project name, branch
	// name and staging prefix. Keep it at or below 63 - len(suffix) - 3.
	Budget int `mapstructure:"budget"`
}

// Options returns the alias builder options.
func (c AliasConfig) Options() alias.Options {
	return alias.Options{Suffix: c.Suffix, Budget: c.Budget}
}

// CLIConfig holds the names of the tools the task installs and runs.
type CLIConfig struct {
	NPM            string `mapstructure:"npm"`
	Binary         string `mapstructure:"binary"`
	Package        string `mapstructure:"package"`
	DefaultVersion string `mapstructure:"default_version"`
}

// Tools returns the orchestrator tool names.
func (c CLIConfig) Tools() orchestrator.Tools {
	return orchestrator.Tools{NPM: c.NPM, Binary: c.Binary, Package: c.Package}
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("platform.api_url", vercel.DefaultBaseURL)
	v.SetDefault("platform.timeout", "30s")
	v.SetDefault("alias.suffix", alias.DefaultSuffix)
	v.SetDefault("alias.budget", alias.DefaultBudget)
	v.SetDefault("cli.npm", "npm")
	v.SetDefault("cli.binary", "vercel")
	v.SetDefault("cli.package", "vercel")
	v.SetDefault("cli.default_version", "latest")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("VERCEL_TASK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Alias.Budget <= 0 {
		return nil, fmt.Errorf("alias.budget must be positive, got %d", cfg.Alias.Budget)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format writing
// to w. When commands is set, warnings and errors are also raised as
// pipeline issues.
func SetupLogger(cfg *Config, w io.Writer, commands *azdo.Commands) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if commands != nil {
		handler = azdo.NewLogHandler(handler, commands)
	}

	return slog.New(handler)
}
