// Package config reconciles task settings that may arrive either as task
// inputs or as environment variables.
//
// The package never touches process state directly: inputs and the
// environment namespace are injected, so the same rules apply to the real
// pipeline agent and to in-memory test doubles.
package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
)

// =============================================================================
// Sources
// =============================================================================

// Store is the environment namespace. Values written with Set must be
// observable by later Get calls within the same run.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Inputs is the task-input namespace.
type Inputs interface {
	Input(name string) (string, bool)
}

// Source records where a resolved value came from.
type Source string

const (
	SourceInput       Source = "input"
	SourceEnvironment Source = "environment"
	SourceDefault     Source = "default"
)

// Value is a resolved configuration value.
type Value struct {
	Key    string // environment key
	Value  string
	Source Source
}

// =============================================================================
// Resolver
// =============================================================================

// Resolver applies the input-over-environment precedence rules.
type Resolver struct {
	inputs Inputs
	env    Store
	logger *slog.Logger
}

// NewResolver creates a resolver over the given namespaces.
func NewResolver(inputs Inputs, env Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		inputs: inputs,
		env:    env,
		logger: logger,
	}
}

// Resolve returns a required value. When neither source provides it the
// error is a *domain.MissingConfigurationError.
func (r *Resolver) Resolve(inputKey, envKey, displayName string) (Value, error) {
	return r.resolve(inputKey, envKey, displayName, nil)
}

// ResolveWithDefault is Resolve with a fallback value. The fallback is
// written to the environment namespace when used.
func (r *Resolver) ResolveWithDefault(inputKey, envKey, displayName, defaultValue string) (Value, error) {
	return r.resolve(inputKey, envKey, displayName, &defaultValue)
}

// ResolveOptional follows the same precedence as Resolve but reports absence
// with ok == false instead of an error.
func (r *Resolver) ResolveOptional(inputKey, envKey, displayName string) (Value, bool, error) {
	v, err := r.resolve(inputKey, envKey, displayName, nil)
	if err != nil {
		if errors.Is(err, domain.ErrMissingConfiguration) {
			return Value{Key: envKey}, false, nil
		}
		return Value{}, false, err
	}
	return v, true, nil
}

func (r *Resolver) resolve(inputKey, envKey, displayName string, defaultValue *string) (Value, error) {
	inputVal, hasInput := present(r.inputs.Input(inputKey))
	envVal, hasEnv := present(r.env.Get(envKey))

	switch {
	case hasInput && hasEnv:
		r.logger.Warn("configuration set by both input and environment variable, using input",
			"setting", displayName,
			"input", inputKey,
			"env", envKey,
		)
		return Value{Key: envKey, Value: inputVal, Source: SourceInput}, nil

	case hasEnv:
		return Value{Key: envKey, Value: envVal, Source: SourceEnvironment}, nil

	case hasInput:
		if err := r.env.Set(envKey, inputVal); err != nil {
			return Value{}, err
		}
		return Value{Key: envKey, Value: inputVal, Source: SourceInput}, nil

	case defaultValue != nil:
		if err := r.env.Set(envKey, *defaultValue); err != nil {
			return Value{}, err
		}
		return Value{Key: envKey, Value: *defaultValue, Source: SourceDefault}, nil
	}

	return Value{}, &domain.MissingConfigurationError{
		DisplayName: displayName,
		InputKey:    inputKey,
		EnvKey:      envKey,
	}
}

// present treats blank values as absent.
func present(v string, ok bool) (string, bool) {
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
