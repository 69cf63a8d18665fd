package domain

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Pre-flight errors
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrInvalidInput         = errors.New("invalid input")

	// Stage errors
	ErrToolInstallFailed = errors.New("tool install failed")
	ErrDeployFailed      = errors.New("deploy failed")
	ErrAliasFailed       = errors.New("alias failed")

	// Platform API errors
	ErrLookupFailed = errors.New("lookup failed")
)

// MissingConfigurationError names both sources that were consulted for a value.
type MissingConfigurationError struct {
	DisplayName string
	InputKey    string
	EnvKey      string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("%s must be set either as the %q input or the %s environment variable",
		e.DisplayName, e.InputKey, e.EnvKey)
}

func (e *MissingConfigurationError) Unwrap() error {
	return ErrMissingConfiguration
}

// InputError reports an input value that could not be parsed.
type InputError struct {
	Input   string
	Value   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %s: %q", e.Input, e.Message, e.Value)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// StageError wraps a non-zero exit of an external command.
type StageError struct {
	Stage    Stage
	ExitCode int
	Stderr   string
	Err      error // one of the stage sentinels
}

func (e *StageError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s failed with exit code %d", e.Stage, e.ExitCode)
	}
	return fmt.Sprintf("%s failed with exit code %d. Error: %s", e.Stage, e.ExitCode, stderr)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError builds the StageError for stage, picking the matching sentinel.
func NewStageError(stage Stage, exitCode int, stderr string) *StageError {
	var sentinel error
	switch stage {
	case StageInstall:
		sentinel = ErrToolInstallFailed
	case StageDeploy:
		sentinel = ErrDeployFailed
	case StageAlias:
		sentinel = ErrAliasFailed
	}
	return &StageError{
		Stage:    stage,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      sentinel,
	}
}

// LookupError is returned when the platform API answers with a non-200 status.
type LookupError struct {
	Op         string // e.g. "get project"
	StatusCode int
	Message    string
}

func (e *LookupError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: platform API returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: platform API returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupFailed
}
