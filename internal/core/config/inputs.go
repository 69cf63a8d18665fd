package config

import (
	"strings"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
)

// =============================================================================
// Typed Input Helpers
// =============================================================================

// String returns the trimmed input value, or "" when it is absent.
func String(inputs Inputs, name string) string {
	v, _ := present(inputs.Input(name))
	return v
}

// Bool parses a boolean input. Absent inputs are false.
//
// Accepted values (case-insensitive): true, yes, 1, false, no, 0.
func Bool(inputs Inputs, name string) (bool, error) {
	v, ok := present(inputs.Input(name))
	if !ok {
		return false, nil
	}
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, &domain.InputError{Input: name, Value: v, Message: "not a boolean"}
}

// Lines splits a multi-line input into trimmed, non-blank lines.
func Lines(inputs Inputs, name string) []string {
	v, ok := present(inputs.Input(name))
	if !ok {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(v, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
