// Package dns contains pure functions for hostname validation.
// This is part of the Functional Core - all functions are pure with no I/O.
package dns

import (
	"errors"
	"regexp"
	"strings"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrInvalidHostname = errors.New("invalid hostname format")
	ErrHostnameTooLong = errors.New("hostname must be under 253 characters")
	ErrLabelTooLong    = errors.New("hostname label must be at most 63 characters")
)

// RFC 1035 limits.
const (
	MaxLabelLength    = 63
	MaxHostnameLength = 253
)

// =============================================================================
// Validation
// =============================================================================

var labelRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?$`)

// ValidateHostname checks hostname against the RFC 1035 length limits and
// the letters-digits-hyphens label syntax.
func ValidateHostname(hostname string) error {
	hostname = strings.TrimSpace(strings.ToLower(hostname))
	if hostname == "" {
		return ErrInvalidHostname
	}
	if len(hostname) > MaxHostnameLength {
		return ErrHostnameTooLong
	}

	labels := strings.Split(hostname, ".")
	if len(labels) < 2 {
		return ErrInvalidHostname
	}
	for _, label := range labels {
		if len(label) > MaxLabelLength {
			return ErrLabelTooLong
		}
		if !labelRegex.MatchString(label) {
			return ErrInvalidHostname
		}
	}
	return nil
}

// FirstLabel returns the leftmost label of hostname.
func FirstLabel(hostname string) string {
	label, _, _ := strings.Cut(hostname, ".")
	return label
}
