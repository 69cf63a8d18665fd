package deployment

import (
	"regexp"
	"strings"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
)

// =============================================================================
// Environment Assignments
// =============================================================================

// EnvVar is one KEY=VALUE assignment passed to the platform CLI.
type EnvVar struct {
	Key   string
	Value string
}

// String returns the assignment in KEY=VALUE form.
func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

var envKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseAssignments parses KEY=VALUE lines taken from the named input.
//
// The value is everything after the first "=", so values may contain "=".
// A line without "=" or with an invalid key is an *domain.InputError.
//
// Example:
//
//	ParseAssignments([]string{"API_URL=https://x?a=b"}, "env")
//	// Returns: []EnvVar{{Key: "API_URL", Value: "https://x?a=b"}}
func ParseAssignments(lines []string, input string) ([]EnvVar, error) {
	vars := make([]EnvVar, 0, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok {
			return nil, &domain.InputError{Input: input, Value: line, Message: "expected KEY=VALUE"}
		}
		if !envKeyRegex.MatchString(key) {
			return nil, &domain.InputError{Input: input, Value: line, Message: "invalid variable name"}
		}
		vars = append(vars, EnvVar{Key: key, Value: value})
	}
	return vars, nil
}
