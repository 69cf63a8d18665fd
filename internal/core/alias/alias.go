// Package alias derives stable preview hostnames from a project and branch name.
// This is part of the Functional Core - all functions are pure with no I/O.
package alias

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// =============================================================================
// Options
// =============================================================================

const (
	// DefaultSuffix is the platform domain preview aliases live under.
	DefaultSuffix = "vercel.app"

	// DefaultBudget is the number of characters shared by the escaped project
	// name, branch name and staging prefix. 63 - len(".vercel.app") - 2 hyphens
	// leaves 50; the result stays within the 63 character DNS label limit.
	DefaultBudget = 50
)

// Options controls the hostname layout.
type Options struct {
	Suffix string // domain without leading dot
	Budget int
}

// DefaultOptions returns the options for *.vercel.app aliases.
func DefaultOptions() Options {
	return Options{
		Suffix: DefaultSuffix,
		Budget: DefaultBudget,
	}
}

func (o Options) withDefaults() Options {
	if o.Suffix == "" {
		o.Suffix = DefaultSuffix
	}
	o.Suffix = strings.TrimPrefix(o.Suffix, ".")
	if o.Budget <= 0 {
		o.Budget = DefaultBudget
	}
	return o
}

// =============================================================================
// Escaping
// =============================================================================

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// Escape replaces every run of characters outside [A-Za-z0-9-] with a single
// hyphen and lowercases the result.
//
// Example:
//
//	Escape("feature/PREFIX-123") // returns "feature-prefix-123"
//	Escape("a  b__c")            // returns "a-b-c"
func Escape(s string) string {
	return strings.ToLower(unsafeRun.ReplaceAllString(s, "-"))
}

// =============================================================================
// Hostname Building
// =============================================================================

// Build returns the alias hostname for a branch deployment.
//
// Pattern: {project}-{branch}-{stagingPrefix}.{suffix}
//
// When the escaped branch name does not fit the budget, the staging prefix is
// dropped and its space (plus its joining hyphen) is given to the branch name,
// which is then cut to length with at most one trailing hyphen removed.
// A project name longer than the budget is itself cut to the budget first.
// Pattern: {project}-{truncatedBranch}.{suffix}
//
// Example:
//
//	Build("foo", "main", "bar", DefaultOptions())
//	// returns "foo-main-bar.vercel.app"
//
//	Build("longer-project-name", "feature/PREFIX-12345-my-feature-branch-name", "staging-prefix", DefaultOptions())
//	// returns "longer-project-name-feature-prefix-12345-my-feature.vercel.app"
func Build(projectName, branchName, stagingPrefix string, opts Options) string {
	opts = opts.withDefaults()

	project := Escape(projectName)
	if len(project) > opts.Budget {
		project = truncate(project, opts.Budget)
	}
	branch := Escape(branchName)

	allowedBranchLength := opts.Budget - len(project) - len(stagingPrefix)

	if len(branch) <= allowedBranchLength {
		return join(opts.Suffix, project, branch, stagingPrefix)
	}

	extendedLength := allowedBranchLength + len(stagingPrefix) + 1
	return join(opts.Suffix, project, truncate(branch, extendedLength))
}

// truncate cuts s to n bytes and strips exactly one trailing hyphen.
// s is already escaped, so bytes and characters coincide.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		s = s[:n]
	}
	return strings.TrimSuffix(s, "-")
}

// join hyphenates the non-empty parts and appends the suffix.
func join(suffix string, parts ...string) string {
	return strings.Join(lo.Compact(parts), "-") + "." + suffix
}

// URL returns the https URL for an alias hostname.
func URL(hostname string) string {
	return "https://" + hostname
}
