// Package azdo adapts the Azure Pipelines agent runtime: task inputs,
// pipeline variables and the ##vso logging-command protocol.
package azdo

import (
	"fmt"
	"os"
	"strings"

	"github.com/artpar/vercel-deploy-task/internal/core/deployment"
)

// =============================================================================
// Environment Store
// =============================================================================

// EnvStore is the process environment as a configuration store.
type EnvStore struct{}

// Get returns the value of key if it is set.
func (EnvStore) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set writes key into the process environment.
func (EnvStore) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// =============================================================================
// Task Inputs
// =============================================================================

// EnvInputs reads task inputs the way the agent exposes them:
// input "vercelProjectId" arrives as INPUT_VERCELPROJECTID.
type EnvInputs struct{}

// Input returns the raw value of a task input if the agent set it.
func (EnvInputs) Input(name string) (string, bool) {
	return os.LookupEnv(InputKey(name))
}

// InputKey returns the environment variable carrying input name.
func InputKey(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Variable returns the environment variable carrying a pipeline variable.
//
// Example:
//
//	Variable("Build.Reason") // returns "BUILD_REASON"
func Variable(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, ".", "_"))
}

// =============================================================================
// Pipeline Metadata
// =============================================================================

// Getter is the read half of a configuration store.
type Getter interface {
	Get(key string) (string, bool)
}

func lookup(g Getter, name string) string {
	v, _ := g.Get(Variable(name))
	return strings.TrimSpace(v)
}

// ReadRefMetadata collects the ref variables branch identity is derived from.
func ReadRefMetadata(g Getter) deployment.RefMetadata {
	return deployment.RefMetadata{
		BuildReason:      lookup(g, "Build.Reason"),
		PullRequestRef:   lookup(g, "System.PullRequest.SourceBranch"),
		SourceBranch:     lookup(g, "Build.SourceBranch"),
		SourceBranchName: lookup(g, "Build.SourceBranchName"),
	}
}

// providers maps Build.Repository.Provider values to platform git provider names.
var providers = map[string]string{
	"tfsgit":           "azure",
	"github":           "github",
	"githubenterprise": "github",
	"bitbucket":        "bitbucket",
	"git":              "git",
}

// ReadCIMetadata collects the build identity exposed to deployments.
// commitRef is the already normalized branch name.
func ReadCIMetadata(g Getter, commitRef string) deployment.CIMetadata {
	provider := strings.ToLower(lookup(g, "Build.Repository.Provider"))
	if mapped, ok := providers[provider]; ok {
		provider = mapped
	}

	return deployment.CIMetadata{
		Provider:      provider,
		RepoSlug:      lookup(g, "Build.Repository.Name"),
		CommitRef:     commitRef,
		CommitSHA:     lookup(g, "Build.SourceVersion"),
		CommitMessage: lookup(g, "Build.SourceVersionMessage"),
		AuthorName:    lookup(g, "Build.RequestedFor"),
		PullRequestID: lookup(g, "System.PullRequest.PullRequestId"),
	}
}
