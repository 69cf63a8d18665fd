package domain

import "strings"

// =============================================================================
// Deployment Stages
// =============================================================================

// Stage identifies one step of the deployment sequence.
type Stage string

const (
	StageInstall Stage = "install"
	StagePull    Stage = "pull"
	StageLookup  Stage = "lookup"
	StageDeploy  Stage = "deploy"
	StageAlias   Stage = "alias"
	StageDone    Stage = "done"
)

// =============================================================================
// Deployment Target
// =============================================================================

// Target is the immutable description of where a run deploys to.
type Target struct {
	Production bool
	CWD        string // empty means the agent's working directory
	OrgID      string // team or user identifier
	ProjectID  string
	Token      string
}

// Environment returns the environment name used for `vercel pull`.
func (t Target) Environment() string {
	if t.Production {
		return "production"
	}
	return "preview"
}

// teamIDPrefix marks identifiers that belong to a team rather than a personal account.
const teamIDPrefix = "team_"

// IsTeamID reports whether ownerID has the team identifier shape.
func IsTeamID(ownerID string) bool {
	return strings.HasPrefix(ownerID, teamIDPrefix)
}

// =============================================================================
// Branch Identity
// =============================================================================

// Branch is the branch a build was triggered for.
// A zero Branch (empty Name) means the branch could not be determined.
type Branch struct {
	Ref  string // raw ref, e.g. refs/heads/feature/login
	Name string // normalized name, e.g. feature/login
}

// Known reports whether a branch name was determined.
func (b Branch) Known() bool {
	return b.Name != ""
}

// =============================================================================
// Project
// =============================================================================

// Project is the subset of platform project settings the task acts on.
type Project struct {
	Name                 string `json:"name"`
	Framework            string `json:"framework"`
	AutoExposeSystemEnvs bool   `json:"autoExposeSystemEnvs"`
}

// =============================================================================
// Deployment Outcome
// =============================================================================

// Outcome is the final result of a run. It is never mutated after creation.
type Outcome struct {
	Succeeded bool
	DeployURL string // canonical per-deployment URL
	FinalURL  string // alias URL for previews, DeployURL otherwise
	Aliased   bool
	Message   string
}

// NewSuccessOutcome creates the outcome for a completed run.
// An empty aliasURL falls back to the canonical deploy URL.
func NewSuccessOutcome(deployURL, aliasURL string) Outcome {
	final := deployURL
	if aliasURL != "" {
		final = aliasURL
	}
	return Outcome{
		Succeeded: true,
		DeployURL: deployURL,
		FinalURL:  final,
		Aliased:   aliasURL != "",
		Message:   "Successfully deployed to " + final,
	}
}

// NewFailureOutcome creates the outcome for a run that stopped on err.
func NewFailureOutcome(projectID string, err error) Outcome {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	label := projectID
	if label == "" {
		label = "project"
	}
	return Outcome{
		Succeeded: false,
		Message:   "Failed to deploy " + label + ".\n\nError:\n" + msg,
	}
}
