package deployment

import (
	"strings"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
)

// =============================================================================
// Branch Identity
// =============================================================================

// BuildReasonPullRequest is the Build.Reason value for pull request validation builds.
const BuildReasonPullRequest = "PullRequest"

const headsPrefix = "refs/heads/"

// RefMetadata is the raw ref information the pipeline runtime exposes.
type RefMetadata struct {
	BuildReason      string // Build.Reason
	PullRequestRef   string // System.PullRequest.SourceBranch
	SourceBranch     string // Build.SourceBranch
	SourceBranchName string // Build.SourceBranchName
}

// ResolveBranch derives the branch identity for a build.
//
// Pull request builds use the pull request's source branch; all other builds
// use the pushed ref, or Build.SourceBranchName when no ref is available.
// Refs outside refs/heads/ (tags, merge refs) leave the branch unknown and the
// zero Branch is returned.
//
// Example:
//
//	ResolveBranch(RefMetadata{BuildReason: "PullRequest", PullRequestRef: "refs/heads/feature/a"})
//	// Returns: Branch{Ref: "refs/heads/feature/a", Name: "feature/a"}
func ResolveBranch(meta RefMetadata) domain.Branch {
	if meta.BuildReason == BuildReasonPullRequest {
		return branchFromRef(meta.PullRequestRef)
	}

	if b := branchFromRef(meta.SourceBranch); b.Known() {
		return b
	}

	if strings.TrimSpace(meta.SourceBranch) == "" {
		if name := strings.TrimSpace(meta.SourceBranchName); name != "" {
			return domain.Branch{Name: name}
		}
	}
	return domain.Branch{}
}

func branchFromRef(ref string) domain.Branch {
	ref = strings.TrimSpace(ref)
	name, ok := strings.CutPrefix(ref, headsPrefix)
	if !ok || name == "" {
		return domain.Branch{}
	}
	return domain.Branch{Ref: ref, Name: name}
}
