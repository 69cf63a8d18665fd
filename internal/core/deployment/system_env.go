package deployment

import "github.com/samber/lo"

// =============================================================================
// System Environment Exposure
// =============================================================================

// CIMetadata is the build identity read from the pipeline runtime.
type CIMetadata struct {
	Provider      string // Build.Repository.Provider
	RepoSlug      string // Build.Repository.Name
	CommitRef     string // normalized branch name
	CommitSHA     string // Build.SourceVersion
	CommitMessage string // Build.SourceVersionMessage
	AuthorName    string // Build.RequestedFor
	PullRequestID string // System.PullRequest.PullRequestId
}

// frameworkPrefixes lists the client-exposed variable prefix per framework slug.
var frameworkPrefixes = map[string]string{
	"nextjs":           "NEXT_PUBLIC_",
	"create-react-app": "REACT_APP_",
	"gatsby":           "GATSBY_",
	"nuxtjs":           "NUXT_ENV_",
	"vue":              "VUE_APP_",
	"vite":             "VITE_",
	"sveltekit":        "PUBLIC_",
	"sveltekit-1":      "PUBLIC_",
	"astro":            "PUBLIC_",
	"redwoodjs":        "REDWOOD_ENV_",
	"sanity":           "SANITY_STUDIO_",
}

// FrameworkPrefix returns the variable prefix a framework exposes to client code.
func FrameworkPrefix(framework string) (string, bool) {
	prefix, ok := frameworkPrefixes[framework]
	return prefix, ok
}

// SystemEnvs returns the CI identity variables for a build. Empty metadata
// fields are skipped. For recognized frameworks every variable is also
// returned with the framework prefix, after the unprefixed set.
func SystemEnvs(meta CIMetadata, framework string) []EnvVar {
	candidates := []EnvVar{
		{Key: "VERCEL_GIT_PROVIDER", Value: meta.Provider},
		{Key: "VERCEL_GIT_REPO_SLUG", Value: meta.RepoSlug},
		{Key: "VERCEL_GIT_COMMIT_REF", Value: meta.CommitRef},
		{Key: "VERCEL_GIT_COMMIT_SHA", Value: meta.CommitSHA},
		{Key: "VERCEL_GIT_COMMIT_MESSAGE", Value: meta.CommitMessage},
		{Key: "VERCEL_GIT_COMMIT_AUTHOR_NAME", Value: meta.AuthorName},
		{Key: "VERCEL_GIT_PULL_REQUEST_ID", Value: meta.PullRequestID},
	}

	vars := lo.Filter(candidates, func(v EnvVar, _ int) bool {
		return v.Value != ""
	})

	prefix, ok := FrameworkPrefix(framework)
	if !ok {
		return vars
	}

	base := len(vars)
	for i := 0; i < base; i++ {
		vars = append(vars, EnvVar{Key: prefix + vars[i].Key, Value: vars[i].Value})
	}
	return vars
}
