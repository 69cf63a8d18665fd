package deployment

import (
	"testing"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ParseAssignments Tests
// =============================================================================

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"API_URL=https://x.test?a=b", "EMPTY=", " SPACED =v"}, "env")
	require.NoError(t, err)

	assert.Equal(t, []EnvVar{
		{Key: "API_URL", Value: "https://x.test?a=b"},
		{Key: "EMPTY", Value: ""},
		{Key: "SPACED", Value: "v"},
	}, got)
}

func TestParseAssignments_Empty(t *testing.T) {
	got, err := ParseAssignments(nil, "env")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseAssignments_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no equals", "JUSTAKEY"},
		{"empty key", "=value"},
		{"bad key", "1ABC=x"},
		{"dash in key", "MY-KEY=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAssignments([]string{"OK=1", tt.line}, "buildEnv")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			var inputErr *domain.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, "buildEnv", inputErr.Input)
			assert.Equal(t, tt.line, inputErr.Value)
		})
	}
}

func TestEnvVar_String(t *testing.T) {
	assert.Equal(t, "A=b=c", EnvVar{Key: "A", Value: "b=c"}.String())
}

// =============================================================================
// SystemEnvs Tests
// =============================================================================

func TestSystemEnvs_SkipsEmptyValues(t *testing.T) {
	got := SystemEnvs(CIMetadata{CommitRef: "main", CommitSHA: "abc123"}, "")

	assert.Equal(t, []EnvVar{
		{Key: "VERCEL_GIT_COMMIT_REF", Value: "main"},
		{Key: "VERCEL_GIT_COMMIT_SHA", Value: "abc123"},
	}, got)
}

func TestSystemEnvs_FrameworkPrefixed(t *testing.T) {
	got := SystemEnvs(CIMetadata{CommitRef: "main", PullRequestID: "42"}, "nextjs")

	assert.Equal(t, []EnvVar{
		{Key: "VERCEL_GIT_COMMIT_REF", Value: "main"},
		{Key: "VERCEL_GIT_PULL_REQUEST_ID", Value: "42"},
		{Key: "NEXT_PUBLIC_VERCEL_GIT_COMMIT_REF", Value: "main"},
		{Key: "NEXT_PUBLIC_VERCEL_GIT_PULL_REQUEST_ID", Value: "42"},
	}, got)
}

func TestSystemEnvs_UnknownFramework(t *testing.T) {
	got := SystemEnvs(CIMetadata{RepoSlug: "web"}, "hugo")
	assert.Equal(t, []EnvVar{{Key: "VERCEL_GIT_REPO_SLUG", Value: "web"}}, got)
}

func TestSystemEnvs_AllFields(t *testing.T) {
	got := SystemEnvs(CIMetadata{
		Provider:      "TfsGit",
		RepoSlug:      "web",
		CommitRef:     "main",
		CommitSHA:     "abc",
		CommitMessage: "fix",
		AuthorName:    "Sam",
		PullRequestID: "7",
	}, "")
	assert.Len(t, got, 7)
}

func TestFrameworkPrefix(t *testing.T) {
	tests := []struct {
		framework string
		want      string
		ok        bool
	}{
		{"nextjs", "NEXT_PUBLIC_", true},
		{"create-react-app", "REACT_APP_", true},
		{"vite", "VITE_", true},
		{"sveltekit", "PUBLIC_", true},
		{"", "", false},
		{"hugo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.framework, func(t *testing.T) {
			got, ok := FrameworkPrefix(tt.framework)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
