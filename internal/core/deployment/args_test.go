package deployment

import (
	"testing"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

var testTarget = domain.Target{
	OrgID:     "team_abc",
	ProjectID: "prj_123",
	Token:     "tok",
}

// =============================================================================
// InstallArgs Tests
// =============================================================================

func TestInstallArgs(t *testing.T) {
	assert.Equal(t, []string{"install", "-g", "vercel@latest"}, InstallArgs("vercel", "latest"))
	assert.Equal(t, []string{"install", "-g", "vercel@32.1.0"}, InstallArgs("vercel", "32.1.0"))
	assert.Equal(t, []string{"install", "-g", "vercel"}, InstallArgs("vercel", ""))
}

// =============================================================================
// PullArgs Tests
// =============================================================================

func TestPullArgs_Preview(t *testing.T) {
	got := PullArgs(testTarget, false)
	assert.Equal(t, []string{"pull", "--yes", "--environment=preview", "--token=tok"}, got)
}

func TestPullArgs_ProductionDebugCWD(t *testing.T) {
	target := testTarget
	target.Production = true
	target.CWD = "apps/web"

	got := PullArgs(target, true)
	assert.Equal(t, []string{"pull", "--yes", "--environment=production", "--token=tok", "--cwd=apps/web", "--debug"}, got)
}

// =============================================================================
// DeployArgs Tests
// =============================================================================

func TestDeployArgs_Minimal(t *testing.T) {
	got := DeployArgs(DeployParams{Target: testTarget})
	assert.Equal(t, []string{"deploy", "--token=tok"}, got)
}

func TestDeployArgs_AllFlags(t *testing.T) {
	target := testTarget
	target.Production = true
	target.CWD = "site"

	got := DeployArgs(DeployParams{
		Target:   target,
		Label:    "staging",
		Debug:    true,
		Archive:  true,
		Logs:     true,
		Env:      []EnvVar{{Key: "A", Value: "1"}},
		BuildEnv: []EnvVar{{Key: "B", Value: "2"}},
		System:   []EnvVar{{Key: "VERCEL_GIT_COMMIT_REF", Value: "main"}},
	})

	assert.Equal(t, []string{
		"deploy", "--prod", "--token=tok", "--cwd=site", "--target=staging",
		"--debug", "--logs", "--archive=tgz",
		"--env", "VERCEL_GIT_COMMIT_REF=main", "--env", "A=1",
		"--build-env", "VERCEL_GIT_COMMIT_REF=main", "--build-env", "B=2",
	}, got)
}

func TestDeployArgs_DoesNotMutateInputs(t *testing.T) {
	system := make([]EnvVar, 1, 4)
	system[0] = EnvVar{Key: "S", Value: "1"}

	_ = DeployArgs(DeployParams{
		Target:   testTarget,
		System:   system,
		Env:      []EnvVar{{Key: "E", Value: "2"}},
		BuildEnv: []EnvVar{{Key: "B", Value: "3"}},
	})

	assert.Len(t, system, 1)
	assert.Equal(t, EnvVar{}, system[:2][1])
}

// =============================================================================
// AliasArgs Tests
// =============================================================================

func TestAliasArgs(t *testing.T) {
	got := AliasArgs("https://app-x1.vercel.app", "app-main-team.vercel.app", testTarget, false)
	assert.Equal(t, []string{"alias", "https://app-x1.vercel.app", "app-main-team.vercel.app", "--token=tok", "--scope=team_abc"}, got)

	got = AliasArgs("https://app-x1.vercel.app", "app-main-team.vercel.app", testTarget, true)
	assert.Equal(t, "--debug", got[len(got)-1])
}
