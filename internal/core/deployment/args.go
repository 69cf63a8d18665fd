package deployment

import (
	"github.com/samber/lo"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
)

// =============================================================================
// Stage Arguments
// =============================================================================

// InstallArgs returns the npm arguments that install the platform CLI globally.
//
// Example:
//
//	InstallArgs("vercel", "32.1.0") // returns ["install", "-g", "vercel@32.1.0"]
func InstallArgs(pkg, version string) []string {
	ref := pkg
	if version != "" {
		ref = pkg + "@" + version
	}
	return []string{"install", "-g", ref}
}

// PullArgs returns the arguments that fetch project settings and environment
// variables for the target environment.
func PullArgs(target domain.Target, debug bool) []string {
	args := []string{
		"pull",
		"--yes",
		"--environment=" + target.Environment(),
		"--token=" + target.Token,
	}
	if target.CWD != "" {
		args = append(args, "--cwd="+target.CWD)
	}
	if debug {
		args = append(args, "--debug")
	}
	return args
}

// DeployParams collects everything that shapes the deploy command line.
type DeployParams struct {
	Target   domain.Target
	Label    string // custom environment name passed as --target
	Debug    bool
	Archive  bool
	Logs     bool
	Env      []EnvVar // runtime variables (--env)
	BuildEnv []EnvVar // build-time variables (--build-env)
	System   []EnvVar // exposed to both runtime and build
}

// DeployArgs returns the arguments for `vercel deploy`.
//
// System variables precede user supplied ones so that explicit inputs are
// passed last.
func DeployArgs(p DeployParams) []string {
	args := []string{"deploy"}
	if p.Target.Production {
		args = append(args, "--prod")
	}
	args = append(args, "--token="+p.Target.Token)
	if p.Target.CWD != "" {
		args = append(args, "--cwd="+p.Target.CWD)
	}
	if p.Label != "" {
		args = append(args, "--target="+p.Label)
	}
	if p.Debug {
		args = append(args, "--debug")
	}
	if p.Logs {
		args = append(args, "--logs")
	}
	if p.Archive {
		args = append(args, "--archive=tgz")
	}

	args = append(args, envFlags("--env", lo.Flatten([][]EnvVar{p.System, p.Env}))...)
	args = append(args, envFlags("--build-env", lo.Flatten([][]EnvVar{p.System, p.BuildEnv}))...)
	return args
}

// AliasArgs returns the arguments that point hostname at deployURL.
func AliasArgs(deployURL, hostname string, target domain.Target, debug bool) []string {
	args := []string{
		"alias",
		deployURL,
		hostname,
		"--token=" + target.Token,
		"--scope=" + target.OrgID,
	}
	if debug {
		args = append(args, "--debug")
	}
	return args
}

func envFlags(flag string, vars []EnvVar) []string {
	return lo.FlatMap(vars, func(v EnvVar, _ int) []string {
		return []string{flag, v.String()}
	})
}
