// Package deployment provides pure functions for planning a deployment run.
//
// This package contains the functional core logic that turns resolved task
// settings into command lines for the platform CLI. All functions are pure
// (no I/O, no process state).
//
// # Functions
//
//   - Arguments: Build the argv for each stage (InstallArgs, PullArgs, DeployArgs, AliasArgs)
//   - Environment: Parse KEY=VALUE inputs (ParseAssignments)
//   - System envs: Expose CI identity to the build (SystemEnvs, FrameworkPrefix)
//   - Branch: Derive the branch identity from CI ref metadata (ResolveBranch)
//
// # Usage
//
// The imperative shell (internal/shell/orchestrator) uses these pure functions
// to plan each stage, then executes the commands through a runner.
//
//	args := deployment.DeployArgs(params)
//	result, err := runner.Run(ctx, runner.Command{Name: "vercel", Args: args})
package deployment
