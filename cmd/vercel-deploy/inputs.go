package main

import (
	"github.com/artpar/vercel-deploy-task/internal/core/config"
	"github.com/artpar/vercel-deploy-task/internal/core/deployment"
	"github.com/artpar/vercel-deploy-task/internal/core/domain"
	"github.com/artpar/vercel-deploy-task/internal/shell/azdo"
	"github.com/artpar/vercel-deploy-task/internal/shell/orchestrator"
)

// Task input names, as declared in task.json.
const (
	InputProjectID  = "vercelProjectId"
	InputOrgID      = "vercelOrgId"
	InputToken      = "vercelToken"
	InputCLIVersion = "vercelCLIVersion"
	InputCWD        = "vercelCWD"
	InputProduction = "production"
	InputDebug      = "debug"
	InputArchive    = "archive"
	InputLogs       = "logs"
	InputTarget     = "target"
	InputEnv        = "env"
	InputBuildEnv   = "buildEnv"
)

// ResolveRequest resolves every task input before anything runs.
func ResolveRequest(resolver *config.Resolver, inputs config.Inputs, store config.Store, cfg *Config) (orchestrator.Request, error) {
	var req orchestrator.Request

	projectID, err := resolver.Resolve(InputProjectID, "VERCEL_PROJECT_ID", "Vercel Project Id")
	if err != nil {
		return req, err
	}
	orgID, err := resolver.Resolve(InputOrgID, "VERCEL_ORG_ID", "Vercel Org Id")
	if err != nil {
		return req, err
	}
	token, err := resolver.Resolve(InputToken, "VERCEL_TOKEN", "Vercel Token")
	if err != nil {
		return req, err
	}
	version, err := resolver.ResolveWithDefault(InputCLIVersion, "VERCEL_CLI_VERSION", "Vercel CLI Version", cfg.CLI.DefaultVersion)
	if err != nil {
		return req, err
	}
	cwd, _, err := resolver.ResolveOptional(InputCWD, "VERCEL_CWD", "Working Directory")
	if err != nil {
		return req, err
	}

	flags := make(map[string]bool, 4)
	for _, name := range []string{InputProduction, InputDebug, InputArchive, InputLogs} {
		v, err := config.Bool(inputs, name)
		if err != nil {
			return req, err
		}
		flags[name] = v
	}

	env, err := deployment.ParseAssignments(config.Lines(inputs, InputEnv), InputEnv)
	if err != nil {
		return req, err
	}
	buildEnv, err := deployment.ParseAssignments(config.Lines(inputs, InputBuildEnv), InputBuildEnv)
	if err != nil {
		return req, err
	}

	branch := deployment.ResolveBranch(azdo.ReadRefMetadata(store))

	return orchestrator.Request{
		Target: domain.Target{
			Production: flags[InputProduction],
			CWD:        cwd.Value,
			OrgID:      orgID.Value,
			ProjectID:  projectID.Value,
			Token:      token.Value,
		},
		Branch:     branch,
		CLIVersion: version.Value,
		Label:      config.String(inputs, InputTarget),
		Debug:      flags[InputDebug],
		Archive:    flags[InputArchive],
		Logs:       flags[InputLogs],
		Env:        env,
		BuildEnv:   buildEnv,
		CI:         azdo.ReadCIMetadata(store, branch.Name),
	}, nil
}
