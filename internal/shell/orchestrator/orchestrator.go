// Package orchestrator drives a deployment through the platform CLI:
// install, pull, lookup, deploy and, for preview builds, alias.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/artpar/vercel-deploy-task/internal/core/alias"
	"github.com/artpar/vercel-deploy-task/internal/core/deployment"
	"github.com/artpar/vercel-deploy-task/internal/core/dns"
	"github.com/artpar/vercel-deploy-task/internal/core/domain"
	"github.com/artpar/vercel-deploy-task/internal/shell/runner"
	"github.com/artpar/vercel-deploy-task/internal/shell/vercel"
)

// =============================================================================
// Types
// =============================================================================

// Tools names the executables the orchestrator invokes.
type Tools struct {
	NPM     string // package manager used to install the CLI
	Binary  string // installed CLI executable
	Package string // npm package providing the CLI
}

// DefaultTools returns the standard npm/vercel tool names.
func DefaultTools() Tools {
	return Tools{NPM: "npm", Binary: "vercel", Package: "vercel"}
}

// Request is everything a single run needs. It is built once from resolved
// configuration and never modified.
type Request struct {
	Target     domain.Target
	Branch     domain.Branch
	CLIVersion string
	Label      string // custom environment passed as --target
	Debug      bool
	Archive    bool
	Logs       bool
	Env        []deployment.EnvVar
	BuildEnv   []deployment.EnvVar
	CI         deployment.CIMetadata
}

// wantsAlias reports whether the run ends with an alias stage.
func (r Request) wantsAlias() bool {
	return !r.Target.Production && r.Branch.Known()
}

// =============================================================================
// Orchestrator
// =============================================================================

// Orchestrator runs the deployment stages in order.
type Orchestrator struct {
	runner    runner.Runner
	lookup    vercel.Client
	logger    *slog.Logger
	tools     Tools
	aliasOpts alias.Options
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTools overrides the executable names.
func WithTools(t Tools) Option {
	return func(o *Orchestrator) {
		o.tools = t
	}
}

// WithAliasOptions overrides the alias hostname layout.
func WithAliasOptions(opts alias.Options) Option {
	return func(o *Orchestrator) {
		o.aliasOpts = opts
	}
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(r runner.Runner, lookup vercel.Client, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		runner:    r,
		lookup:    lookup,
		logger:    logger,
		tools:     DefaultTools(),
		aliasOpts: alias.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes every stage and returns the outcome. On failure the returned
// error is the one that stopped the run and the outcome carries its message.
func (o *Orchestrator) Run(ctx context.Context, req Request) (domain.Outcome, error) {
	outcome, err := o.run(ctx, req)
	if err != nil {
		return domain.NewFailureOutcome(req.Target.ProjectID, err), err
	}
	return outcome, nil
}

func (o *Orchestrator) run(ctx context.Context, req Request) (domain.Outcome, error) {
	logger := o.logger.With(
		"project_id", req.Target.ProjectID,
		"environment", req.Target.Environment(),
	)

	// 1. Install the CLI
	if err := o.install(ctx, logger, req.CLIVersion); err != nil {
		return domain.Outcome{}, err
	}

	// 2. Pull project settings
	o.pull(ctx, logger, req)

	// 3. Look up project settings and, when aliasing, the staging prefix
	project, stagingPrefix, err := o.lookups(ctx, logger, req)
	if err != nil {
		return domain.Outcome{}, err
	}

	// 4. Deploy
	deployURL, err := o.deploy(ctx, logger, req, project)
	if err != nil {
		return domain.Outcome{}, err
	}

	// 5. Alias
	if req.Target.Production {
		logger.Info("deployment complete", "stage", domain.StageDone, "url", deployURL)
		return domain.NewSuccessOutcome(deployURL, ""), nil
	}
	if !req.Branch.Known() {
		logger.Warn("could not determine branch name, skipping alias", "stage", domain.StageAlias)
		return domain.NewSuccessOutcome(deployURL, ""), nil
	}

	aliasURL, err := o.alias(ctx, logger, req, deployURL, project.Name, stagingPrefix)
	if err != nil {
		return domain.Outcome{}, err
	}

	logger.Info("deployment complete", "stage", domain.StageDone, "url", aliasURL)
	return domain.NewSuccessOutcome(deployURL, aliasURL), nil
}

// =============================================================================
// Stages
// =============================================================================

func (o *Orchestrator) install(ctx context.Context, logger *slog.Logger, version string) error {
	cmd := runner.Command{
		Name: o.tools.NPM,
		Args: deployment.InstallArgs(o.tools.Package, version),
	}
	logger.Info("installing CLI", "stage", domain.StageInstall, "package", o.tools.Package, "version", version)

	res, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrToolInstallFailed, err)
	}
	if !res.Success() {
		return domain.NewStageError(domain.StageInstall, res.ExitCode, res.Stderr)
	}
	return nil
}

// pull never fails the run. A missing remote configuration is tolerated and
// the deploy stage reports any real problem.
func (o *Orchestrator) pull(ctx context.Context, logger *slog.Logger, req Request) {
	cmd := runner.Command{
		Name: o.tools.Binary,
		Args: deployment.PullArgs(req.Target, req.Debug),
	}
	logger.Info("pulling project settings", "stage", domain.StagePull)

	res, err := o.runner.Run(ctx, cmd)
	switch {
	case err != nil:
		logger.Warn("pull could not be started, continuing", "stage", domain.StagePull, "error", err)
	case !res.Success():
		logger.Warn("pull failed, continuing",
			"stage", domain.StagePull,
			"exit_code", res.ExitCode,
			"stderr", strings.TrimSpace(res.Stderr),
		)
	}
}

// lookups issues the two independent platform reads concurrently.
func (o *Orchestrator) lookups(ctx context.Context, logger *slog.Logger, req Request) (domain.Project, string, error) {
	target := req.Target
	logger.Info("looking up project", "stage", domain.StageLookup, "alias", req.wantsAlias())

	var (
		project       domain.Project
		stagingPrefix string
		faults        panicCapture
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(faults.guard(func() error {
		p, err := o.lookup.GetProject(gctx, target.ProjectID, target.OrgID, target.Token)
		if err != nil {
			return err
		}
		project = p
		return nil
	}))
	if req.wantsAlias() {
		g.Go(faults.guard(func() error {
			prefix, err := o.lookup.GetStagingPrefix(gctx, target.OrgID, target.Token)
			if err != nil {
				return err
			}
			stagingPrefix = prefix
			return nil
		}))
	}

	err := g.Wait()
	faults.rethrow()
	if err != nil {
		if !errors.Is(err, domain.ErrLookupFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
		}
		return domain.Project{}, "", err
	}

	logger.Debug("project resolved",
		"name", project.Name,
		"framework", project.Framework,
		"auto_expose_system_envs", project.AutoExposeSystemEnvs,
	)
	return project, stagingPrefix, nil
}

func (o *Orchestrator) deploy(ctx context.Context, logger *slog.Logger, req Request, project domain.Project) (string, error) {
	params := deployment.DeployParams{
		Target:   req.Target,
		Label:    req.Label,
		Debug:    req.Debug,
		Archive:  req.Archive,
		Logs:     req.Logs,
		Env:      req.Env,
		BuildEnv: req.BuildEnv,
	}
	if project.AutoExposeSystemEnvs {
		params.System = deployment.SystemEnvs(req.CI, project.Framework)
	}

	cmd := runner.Command{
		Name: o.tools.Binary,
		Args: deployment.DeployArgs(params),
	}
	logger.Info("deploying",
		"stage", domain.StageDeploy,
		"env", len(req.Env),
		"build_env", len(req.BuildEnv),
		"system_env", len(params.System),
	)

	res, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDeployFailed, err)
	}
	if !res.Success() {
		return "", domain.NewStageError(domain.StageDeploy, res.ExitCode, res.Stderr)
	}

	deployURL := lastLine(res.Stdout)
	if deployURL == "" {
		return "", fmt.Errorf("%w: no deployment URL was printed", domain.ErrDeployFailed)
	}
	return deployURL, nil
}

func (o *Orchestrator) alias(ctx context.Context, logger *slog.Logger, req Request, deployURL, projectName, stagingPrefix string) (string, error) {
	if projectName == "" {
		projectName = req.Target.ProjectID
	}
	hostname := alias.Build(projectName, req.Branch.Name, stagingPrefix, o.aliasOpts)
	if err := dns.ValidateHostname(hostname); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrAliasFailed, hostname, err)
	}

	cmd := runner.Command{
		Name: o.tools.Binary,
		Args: deployment.AliasArgs(deployURL, hostname, req.Target, req.Debug),
	}
	logger.Info("assigning alias",
		"stage", domain.StageAlias,
		"branch", req.Branch.Name,
		"hostname", hostname,
		"label_length", len(dns.FirstLabel(hostname)),
	)

	res, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAliasFailed, err)
	}
	if !res.Success() {
		return "", domain.NewStageError(domain.StageAlias, res.ExitCode, res.Stderr)
	}
	return alias.URL(hostname), nil
}

// panicCapture carries the first panic of a lookup goroutine back to the
// goroutine that waits on the group, where the process boundary recovers it.
type panicCapture struct {
	once   sync.Once
	value  any
	caught bool
}

var errLookupPanicked = errors.New("lookup panicked")

func (p *panicCapture) guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if v := recover(); v != nil {
				p.once.Do(func() {
					p.value = v
					p.caught = true
				})
				err = errLookupPanicked
			}
		}()
		return fn()
	}
}

// rethrow must only be called after the group's Wait returned.
func (p *panicCapture) rethrow() {
	if p.caught {
		panic(p.value)
	}
}

// lastLine returns the last non-blank line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
