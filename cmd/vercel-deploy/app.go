package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/artpar/vercel-deploy-task/internal/core/alias"
	"github.com/artpar/vercel-deploy-task/internal/core/config"
	"github.com/artpar/vercel-deploy-task/internal/core/dns"
	"github.com/artpar/vercel-deploy-task/internal/core/domain"
	"github.com/artpar/vercel-deploy-task/internal/shell/azdo"
	"github.com/artpar/vercel-deploy-task/internal/shell/orchestrator"
	"github.com/artpar/vercel-deploy-task/internal/shell/report"
	"github.com/artpar/vercel-deploy-task/internal/shell/runner"
	"github.com/artpar/vercel-deploy-task/internal/shell/vercel"
)

// app holds the process collaborators. Tests replace runner and lookup.
type app struct {
	stdout io.Writer
	stderr io.Writer
	inputs config.Inputs
	store  config.Store
	runner runner.Runner // nil means real processes
	lookup vercel.Client // nil means the configured platform API

	configPath string
	exitCode   int
	reported   bool // the failure was already published to the pipeline
}

// =============================================================================
// Commands
// =============================================================================

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "vercel-deploy",
		Short:         "Deploy a project to Vercel from an Azure Pipelines job",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.deploy(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")

	root.AddCommand(&cobra.Command{
		Use:   "deploy",
		Short: "Install the CLI, deploy, and alias preview builds (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.deploy(cmd.Context())
		},
	})
	root.AddCommand(newAliasCmd(a))
	return root
}

func newAliasCmd(a *app) *cobra.Command {
	var project, branch, stagingPrefix string

	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Print the preview alias hostname for a project and branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				a.exitCode = ExitConfigError
				return err
			}

			hostname := alias.Build(project, branch, stagingPrefix, cfg.Alias.Options())
			if err := dns.ValidateHostname(hostname); err != nil {
				a.exitCode = ExitConfigError
				return fmt.Errorf("%s: %w", hostname, err)
			}

			fmt.Fprintln(a.stdout, hostname)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch name")
	cmd.Flags().StringVar(&stagingPrefix, "staging-prefix", "", "Owner staging prefix")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("branch")
	return cmd
}

// =============================================================================
// Deploy
// =============================================================================

// deploy runs the task and publishes its result. Failures are reported to the
// pipeline; the returned error only carries them to the exit code.
func (a *app) deploy(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	commands := azdo.NewCommands(a.stdout)

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		err = fmt.Errorf("configuration error: %w", err)
		outcome := domain.NewFailureOutcome(config.String(a.inputs, InputProjectID), err)
		if rerr := report.NewReporter(commands, nil).Report(outcome, err); rerr != nil {
			fmt.Fprintf(a.stderr, "failed to publish result: %v\n", rerr)
		}
		a.exitCode = ExitConfigError
		a.reported = true
		return err
	}

	logger := SetupLogger(cfg, a.stdout, commands).With("run_id", uuid.NewString())
	reporter := report.NewReporter(commands, logger)

	projectID := config.String(a.inputs, InputProjectID)
	defer func() {
		if v := recover(); v != nil {
			_ = reporter.ReportPanic(projectID, v)
			a.exitCode = ExitUnknownError
			a.reported = true
		}
	}()

	logger.Info("starting vercel-deploy", "version", Version)

	resolver := config.NewResolver(a.inputs, a.store, logger)
	req, err := ResolveRequest(resolver, a.inputs, a.store, cfg)
	if err != nil {
		return a.finish(reporter, logger, domain.NewFailureOutcome(projectID, err), err)
	}
	if err := commands.SetSecret(req.Target.Token); err != nil {
		logger.Error("failed to register token as secret", "error", err)
	}
	projectID = req.Target.ProjectID

	orch := orchestrator.NewOrchestrator(a.runnerFor(logger), a.lookupFor(cfg), logger,
		orchestrator.WithTools(cfg.CLI.Tools()),
		orchestrator.WithAliasOptions(cfg.Alias.Options()),
	)

	outcome, err := orch.Run(ctx, req)
	return a.finish(reporter, logger, outcome, err)
}

func (a *app) finish(reporter *report.Reporter, logger *slog.Logger, outcome domain.Outcome, runErr error) error {
	if err := reporter.Report(outcome, runErr); err != nil {
		logger.Error("failed to publish result", "error", err)
	}
	a.exitCode = exitCode(runErr)
	a.reported = true
	return runErr
}

func (a *app) runnerFor(logger *slog.Logger) runner.Runner {
	if a.runner != nil {
		return a.runner
	}
	return runner.NewExecRunner(runner.WithConsole(a.stdout, a.stderr), runner.WithLogger(logger))
}

func (a *app) lookupFor(cfg *Config) vercel.Client {
	if a.lookup != nil {
		return a.lookup
	}
	return vercel.NewClient(cfg.Platform.Client())
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, domain.ErrMissingConfiguration), errors.Is(err, domain.ErrInvalidInput):
		return ExitConfigError
	case errors.Is(err, domain.ErrLookupFailed):
		return ExitLookupError
	case errors.Is(err, domain.ErrToolInstallFailed),
		errors.Is(err, domain.ErrDeployFailed),
		errors.Is(err, domain.ErrAliasFailed):
		return ExitStageError
	default:
		return ExitUnknownError
	}
}
