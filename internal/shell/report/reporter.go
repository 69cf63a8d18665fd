// Package report publishes a run's outcome to the pipeline: output variables
// for downstream tasks, the log line, and the task result.
package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
	"github.com/artpar/vercel-deploy-task/internal/shell/azdo"
)

// Output variable names read by downstream tasks.
const (
	OutputMessage     = "deploymentTaskMessage"
	OutputURL         = "deploymentURL"
	OutputOriginalURL = "originalDeploymentURL"
)

// Sink receives the pipeline commands a report is made of.
type Sink interface {
	SetVariable(name, value string, isOutput bool) error
	Println(message string) error
	Complete(result azdo.TaskResult, message string) error
}

// Reporter publishes outcomes to a Sink.
type Reporter struct {
	sink   Sink
	logger *slog.Logger
}

// NewReporter creates a new reporter.
func NewReporter(sink Sink, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{sink: sink, logger: logger}
}

// Report publishes outcome. runErr is the error that stopped the run, if any;
// its message becomes the failed task result.
func (r *Reporter) Report(outcome domain.Outcome, runErr error) error {
	if !outcome.Succeeded {
		return r.fail(outcome.Message, runErr)
	}

	errs := []error{
		r.sink.SetVariable(OutputMessage, outcome.Message, true),
		r.sink.SetVariable(OutputURL, outcome.FinalURL, true),
		r.sink.SetVariable(OutputOriginalURL, outcome.DeployURL, true),
		r.sink.Println(outcome.Message),
		r.sink.Complete(azdo.ResultSucceeded, "Success"),
	}
	return errors.Join(errs...)
}

// ReportPanic publishes a failure for a value recovered from a panic.
func (r *Reporter) ReportPanic(projectID string, v any) error {
	err := fmt.Errorf("Unknown error thrown: %v", v)
	r.logger.Error("unexpected failure", "error", err)
	return r.fail(domain.NewFailureOutcome(projectID, err).Message, err)
}

func (r *Reporter) fail(message string, runErr error) error {
	result := "unknown error"
	if runErr != nil {
		result = runErr.Error()
	}
	errs := []error{
		r.sink.SetVariable(OutputMessage, message, true),
		r.sink.Complete(azdo.ResultFailed, result),
	}
	return errors.Join(errs...)
}
