package azdo

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// =============================================================================
// Logging Commands
// =============================================================================

// TaskResult is the value of ##vso[task.complete result=...].
type TaskResult string

const (
	ResultSucceeded TaskResult = "Succeeded"
	ResultFailed    TaskResult = "Failed"
)

// IssueType is the severity of ##vso[task.logissue].
type IssueType string

const (
	IssueWarning IssueType = "warning"
	IssueError   IssueType = "error"
)

// Commands writes agent logging commands to the task's stdout.
// It is safe for concurrent use.
type Commands struct {
	mu  sync.Mutex
	out io.Writer
}

// NewCommands creates a command writer on out.
func NewCommands(out io.Writer) *Commands {
	return &Commands{out: out}
}

// SetVariable sets a pipeline variable. Output variables are visible to later
// jobs as <step>.<name>.
func (c *Commands) SetVariable(name, value string, isOutput bool) error {
	props := "variable=" + escapeProperty(name)
	if isOutput {
		props += ";isOutput=true"
	}
	return c.write("task.setvariable", props, value)
}

// SetSecret registers value so the agent masks it in all further output.
func (c *Commands) SetSecret(value string) error {
	if value == "" {
		return nil
	}
	return c.write("task.setsecret", "", value)
}

// Complete sets the task result.
func (c *Commands) Complete(result TaskResult, message string) error {
	return c.write("task.complete", "result="+string(result)+";", message)
}

// LogIssue records a warning or error on the build summary.
func (c *Commands) LogIssue(typ IssueType, message string) error {
	return c.write("task.logissue", "type="+string(typ), message)
}

// Println prints a plain log line.
func (c *Commands) Println(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, message)
	return err
}

func (c *Commands) write(area, props, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := "##vso[" + area
	if props != "" {
		line += " " + props
	}
	line += "]" + escapeData(message)

	if _, err := fmt.Fprintln(c.out, line); err != nil {
		return fmt.Errorf("failed to write %s: %w", area, err)
	}
	return nil
}

var (
	dataEscaper = strings.NewReplacer(
		"%", "%AZP25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%AZP25",
		"\r", "%0D",
		"\n", "%0A",
		"]", "%5D",
		";", "%3B",
	)
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
