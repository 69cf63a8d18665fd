package main

import (
	"fmt"
	"io"
	"os"

	"github.com/artpar/vercel-deploy-task/internal/shell/azdo"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess      = 0
	ExitConfigError  = 1
	ExitStageError   = 2
	ExitLookupError  = 3
	ExitUnknownError = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		inputs: azdo.EnvInputs{},
		store:  azdo.EnvStore{},
	}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !a.reported {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		if a.exitCode == ExitSuccess {
			return ExitConfigError
		}
	}
	return a.exitCode
}
