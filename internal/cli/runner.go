package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const redactedValue = "***"

// CommandResult is the outcome of one process invocation.
type CommandResult struct {
	Succeeded bool
	// Output is the captured stdout, set when Succeeded.
	Output string
	// Error is the captured stderr, set when not Succeeded.
	Error    string
	ExitCode int
}

// ProcessRunner runs a command to completion, capturing stdout and stderr while
// passing both through to its own writers.
type ProcessRunner struct {
	exec       Executor
	validators []ExecValidator
	printer    *Printer
	logger     *zap.Logger
	stdout     io.Writer
	stderr     io.Writer
}

// NewProcessRunner creates a ProcessRunner. Nil writers discard pass-through output.
func NewProcessRunner(exec Executor, printer *Printer, logger *zap.Logger, stdout, stderr io.Writer, validators ...ExecValidator) *ProcessRunner {
	return &ProcessRunner{
		exec:       exec,
		validators: validators,
		printer:    printer,
		logger:     logger,
		stdout:     lo.Ternary[io.Writer](stdout != nil, stdout, io.Discard),
		stderr:     lo.Ternary[io.Writer](stderr != nil, stderr, io.Discard),
	}
}

// Execute runs executable with args and blocks until it exits.
//
// Only exit code 1 is a failure. Every other status, including other non-zero
// codes, yields Succeeded with the captured stdout. A Go error is returned only
// when the process could not be created or started.
func (r *ProcessRunner) Execute(executable string, args []string) (CommandResult, error) {
	display := redactArgs(args)
	fields := []zap.Field{zap.String("executable", executable), zap.Strings("args", display)}

	cmd, err := r.exec.Command(executable, args, r.validators...)
	if err != nil {
		return CommandResult{}, wrapWithSentinelAndContext(ErrCommandFailed, err,
			fmt.Sprintf("failed to run %s: %v", executable, err),
			map[string]any{"executable": executable, "args": strings.Join(display, " ")})
	}

	r.printer.Command(executable, display)
	r.logger.Debug("Running command", fields...)

	var stdout, stderr bytes.Buffer
	cmd.SetStdout(io.MultiWriter(&stdout, r.stdout))
	cmd.SetStderr(io.MultiWriter(&stderr, r.stderr))

	exitCode := 0
	if runErr := cmd.Run(); runErr != nil {
		code, ok := exitCodeOf(runErr)
		if !ok {
			return CommandResult{}, wrapWithSentinelAndContext(ErrCommandFailed, runErr,
				fmt.Sprintf("failed to run %s: %v", executable, runErr),
				map[string]any{"executable": executable, "args": strings.Join(display, " ")})
		}
		exitCode = code
	}
	r.logger.Debug("Command exited", append(fields, zap.Int("exit_code", exitCode))...)

	// Known issue: 2, 125 and 127 are reported as success.
	if exitCode == 1 {
		return CommandResult{Succeeded: false, Error: stderr.String(), ExitCode: exitCode}, nil
	}
	if exitCode != 0 {
		r.printer.Warn(fmt.Sprintf("%s exited with status %d, continuing", executable, exitCode))
	}
	return CommandResult{Succeeded: true, Output: stdout.String(), ExitCode: exitCode}, nil
}

// redactArgs masks the value following --creds, keeping the username.
func redactArgs(args []string) []string {
	return lo.Map(args, func(arg string, i int) string {
		if i == 0 || args[i-1] != credsFlag {
			return arg
		}
		user, _, found := strings.Cut(arg, ":")
		if !found {
			return redactedValue
		}
		return user + ":" + redactedValue
	})
}
