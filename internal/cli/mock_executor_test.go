package cli

import (
	"fmt"
	"io"
	"testing"
)

// MockExecutor records commands and returns scripted results.
type MockExecutor struct {
	Commands []ExecutedCommand
	// CommandErr is returned from Command before any validator runs.
	CommandErr error
	// Results maps a podman subcommand ("images", "pull", "push") to its scripted result.
	Results map[string]MockResult
	// DefaultResult is used when Results has no entry.
	DefaultResult MockResult
}

// MockResult scripts what a command writes and how it exits.
type MockResult struct {
	Stdout string
	Stderr string
	// ExitCode > 0 makes Run return an exit error with that code.
	ExitCode int
	// RunErr is returned from Run as-is, taking precedence over ExitCode.
	RunErr error
}

type ExecutedCommand struct {
	Name string
	Args []string
}

func (m *MockExecutor) Command(name string, args []string, validators ...ExecValidator) (Command, error) {
	if m.CommandErr != nil {
		return nil, m.CommandErr
	}
	spec := ExecSpec{Name: name, Args: args}
	for _, validate := range validators {
		if err := validate(spec); err != nil {
			return nil, err
		}
	}
	m.Commands = append(m.Commands, ExecutedCommand{Name: name, Args: append([]string(nil), args...)})

	result := m.DefaultResult
	if len(args) > 0 {
		if scripted, ok := m.Results[args[0]]; ok {
			result = scripted
		}
	}
	return &MockCommand{result: result}, nil
}

// HasCommand reports whether any recorded command has subcommand as its first argument.
func (m *MockExecutor) HasCommand(subcommand string) bool {
	for _, cmd := range m.Commands {
		if len(cmd.Args) > 0 && cmd.Args[0] == subcommand {
			return true
		}
	}
	return false
}

func (m *MockExecutor) LastCommand() ExecutedCommand {
	if len(m.Commands) == 0 {
		return ExecutedCommand{}
	}
	return m.Commands[len(m.Commands)-1]
}

type MockCommand struct {
	result MockResult
	stdout io.Writer
	stderr io.Writer
}

func (c *MockCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *MockCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *MockCommand) Run() error {
	if c.stdout != nil && c.result.Stdout != "" {
		_, _ = io.WriteString(c.stdout, c.result.Stdout)
	}
	if c.stderr != nil && c.result.Stderr != "" {
		_, _ = io.WriteString(c.stderr, c.result.Stderr)
	}
	if c.result.RunErr != nil {
		return c.result.RunErr
	}
	if c.result.ExitCode != 0 {
		return exitError{code: c.result.ExitCode}
	}
	return nil
}

// exitError mimics *exec.ExitError.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e exitError) ExitCode() int { return e.code }

// stubLookPath points lookPath at a fixed result for the duration of a test.
func stubLookPath(t testing.TB, path string, err error) {
	t.Helper()
	orig := lookPath
	lookPath = func(string) (string, error) { return path, err }
	t.Cleanup(func() { lookPath = orig })
}
