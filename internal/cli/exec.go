package cli

import (
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// execCommand and lookPath are test seams for process creation and PATH lookup.
var (
	execCommand = exec.Command
	lookPath    = exec.LookPath
)

// Command represents a command that can be executed.
type Command interface {
	Run() error
	SetStdout(w io.Writer)
	SetStderr(w io.Writer)
}

// Executor creates commands for execution.
type Executor interface {
	Command(name string, args []string, validators ...ExecValidator) (Command, error)
}

// execCmd wraps exec.Cmd to implement Command interface.
type execCmd struct {
	cmd *exec.Cmd
}

func (c *execCmd) Run() error            { return c.cmd.Run() }
func (c *execCmd) SetStdout(w io.Writer) { c.cmd.Stdout = w }
func (c *execCmd) SetStderr(w io.Writer) { c.cmd.Stderr = w }

// osExecutor is the production implementation using os/exec.
type osExecutor struct{}

func (osExecutor) Command(name string, args []string, validators ...ExecValidator) (Command, error) {
	spec := ExecSpec{Name: name, Args: args}
	for _, validate := range validators {
		if err := validate(spec); err != nil {
			return nil, err
		}
	}
	return &execCmd{cmd: execCommand(name, args...)}, nil
}

var execExecutor Executor = osExecutor{}

type ExecSpec struct {
	Name string
	Args []string
}

type ExecValidator func(ExecSpec) error

// AllowlistBins accepts a command only when the base name of its executable is allowed,
// so a resolved path like /usr/bin/podman matches "podman".
func AllowlistBins(allowed ...string) ExecValidator {
	set := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		set[name] = struct{}{}
	}
	return func(spec ExecSpec) error {
		if _, ok := set[filepath.Base(spec.Name)]; !ok {
			return errors.New("exec: binary not allowed")
		}
		return nil
	}
}

// NoControlChars rejects arguments containing NUL, CR, LF or tab.
// The value following any flag in exemptFlags is passed through unchecked.
func NoControlChars(exemptFlags ...string) ExecValidator {
	return func(spec ExecSpec) error {
		for i, arg := range spec.Args {
			if i > 0 && lo.Contains(exemptFlags, spec.Args[i-1]) {
				continue
			}
			if strings.ContainsAny(arg, "\x00\r\n\t") {
				return errors.New("exec: control characters not allowed")
			}
		}
		return nil
	}
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// exitCodeOf reports the exit status carried by err, if any.
func exitCodeOf(err error) (int, bool) {
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return 0, false
}
