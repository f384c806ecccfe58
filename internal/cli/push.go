package cli

// This file implements the "push" command: find the image in podman's local
// storage (or pull it from the Docker daemon) and push it to a registry.

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// yamlMarshal is a test seam for yaml.Marshal.
var yamlMarshal = yaml.Marshal

// PushManager runs the push step with injected dependencies.
type PushManager struct {
	exec    Executor
	printer *Printer
	logger  *zap.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// NewPushManager creates a PushManager. Process output passes through to the printer's writer and stderr.
func NewPushManager(exec Executor, printer *Printer, logger *zap.Logger) *PushManager {
	return &PushManager{
		exec:    exec,
		printer: printer,
		logger:  logger,
		stdout:  printer.out(),
		stderr:  os.Stderr,
	}
}

// DefaultPushManager returns a PushManager using os/exec and the default printer.
func DefaultPushManager(logger *zap.Logger) *PushManager {
	return NewPushManager(execExecutor, DefaultPrinter, logger)
}

// WithOutput redirects pass-through process output.
func (m *PushManager) WithOutput(stdout, stderr io.Writer) *PushManager {
	m.stdout = stdout
	m.stderr = stderr
	return m
}

// NewPushCmd builds the push subcommand.
func NewPushCmd(logger *zap.Logger) *cobra.Command {
	return NewPushCmdWithManager(DefaultPushManager(logger))
}

// NewPushCmdWithManager returns the push subcommand using the provided manager.
func NewPushCmdWithManager(mgr *PushManager) *cobra.Command {
	var src ConfigSources

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a local podman image to a registry",
		Long: `Push an image to a remote registry with podman.

The image is looked up in podman's local storage first. When it is not there,
it is pulled from the Docker daemon's storage (docker-daemon:<image>:<tag>)
before pushing to <registry>:<tag> with --creds <username>:<password>.

Inputs are read from flags, then INPUT_* environment variables, then --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mgr.resolveConfig(src)
			if err != nil {
				return err
			}
			return mgr.Run(cfg)
		},
	}
	bindInputFlags(cmd, &src)

	return cmd
}

// NewConfigCmd builds the config subcommand, which prints the resolved inputs.
func NewConfigCmd(logger *zap.Logger) *cobra.Command {
	return NewConfigCmdWithManager(DefaultPushManager(logger))
}

// NewConfigCmdWithManager returns the config subcommand using the provided manager.
func NewConfigCmdWithManager(mgr *PushManager) *cobra.Command {
	var src ConfigSources

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved inputs without running podman",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mgr.resolveConfig(src)
			if err != nil {
				return err
			}
			data, err := yamlMarshal(cfg.Redacted())
			if err != nil {
				return wrapWithSentinel(ErrMarshalConfigFailed, err, fmt.Sprintf("failed to marshal config: %v", err))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	bindInputFlags(cmd, &src)

	return cmd
}

func (m *PushManager) resolveConfig(src ConfigSources) (*PushConfig, error) {
	cfg, err := ResolvePushConfig(src)
	if err != nil {
		m.printer.Error("Invalid inputs")
		logStructuredError(m.logger, err, "Invalid inputs")
		return nil, err
	}
	return cfg, nil
}

// Run executes the step: resolve podman, list local images, pull from the
// daemon when the image is not found locally, then push. The first failure ends the run.
func (m *PushManager) Run(cfg *PushConfig) error {
	m.printer.AddMask(cfg.Password)
	if err := cfg.CheckReference(); err != nil {
		m.logger.Debug("Image reference is not in repository:tag form, passing it to podman unchanged",
			zap.String("image", cfg.ImageToPush), zap.String("tag", cfg.Tag), zap.Error(err))
	}

	runner := NewProcessRunner(m.exec, m.printer, m.logger, m.stdout, m.stderr,
		AllowlistBins(podmanBinary),
		NoControlChars(credsFlag),
	)

	podman, err := ResolvePodman(runner)
	if err != nil {
		return m.report(err, "Podman not found")
	}
	m.logger.Info("Using podman", zap.String("path", podman.Path()))

	// Local storage
	m.printer.Section("Checking podman local storage")
	list, err := podman.ListImages()
	if err != nil {
		return m.report(err, "Failed to list images")
	}
	if !list.Succeeded {
		return m.report(newWithSentinel(ErrListImagesFailed, list.Error), "Failed to list images")
	}
	records, err := DecodeImageList(list.Output)
	if err != nil {
		return m.report(err, "Failed to decode image list")
	}
	found := MatchingNames(records, cfg.LocalMatch)
	m.logger.Info("Checked local storage",
		zap.Int("images", len(records)),
		zap.Int("matches", len(found)),
		zap.String("match", cfg.LocalMatch))

	// Docker daemon fallback
	pulled := false
	if len(found) == 0 {
		source := daemonReference(cfg.ImageToPush, cfg.Tag)
		m.printer.Info(fmt.Sprintf("Image not in local storage, pulling %s", source))
		pull, err := podman.PullFromDaemon(cfg.ImageToPush, cfg.Tag)
		if err != nil || !pull.Succeeded {
			notFound := wrapWithSentinelAndContext(ErrImageNotFound, err, ErrImageNotFound.Error(),
				map[string]any{"source": source})
			return m.report(notFound, "Image not found")
		}
		pulled = true
	}

	// Push
	destination := registryDestination(cfg.Registry, cfg.Tag)
	m.printer.Section("Pushing image")
	m.logger.Info("Pushing image", zap.String("image", cfg.ImageToPush), zap.String("destination", destination))
	push, err := podman.Push(cfg.Username, cfg.Password, cfg.ImageToPush, destination)
	if err != nil {
		return m.report(err, "Failed to push image")
	}
	if !push.Succeeded {
		pushErr := wrapWithSentinelAndContext(ErrPushImageFailed, nil, push.Error,
			map[string]any{"image": cfg.ImageToPush, "destination": destination})
		return m.report(pushErr, "Failed to push image")
	}

	m.printer.Success(fmt.Sprintf("Pushed %s to %s", cfg.ImageToPush, destination))
	source := Green("local storage")
	if pulled {
		source = Yellow("docker daemon")
	}
	m.printer.TableBoxed([][]string{
		{"Property", "Value"},
		{"Image", cfg.ImageToPush},
		{"Tag", cfg.Tag},
		{"Source", source},
		{"Destination", destination},
	})
	return nil
}

func (m *PushManager) report(err error, msg string) error {
	m.printer.Error(msg)
	logStructuredError(m.logger, err, msg)
	return err
}
