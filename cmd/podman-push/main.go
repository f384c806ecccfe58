package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"podman-push/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	debug   = false
	quiet   = false
)

// logLevel is raised to Debug by --debug after flags are parsed.
var logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)

func main() {
	logger, err := newConsoleLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableColor()
	}

	initCommands(logger)

	os.Exit(finish(logger, os.Stdout, os.Stderr, rootCmd.Execute()))
}

// finish flushes the logger, reports err and returns the process exit code.
func finish(logger *zap.Logger, stdout, stderr io.Writer, err error) int {
	_ = logger.Sync()
	if err != nil {
		cli.ReportFailure(stdout, stderr, err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "podman-push",
	Short: "Push a container image to a registry with podman",
	Long: `podman-push is a CI step that pushes a container image to a remote registry.

The image is taken from podman's local storage, or pulled from the Docker
daemon's storage when podman does not have it, then pushed with inline
registry credentials.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
}

func applyGlobalFlags() {
	cli.SetDebugMode(debug)
	if debug {
		logLevel.SetLevel(zap.DebugLevel)
	}
	cli.DefaultPrinter.Quiet = quiet
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and structured error output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output (podman output and workflow commands still print)")
}

func initCommands(logger *zap.Logger) {
	rootCmd.AddCommand(cli.NewPushCmd(logger))
	rootCmd.AddCommand(cli.NewConfigCmd(logger))
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// The level starts at Error so only failures show unless --debug is set.
func newConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
