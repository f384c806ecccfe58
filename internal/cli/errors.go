package cli

// This file defines error handling for the push step:
//   - Sentinel errors per failure class, built with the errx category constructors
//   - Wrapping helpers that attach errx codes and structured context
//   - Structured error logging gated by debug mode

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"podman-push/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError writes structured error logs.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

var (
	// Config errors.
	ErrInputRequired         = errx.Config("input required and not supplied")
	ErrInvalidImageReference = errx.Config("invalid image reference")
	ErrReadConfigFailed      = errx.Config("failed to read config file")
	ErrUnmarshalConfigFailed = errx.Config("failed to unmarshal config file")
	ErrMarshalConfigFailed   = errx.Config("failed to marshal config")
	ErrLoadEnvFileFailed     = errx.Config("failed to load env file")

	// Exec errors.
	ErrPodmanNotFound = errx.Exec("unable to locate executable file")
	ErrCommandFailed  = errx.Exec("failed to run command")

	// Image store errors.
	ErrListImagesFailed   = errx.ImageStore("failed to list images")
	ErrDecodeImagesFailed = errx.ImageStore("failed to decode image list")
	ErrImageNotFound      = errx.ImageStore("Unable to find the image to push")

	// Registry errors.
	ErrPushImageFailed = errx.Registry("failed to push image")
)

// newWithSentinel creates an error in the sentinel's category with msg as its message.
func newWithSentinel(base error, msg string) error {
	return wrapWithSentinel(base, nil, msg)
}

// wrapWithSentinel wraps cause in the sentinel's category with msg as its message.
// A nil base lands in the CLI category.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, msg, cause)
}

// wrapWithSentinelAndContext is wrapWithSentinel plus structured debugging context.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// logStructuredError logs err with its errx code, category and context.
// Only logs when debug mode is enabled (via --debug flag):
//
//	error.code: "72000"
//	error.category: "Registry error"
//	error.context.destination: "quay.io/org/app:latest"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("error.code", errxErr.Code()),
		zap.String("error.category", errxErr.Description()),
		zap.String("error.message", errxErr.Message()),
		zap.Error(err),
	}
	for key, value := range errxErr.Context() {
		fields = append(fields, zap.Any("error.context."+key, value))
	}
	// distinct field name so it does not collide with "error"
	if cause := errxErr.Cause(); cause != nil {
		fields = append(fields, zap.NamedError("error.cause", cause))
	}
	logger.Error(msg, fields...)
}
