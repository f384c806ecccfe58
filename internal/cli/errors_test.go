package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"podman-push/pkg/errx"
)

func TestSentinelCodes(t *testing.T) {
	tests := []struct {
		sentinel error
		code     string
	}{
		{ErrInputRequired, errx.CodeConfig},
		{ErrInvalidImageReference, errx.CodeConfig},
		{ErrReadConfigFailed, errx.CodeConfig},
		{ErrUnmarshalConfigFailed, errx.CodeConfig},
		{ErrMarshalConfigFailed, errx.CodeConfig},
		{ErrLoadEnvFileFailed, errx.CodeConfig},
		{ErrPodmanNotFound, errx.CodeExec},
		{ErrCommandFailed, errx.CodeExec},
		{ErrListImagesFailed, errx.CodeImageStore},
		{ErrDecodeImagesFailed, errx.CodeImageStore},
		{ErrImageNotFound, errx.CodeImageStore},
		{ErrPushImageFailed, errx.CodeRegistry},
	}
	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			err := newWithSentinel(tt.sentinel, "msg")
			assert.Equal(t, tt.code, errx.CodeOf(err))
			assert.True(t, errx.IsValidCode(tt.code))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestWrapWithSentinel(t *testing.T) {
	t.Run("keeps cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := wrapWithSentinel(ErrReadConfigFailed, cause, "failed to read config file: disk full")
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrReadConfigFailed)
		assert.NotErrorIs(t, err, ErrPushImageFailed)
	})

	t.Run("unregistered sentinel falls back to CLI", func(t *testing.T) {
		err := newWithSentinel(errors.New("other"), "msg")
		assert.Equal(t, errx.CodeCLI, errx.CodeOf(err))
	})

	t.Run("nil sentinel", func(t *testing.T) {
		err := wrapWithSentinel(nil, nil, "msg")
		assert.Equal(t, errx.CodeCLI, errx.CodeOf(err))
		assert.EqualError(t, err, "msg")
	})

	t.Run("context attached", func(t *testing.T) {
		err := wrapWithSentinelAndContext(ErrPushImageFailed, nil, "denied", map[string]any{"destination": "reg:latest"})
		var typed *errx.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, "reg:latest", typed.Context()["destination"])
	})
}

func TestLogStructuredError(t *testing.T) {
	err := wrapWithSentinelAndContext(ErrImageNotFound, fmt.Errorf("exit status 1"),
		ErrImageNotFound.Error(), map[string]any{"source": "docker-daemon:app:latest"})

	t.Run("silent without debug", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logStructuredError(zap.New(core), err, "Image not found")
		assert.Zero(t, logs.Len())
	})

	t.Run("structured fields with debug", func(t *testing.T) {
		SetDebugMode(true)
		t.Cleanup(func() { SetDebugMode(false) })
		core, logs := observer.New(zapcore.DebugLevel)

		logStructuredError(zap.New(core), err, "Image not found")
		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, errx.CodeImageStore, fields["error.code"])
		assert.Equal(t, errx.DescImageStore, fields["error.category"])
		assert.Equal(t, "docker-daemon:app:latest", fields["error.context.source"])
		assert.Equal(t, "exit status 1", fields["error.cause"])
	})

	t.Run("plain error with debug", func(t *testing.T) {
		SetDebugMode(true)
		t.Cleanup(func() { SetDebugMode(false) })
		core, logs := observer.New(zapcore.DebugLevel)

		logStructuredError(zap.New(core), errors.New("boom"), "failed")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
	})

	t.Run("nil logger", func(t *testing.T) {
		SetDebugMode(true)
		t.Cleanup(func() { SetDebugMode(false) })
		logStructuredError(nil, err, "ignored")
	})
}
