package errx

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormat_UserString(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := New(CodeRegistry, DescRegistry, "unauthorized")
		if got := UserString(err); got != "unauthorized" {
			t.Errorf("UserString(err) = %q, want %q", got, "unauthorized")
		}
	})
	t.Run("without message, with description", func(t *testing.T) {
		err := New(CodeRegistry, DescRegistry, "")
		if got := UserString(err); got != DescRegistry {
			t.Errorf("UserString(err) = %q, want %q", got, DescRegistry)
		}
	})
	t.Run("wrapped by fmt.Errorf", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeRegistry, DescRegistry, "inner"))
		if got := UserString(err); got != "inner" {
			t.Errorf("UserString(err) = %q, want %q", got, "inner")
		}
	})
	t.Run("with nil error", func(t *testing.T) {
		if got := UserString(nil); got != "" {
			t.Errorf("UserString(nil) = %q, want empty string", got)
		}
	})
	t.Run("with non-errx error", func(t *testing.T) {
		if got := UserString(errors.New("standard error")); got != "standard error" {
			t.Errorf("UserString(err) = %q, want %q", got, "standard error")
		}
	})
}

func TestFormat_CodeOf(t *testing.T) {
	if got := CodeOf(New(CodeExec, DescExec, "x")); got != CodeExec {
		t.Errorf("CodeOf(exec) = %q, want %q", got, CodeExec)
	}
	if got := CodeOf(errors.New("plain")); got != CodeCLI {
		t.Errorf("CodeOf(plain) = %q, want %q", got, CodeCLI)
	}
}

func TestFormat_DebugString(t *testing.T) {
	t.Run("with errx.Error", func(t *testing.T) {
		err := New(CodeCLI, DescCLI, "test")
		want := "1: *errx.Error: test | code=70000 | description=\"CLI/argument error\" | message=\"test\""
		if got := DebugString(err); got != want {
			t.Errorf("DebugString(err) = %q, want %q", got, want)
		}
	})
	t.Run("with context", func(t *testing.T) {
		err := New(CodeRegistry, DescRegistry, "test").
			WithContext("tag", "latest").
			WithContext("image", "myapp")
		got := DebugString(err)
		if !strings.HasSuffix(got, " | context={image=myapp, tag=latest}") {
			t.Errorf("DebugString(err) = %q, want sorted context suffix", got)
		}
	})
	t.Run("with cause chain", func(t *testing.T) {
		cause := errors.New("exec: \"podman\": executable file not found in $PATH")
		err := Wrap(CodeExec, DescExec, "unable to locate executable file: podman", cause)
		lines := strings.Split(DebugString(err), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 chain entries, got %d: %q", len(lines), lines)
		}
		if !strings.HasPrefix(lines[1], "2: *errors.errorString: exec:") {
			t.Errorf("second entry = %q", lines[1])
		}
	})
	t.Run("with errors.Join", func(t *testing.T) {
		got := DebugString(errors.Join(errors.New("error1"), errors.New("error2")))
		if !strings.Contains(got, "error1") || !strings.Contains(got, "error2") {
			t.Errorf("DebugString(joined) = %q, want both errors", got)
		}
	})
	t.Run("with non-errx.Error", func(t *testing.T) {
		if got := DebugString(errors.New("test")); got != "1: *errors.errorString: test" {
			t.Errorf("DebugString(err) = %q", got)
		}
	})
	t.Run("with nil error", func(t *testing.T) {
		if got := DebugString(nil); got != "" {
			t.Errorf("DebugString(nil) = %q, want empty string", got)
		}
	})
}

func TestFormat_unwrapAll(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		if result := unwrapAll(New(CodeCLI, DescCLI, "test")); result != nil {
			t.Errorf("unwrapAll(err) = %v, want nil", result)
		}
	})
	t.Run("with errors.Join keeps order", func(t *testing.T) {
		err1, err2, err3 := errors.New("error1"), errors.New("error2"), errors.New("error3")
		result := unwrapAll(errors.Join(err1, err2, err3))
		if len(result) != 3 || result[0] != err1 || result[1] != err2 || result[2] != err3 {
			t.Errorf("unwrapAll(joined) = %v", result)
		}
	})
}

func TestFormat_flattenChainBounded(t *testing.T) {
	var err error = errors.New("root")
	for i := 0; i < maxChainEntries*2; i++ {
		err = fmt.Errorf("layer %d: %w", i, err)
	}
	if got := len(flattenChain(err)); got != maxChainEntries {
		t.Errorf("len(flattenChain) = %d, want %d", got, maxChainEntries)
	}
}

func TestFormat_formatContext(t *testing.T) {
	if got := formatContext(map[string]any{"key2": "value2", "key1": "value1"}); got != "key1=value1, key2=value2" {
		t.Errorf("formatContext = %q", got)
	}
	if got := formatContext(nil); got != "" {
		t.Errorf("formatContext(nil) = %q, want empty string", got)
	}
}
