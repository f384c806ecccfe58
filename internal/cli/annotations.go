package cli

// GitHub Actions workflow commands. The runner scans stdout for lines starting
// with "::" and treats them as commands rather than log output.

import (
	"fmt"
	"io"
	"os"
	"strings"

	"podman-push/pkg/errx"
)

// getenv is a test seam for os.Getenv.
var getenv = os.Getenv

func inGitHubActions() bool {
	return getenv("GITHUB_ACTIONS") == "true"
}

var workflowDataEscaper = strings.NewReplacer(
	"%", "%25",
	"\r", "%0D",
	"\n", "%0A",
)

// escapeData encodes a workflow command payload.
func escapeData(s string) string {
	return workflowDataEscaper.Replace(s)
}

// AddMask asks the runner to scrub value from all later log output.
func (p *Printer) AddMask(value string) {
	if p == nil || !p.Annotate || value == "" {
		return
	}
	fmt.Fprintf(p.out(), "::add-mask::%s\n", escapeData(value))
}

// ReportFailure is the single place a failed run is reported.
// Under GitHub Actions it emits an ::error:: annotation on stdout, otherwise "Error: ..." on stderr.
// With debug enabled the full errx chain follows on stderr.
func ReportFailure(stdout, stderr io.Writer, err error) {
	if err == nil {
		return
	}
	msg := strings.TrimRight(errx.UserString(err), "\r\n")
	if inGitHubActions() {
		fmt.Fprintf(stdout, "::error::%s\n", escapeData(msg))
	} else {
		fmt.Fprintf(stderr, "Error: %s\n", msg)
	}
	if IsDebugMode() {
		fmt.Fprintln(stderr, errx.DebugString(err))
	}
}
