package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Printer writes human-facing progress output.
// Quiet suppresses everything except workflow commands.
type Printer struct {
	Quiet bool
	// Annotate emits GitHub Actions workflow commands (::add-mask::, ::error::).
	Annotate bool
	Writer   io.Writer
}

// NewPrinter returns a Printer writing to w, annotating when running under GitHub Actions.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Writer: w, Annotate: inGitHubActions()}
}

// DefaultPrinter writes to stdout.
var DefaultPrinter = NewPrinter(os.Stdout)

func (p *Printer) out() io.Writer {
	if p == nil || p.Writer == nil {
		return os.Stdout
	}
	return p.Writer
}

func (p *Printer) silent() bool {
	return p == nil || p.Quiet
}

// Section prints a section header.
func (p *Printer) Section(title string) {
	if p.silent() {
		return
	}
	pterm.DefaultSection.WithWriter(p.out()).Println(title)
}

func (p *Printer) Info(msg string) {
	if p.silent() {
		return
	}
	pterm.Info.WithWriter(p.out()).Println(msg)
}

func (p *Printer) Success(msg string) {
	if p.silent() {
		return
	}
	pterm.Success.WithWriter(p.out()).Println(msg)
}

func (p *Printer) Warn(msg string) {
	if p.silent() {
		return
	}
	pterm.Warning.WithWriter(p.out()).Println(msg)
}

func (p *Printer) Error(msg string) {
	if p.silent() {
		return
	}
	pterm.Error.WithWriter(p.out()).Println(msg)
}

// Command echoes a command line before it runs, in the runner's [command] format.
func (p *Printer) Command(executable string, args []string) {
	if p.silent() {
		return
	}
	fmt.Fprintf(p.out(), "[command]%s\n", strings.Join(append([]string{executable}, args...), " "))
}

// TableBoxed renders rows with the first row as header.
func (p *Printer) TableBoxed(data [][]string) {
	if p.silent() || len(data) == 0 {
		return
	}
	_ = pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(pterm.TableData(data)).
		WithWriter(p.out()).
		Render()
}

// Green and Yellow color a value for table cells.
func Green(s string) string  { return pterm.Green(s) }
func Yellow(s string) string { return pterm.Yellow(s) }
