// Package progress reports per-file pipeline activity. The terminal reporter
// overwrites its status line in place on a TTY and degrades to plain lines
// when output is redirected; core processing code only sees the interface.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Reporter receives per-file lifecycle events during a run.
type Reporter interface {
	// Start announces that work on name has begun.
	Start(name string)
	// Done replaces the in-flight line with a completion summary.
	Done(name, summary string)
	// Fail replaces the in-flight line with a failure notice.
	Fail(name string, err error)
	// Skip records that name was not processed.
	Skip(name, reason string)
}

type terminalReporter struct {
	writer    io.Writer
	tty       bool
	lineWidth int
}

// NewTerminal returns a reporter writing to w. Carriage-return overwriting is
// only used when w is a terminal.
func NewTerminal(w io.Writer) Reporter {
	tty := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &terminalReporter{writer: w, tty: tty}
}

func (r *terminalReporter) Start(name string) {
	if r.tty {
		line := fmt.Sprintf("processing %s ...", name)
		r.lineWidth = len(line)
		fmt.Fprintf(r.writer, "\r%s", line)
		return
	}
	fmt.Fprintf(r.writer, "processing %s\n", name)
}

func (r *terminalReporter) Done(name, summary string) {
	r.finish(fmt.Sprintf("%s: %s", name, summary))
}

func (r *terminalReporter) Fail(name string, err error) {
	r.finish(fmt.Sprintf("%s: failed: %v", name, err))
}

func (r *terminalReporter) Skip(name, reason string) {
	r.finish(fmt.Sprintf("%s: skipped (%s)", name, reason))
}

func (r *terminalReporter) finish(line string) {
	if r.tty {
		pad := ""
		if extra := r.lineWidth - len(line); extra > 0 {
			pad = strings.Repeat(" ", extra)
		}
		fmt.Fprintf(r.writer, "\r%s%s\n", line, pad)
		r.lineWidth = 0
		return
	}
	fmt.Fprintln(r.writer, line)
}

type nopReporter struct{}

func (nopReporter) Start(string)        {}
func (nopReporter) Done(string, string) {}
func (nopReporter) Fail(string, error)  {}
func (nopReporter) Skip(string, string) {}

// Nop returns a reporter that discards all events.
func Nop() Reporter { return nopReporter{} }
