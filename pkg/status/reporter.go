// pkg/status/reporter.go - progress reporting for update runs.

package status

import (
	"fmt"
	"io"
	"os"
)

// Reporter abstracts user-facing progress output so the pipeline can run
// headless (tests, launchd) without console writes.
type Reporter interface {
	Message(txt string)
	Detail(txt string)
	Error(err error)
}

// ConsoleReporter writes progress to a stream, stdout by default.
type ConsoleReporter struct {
	Out io.Writer
}

// NewConsoleReporter creates a reporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout}
}

func (r *ConsoleReporter) Message(txt string) {
	fmt.Fprintln(r.Out, txt)
}

func (r *ConsoleReporter) Detail(txt string) {
	fmt.Fprintf(r.Out, "    %s\n", txt)
}

func (r *ConsoleReporter) Error(err error) {
	fmt.Fprintf(r.Out, "Error: %v\n", err)
}

// NoOpReporter implements Reporter but does nothing.
type NoOpReporter struct{}

func NewNoOpReporter() *NoOpReporter { return &NoOpReporter{} }

func (r *NoOpReporter) Message(txt string) {}
func (r *NoOpReporter) Detail(txt string)  {}
func (r *NoOpReporter) Error(err error)    {}
