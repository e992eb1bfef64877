// pkg/softwareupdate/softwareupdate.go - invocation of the macOS softwareupdate utility.

package softwareupdate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/macadmins/secupdate/pkg/logging"
)

// DefaultBinary is the stock location of the softwareupdate utility.
const DefaultBinary = "/usr/sbin/softwareupdate"

// Tool is the narrow surface secupdate needs from the OS updater. It exists
// so classification and install logic can be exercised against fakes.
type Tool interface {
	// ListUpdates returns the combined stdout+stderr text of the update
	// listing. A non-zero exit status is returned as an *ExitError carrying
	// the captured text.
	ListUpdates(ctx context.Context) (string, error)
	// Install installs a single update by label.
	Install(ctx context.Context, label string) error
}

// ExitError reports a softwareupdate invocation that exited non-zero.
type ExitError struct {
	Args   []string
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("softwareupdate %v failed: %v", e.Args, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// CLI runs the real softwareupdate binary.
type CLI struct {
	// Binary is the path of the softwareupdate executable. Empty means
	// DefaultBinary.
	Binary string
	// Timeout bounds each invocation. Zero disables the bound; the stock
	// behavior is to wait however long softwareupdate takes.
	Timeout time.Duration
}

func (c *CLI) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

// run invokes the binary with the given arguments and captures combined
// stdout+stderr, mirroring what an interactive run would show.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.binary(), args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	logging.Debug("Running softwareupdate", "binary", c.binary(), "args", args)
	err := cmd.Run()
	if err != nil {
		return combined.String(), &ExitError{Args: args, Output: combined.String(), Err: err}
	}
	return combined.String(), nil
}

// ListUpdates lists available updates, including configuration-data updates.
func (c *CLI) ListUpdates(ctx context.Context) (string, error) {
	return c.run(ctx, "--list", "--include-config-data")
}

// Install installs one update by label, including configuration-data updates.
func (c *CLI) Install(ctx context.Context, label string) error {
	_, err := c.run(ctx, "--install", "--include-config-data", label)
	return err
}
