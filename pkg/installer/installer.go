// pkg/installer/installer.go - per-label installation over the softwareupdate tool.

package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/macadmins/secupdate/pkg/logging"
	"github.com/macadmins/secupdate/pkg/softwareupdate"
)

// Result is the outcome of one install attempt.
type Result struct {
	Label    string
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the install completed cleanly.
func (r Result) Succeeded() bool { return r.Err == nil }

// InstallAll installs every label in the plan, one invocation per label.
// A failed label is reported and does not stop the remaining labels; the
// returned slice has one Result per planned label, in plan order.
func InstallAll(ctx context.Context, tool softwareupdate.Tool, plan []string) []Result {
	results := make([]Result, 0, len(plan))

	for _, label := range plan {
		logging.Info("Installing update", "label", label)
		start := time.Now()
		err := tool.Install(ctx, label)
		elapsed := time.Since(start)

		if err != nil {
			logging.Error("Failed to install", "label", label, "error", err)
		} else {
			logging.Success("Successfully installed", "label", label, "duration", elapsed.Round(time.Second))
		}
		results = append(results, Result{Label: label, Duration: elapsed, Err: err})
	}

	return results
}

// Summarize collects the failures from a result set into a single error for
// the final log line. It returns nil when every install succeeded. The
// aggregate never feeds the process exit status; installs are best-effort.
func Summarize(results []Result) error {
	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.Label, r.Err))
		}
	}
	return merr.ErrorOrNil()
}

// FailureCount returns how many results carry an error.
func FailureCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
