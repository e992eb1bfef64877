// pkg/blocking/blocking.go - running-application detection, similar to Munki's
// blocking applications.

package blocking

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/macadmins/secupdate/pkg/logging"
)

// Process is one entry from the process table.
type Process struct {
	PID     int32
	Name    string
	Cmdline string
}

// Lister enumerates the process table. The gopsutil-backed implementation is
// the only real one; tests substitute fakes.
type Lister interface {
	Processes() ([]Process, error)
}

// SystemLister reads the live process table via gopsutil.
type SystemLister struct{}

func (SystemLister) Processes() ([]Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		// Cmdline can fail for privileged processes; the name alone is
		// still a usable match target.
		cmdline, _ := p.Cmdline()
		out = append(out, Process{PID: p.Pid, Name: name, Cmdline: cmdline})
	}
	return out, nil
}

// FindRunning returns processes whose name or command line contains any of
// the given substrings. Matching is case-sensitive.
func FindRunning(lister Lister, substrings ...string) []Process {
	procs, err := lister.Processes()
	if err != nil {
		logging.Error("Failed to get process list", "error", err)
		return nil
	}

	var matches []Process
	for _, p := range procs {
		for _, sub := range substrings {
			if strings.Contains(p.Name, sub) || strings.Contains(p.Cmdline, sub) {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches
}

// SafariPatterns are the substrings that identify a running Safari: the
// application process name and its bundle identifier as it appears on helper
// process command lines.
var SafariPatterns = []string{"Safari", "com.apple.Safari"}

// IsSafariRunning reports whether Safari is currently running, along with
// the matching processes for diagnostics.
func IsSafariRunning(lister Lister) (bool, []Process) {
	matches := FindRunning(lister, SafariPatterns...)
	return len(matches) > 0, matches
}
