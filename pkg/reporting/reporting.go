// pkg/reporting/reporting.go - per-run session reports for external monitoring tools.

package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/macadmins/secupdate/pkg/installer"
)

// ItemRecord is one attempted install in the session report.
type ItemRecord struct {
	Label      string `yaml:"label"`
	Status     string `yaml:"status"` // "success" or "failed"
	DurationMs int64  `yaml:"duration_ms"`
	Error      string `yaml:"error,omitempty"`
}

// SessionRecord summarizes one secupdate run.
type SessionRecord struct {
	StartTime       string       `yaml:"start_time"`
	EndTime         string       `yaml:"end_time"`
	Hostname        string       `yaml:"hostname"`
	ProcessID       int          `yaml:"process_id"`
	LabelsAvailable int          `yaml:"labels_available"`
	LabelsPlanned   int          `yaml:"labels_planned"`
	SafariDecision  string       `yaml:"safari_decision,omitempty"`
	Successes       int          `yaml:"successes"`
	Failures        int          `yaml:"failures"`
	Items           []ItemRecord `yaml:"items,omitempty"`
}

// NewSession starts a session record for the current run.
func NewSession(start time.Time) *SessionRecord {
	hostname, _ := os.Hostname()
	return &SessionRecord{
		StartTime: start.UTC().Format(time.RFC3339),
		Hostname:  hostname,
		ProcessID: os.Getpid(),
	}
}

// RecordResults folds the install results into the session record.
func (s *SessionRecord) RecordResults(results []installer.Result) {
	for _, r := range results {
		item := ItemRecord{
			Label:      r.Label,
			Status:     "success",
			DurationMs: r.Duration.Milliseconds(),
		}
		if r.Err != nil {
			item.Status = "failed"
			item.Error = r.Err.Error()
			s.Failures++
		} else {
			s.Successes++
		}
		s.Items = append(s.Items, item)
	}
}

// Write finalizes the record and writes report.yaml into dir. A missing or
// unwritable dir is not fatal to the run; callers log and move on.
func (s *SessionRecord) Write(dir string) error {
	if dir == "" {
		return nil
	}
	s.EndTime = time.Now().UTC().Format(time.RFC3339)

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializing session report: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "report.yaml"), data, 0644)
}
