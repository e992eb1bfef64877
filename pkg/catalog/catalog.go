// pkg/catalog/catalog.go - parsing and classification of softwareupdate catalog output.

package catalog

import (
	"bufio"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/macadmins/secupdate/pkg/config"
	"github.com/macadmins/secupdate/pkg/logging"
)

// Category markers. Matching is unanchored, case-sensitive substring
// containment, exactly what softwareupdate label names warrant.
const (
	MarkerXProtect      = "XProtect"
	MarkerMRTConfigData = "MRTConfigData"
	MarkerSafari        = "Safari"
)

// Buckets partitions catalog labels by update category. Slices preserve
// catalog order. A label matching two markers appears in both buckets;
// BuildPlan deduplicates.
type Buckets struct {
	XProtect      []string
	MRTConfigData []string
	Safari        []string
}

// ParseLabels extracts update labels from raw softwareupdate --list output.
// A line qualifies if, after stripping leading whitespace and an optional
// leading asterisk, it begins with "Label:" (case-insensitive). Order is
// preserved.
func ParseLabels(text string) []string {
	var labels []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")
		line = strings.TrimLeft(strings.TrimPrefix(line, "*"), " \t")
		if len(line) < len("Label:") || !strings.EqualFold(line[:len("Label:")], "Label:") {
			continue
		}
		if label := strings.TrimSpace(line[len("Label:"):]); label != "" {
			labels = append(labels, label)
		}
	}

	return labels
}

// Classify partitions labels into category buckets according to the run
// configuration. MRTConfigData rides on the XProtect flag. Returns fresh
// slices; the input is not modified.
func Classify(labels []string, run config.RunConfig) Buckets {
	var b Buckets

	for _, label := range labels {
		if run.InstallXProtect && strings.Contains(label, MarkerXProtect) {
			b.XProtect = append(b.XProtect, label)
			logging.Info("Found XProtect update", "label", label, "version", LabelVersion(label))
		}
		if run.InstallXProtect && strings.Contains(label, MarkerMRTConfigData) {
			b.MRTConfigData = append(b.MRTConfigData, label)
			logging.Info("Found MRTConfigData update", "label", label, "version", LabelVersion(label))
		}
		if run.InstallSafari && strings.Contains(label, MarkerSafari) {
			b.Safari = append(b.Safari, label)
			logging.Info("Found Safari update", "label", label, "version", LabelVersion(label))
		}
	}

	return b
}

// BuildPlan concatenates the buckets into the ordered install plan:
// XProtect, then MRTConfigData, then (when included) Safari. Labels are
// deduplicated by identity, first occurrence wins, so a label matching two
// markers is installed once.
func BuildPlan(b Buckets, includeSafari bool) []string {
	var plan []string
	seen := make(map[string]bool)

	appendUnique := func(labels []string) {
		for _, label := range labels {
			if !seen[label] {
				seen[label] = true
				plan = append(plan, label)
			}
		}
	}

	appendUnique(b.XProtect)
	appendUnique(b.MRTConfigData)
	if includeSafari {
		appendUnique(b.Safari)
	}

	return plan
}

// LabelVersion extracts the trailing version component from a label such as
// "XProtectPlistConfigData-2024.01". Diagnostic only; returns "" when no
// parseable version is present.
func LabelVersion(label string) string {
	idx := strings.LastIndexByte(label, '-')
	if idx < 0 || idx == len(label)-1 {
		return ""
	}
	v, err := goversion.NewVersion(label[idx+1:])
	if err != nil {
		return ""
	}
	return v.Original()
}
