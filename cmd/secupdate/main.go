// cmd/secupdate/main.go

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/macadmins/secupdate/pkg/blocking"
	"github.com/macadmins/secupdate/pkg/catalog"
	"github.com/macadmins/secupdate/pkg/config"
	"github.com/macadmins/secupdate/pkg/installer"
	"github.com/macadmins/secupdate/pkg/logging"
	"github.com/macadmins/secupdate/pkg/reporting"
	"github.com/macadmins/secupdate/pkg/softwareupdate"
	"github.com/macadmins/secupdate/pkg/status"
	"github.com/macadmins/secupdate/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("secupdate", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: secupdate [options]\n\nSelectively install macOS security updates via softwareupdate.\n\nOptions:\n%s", fs.FlagUsages())
	}
	return fs
}

func run(args []string) int {
	fs := newFlagSet()

	installXProtect := fs.BoolP("install-xprotect", "x", false, "Install XProtect and MRTConfigData updates.")
	installSafari := fs.BoolP("install-safari", "s", false, "Install Safari updates.")
	forceSafari := fs.BoolP("force-safari-update", "f", false, "Install Safari updates even while Safari is running.")
	help := fs.BoolP("help", "h", false, "Show usage.")
	checkOnly := fs.Bool("checkonly", false, "Check for matching updates, but don't install them.")
	showConfig := fs.Bool("show-config", false, "Display the current configuration and exit.")
	versionFlag := fs.Bool("version", false, "Print the version and exit.")
	suBinary := fs.String("softwareupdate", "", "Path to the softwareupdate binary (overrides configuration).")
	var verbosity int
	fs.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (e.g. -v, -vv)")

	if err := fs.Parse(args); err != nil {
		// pflag already printed the error and usage to stderr.
		return 1
	}

	// Help exits non-zero. The shell tooling this replaces has always done
	// that, and schedulers depend on the distinction from a completed run.
	if *help {
		fmt.Fprintf(os.Stdout, "Usage: secupdate [options]\n\nSelectively install macOS security updates via softwareupdate.\n\nOptions:\n%s", fs.FlagUsages())
		return 1
	}

	if *versionFlag {
		version.Print()
		return 0
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if verbosity > 0 {
		cfg.Verbose = true
	}
	if verbosity > 1 {
		cfg.Debug = true
	}

	if err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer logging.Close()

	if *showConfig {
		if cfgYaml, err := yaml.Marshal(cfg); err == nil {
			fmt.Printf("Current configuration:\n%s", string(cfgYaml))
		}
		return 0
	}

	runCfg := config.NewRunConfig(*installXProtect, *installSafari, *forceSafari, *checkOnly)

	binary := cfg.SoftwareUpdateBinary
	if *suBinary != "" {
		binary = *suBinary
	}
	tool := &softwareupdate.CLI{
		Binary:  binary,
		Timeout: time.Duration(cfg.CommandTimeoutMinutes) * time.Minute,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return runPipeline(ctx, runCfg, tool, blocking.SystemLister{}, status.NewConsoleReporter())
}

// runPipeline drives discovery, classification, the Safari gate and
// installation. Split from run so the whole flow is exercisable with fakes.
func runPipeline(ctx context.Context, runCfg config.RunConfig, tool softwareupdate.Tool, lister blocking.Lister, reporter status.Reporter) int {
	session := reporting.NewSession(time.Now())

	reporter.Message("Checking for available security updates...")
	text, err := tool.ListUpdates(ctx)
	if err != nil {
		// Discovery failure is fatal; echo whatever softwareupdate said.
		if text != "" {
			fmt.Fprintln(os.Stderr, text)
		}
		fmt.Fprintf(os.Stderr, "Failed to list available updates: %v\n", err)
		return 1
	}

	labels := catalog.ParseLabels(text)
	session.LabelsAvailable = len(labels)
	if len(labels) == 0 {
		reporter.Message("No updates available.")
		return 0
	}
	logging.Debug("Parsed update labels", "count", len(labels))

	buckets := catalog.Classify(labels, runCfg)

	includeSafari := runCfg.InstallSafari
	if len(buckets.Safari) > 0 && runCfg.InstallSafari {
		running, matches := blocking.IsSafariRunning(lister)
		for _, p := range matches {
			logging.Info("Safari process detected", "pid", p.PID, "name", p.Name)
		}

		decision := blocking.SafariGate(running, runCfg.ForceSafari)
		session.SafariDecision = decision.String()
		switch decision {
		case blocking.DecisionInstall:
			reporter.Detail("Safari is not running, will install Safari updates.")
		case blocking.DecisionForced:
			reporter.Detail("Safari is running but --force-safari-update was given, will install Safari updates.")
		case blocking.DecisionWithheld:
			reporter.Detail("Safari is running, skipping Safari updates. Use --force-safari-update to install anyway.")
		}
		includeSafari = decision.Allowed()
	}

	plan := catalog.BuildPlan(buckets, includeSafari)
	session.LabelsPlanned = len(plan)
	if len(plan) == 0 {
		reporter.Message("No matching updates to install.")
		return 0
	}

	if runCfg.CheckOnly {
		reporter.Message(fmt.Sprintf("Would install %d update(s):", len(plan)))
		for _, label := range plan {
			reporter.Detail(label)
		}
		return 0
	}

	reporter.Message(fmt.Sprintf("Installing %d update(s)...", len(plan)))
	results := installer.InstallAll(ctx, tool, plan)
	for _, r := range results {
		if r.Succeeded() {
			reporter.Detail(fmt.Sprintf("Successfully installed %s", r.Label))
		} else {
			reporter.Detail(fmt.Sprintf("Failed to install %s", r.Label))
		}
	}

	session.RecordResults(results)
	if err := session.Write(logging.SessionDir()); err != nil {
		logging.Warn("Failed to write session report", "error", err)
	}

	// Individual install failures are reported above but never change the
	// exit status; the run as a whole completed.
	if err := installer.Summarize(results); err != nil {
		logging.Warn("Completed with install failures",
			"failed", installer.FailureCount(results),
			"total", len(results),
			"error", err)
	}
	reporter.Message("Finished installing security updates.")
	return 0
}
