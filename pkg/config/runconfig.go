// pkg/config/runconfig.go - per-run options derived from command-line flags.

package config

// RunConfig captures the category selection for a single run. It is built
// once from command-line flags and never modified afterwards.
type RunConfig struct {
	InstallXProtect bool
	InstallSafari   bool
	ForceSafari     bool
	CheckOnly       bool
}

// NewRunConfig applies the flag defaults: when neither category was requested
// explicitly, both are enabled.
func NewRunConfig(installXProtect, installSafari, forceSafari, checkOnly bool) RunConfig {
	if !installXProtect && !installSafari {
		installXProtect = true
		installSafari = true
	}
	return RunConfig{
		InstallXProtect: installXProtect,
		InstallSafari:   installSafari,
		ForceSafari:     forceSafari,
		CheckOnly:       checkOnly,
	}
}
