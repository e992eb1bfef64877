// pkg/config/config.go - configuration settings for secupdate.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default location of the YAML configuration file.
// It can be overridden with the SECUPDATE_CONFIG environment variable.
const ConfigPath = "/usr/local/etc/secupdate.yaml"

// Configuration holds the configurable options for secupdate in YAML format.
type Configuration struct {
	SoftwareUpdateBinary  string `yaml:"SoftwareUpdateBinary"`
	LogLevel              string `yaml:"LogLevel"`
	LogDir                string `yaml:"LogDir"`
	Debug                 bool   `yaml:"Debug"`
	Verbose               bool   `yaml:"Verbose"`
	CommandTimeoutMinutes int    `yaml:"CommandTimeoutMinutes"` // 0 disables the timeout
}

// resolvePath returns the configuration file path, honoring the
// SECUPDATE_CONFIG override.
func resolvePath() string {
	if p := os.Getenv("SECUPDATE_CONFIG"); p != "" {
		return p
	}
	return ConfigPath
}

// LoadConfig loads the configuration from a YAML file. A missing file is not
// an error; defaults are returned instead.
func LoadConfig() (*Configuration, error) {
	return loadFrom(resolvePath())
}

func loadFrom(path string) (*Configuration, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}

	if cfg.SoftwareUpdateBinary == "" {
		cfg.SoftwareUpdateBinary = "/usr/sbin/softwareupdate"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir()
	}

	return cfg, nil
}

// SaveConfig writes the configuration to the YAML file.
func SaveConfig(cfg *Configuration) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing configuration: %w", err)
	}

	path := resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func defaultLogDir() string {
	return "/var/log/secupdate"
}

// GetDefaultConfig provides default configuration values.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		SoftwareUpdateBinary:  "/usr/sbin/softwareupdate",
		LogLevel:              "INFO",
		LogDir:                defaultLogDir(),
		Debug:                 false,
		Verbose:               false,
		CommandTimeoutMinutes: 0,
	}
}
