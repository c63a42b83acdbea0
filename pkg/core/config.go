// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds modrules configuration
type Config struct {
	ModuleRoot string         `yaml:"module_root"`
	CachePath  string         `yaml:"cache_path"`
	Format     string         `yaml:"format"`
	Debug      bool           `yaml:"debug"`
	Target     TargetDefaults `yaml:"target"`
}

// TargetDefaults are used when the command line does not name a target
type TargetDefaults struct {
	Platform      string `yaml:"platform"`
	Configuration string `yaml:"configuration"`
	DebugCRT      bool   `yaml:"debug_crt"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		ModuleRoot: getDefaultModuleRoot(),
		CachePath:  getDefaultCachePath(),
		Format:     "text",
		Debug:      false,
		Target: TargetDefaults{
			Platform:      "", // Host platform
			Configuration: string(ConfigDevelopment),
		},
	}
}

// LoadConfig loads configuration from file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "modrules", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "modrules", "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultModuleRoot() string {
	if path := os.Getenv("MODRULES_MODULE_ROOT"); path != "" {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func getDefaultCachePath() string {
	if path := os.Getenv("MODRULES_CACHE_PATH"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "modrules")
	}

	return filepath.Join(home, ".cache", "modrules")
}
