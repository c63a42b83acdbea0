// pkg/core/target.go
package core

import (
	"fmt"
	"strings"

	"github.com/arc-language/modrules/pkg/platform"
)

// Configuration is the engine build configuration
type Configuration string

const (
	ConfigDebug       Configuration = "Debug"
	ConfigDebugGame   Configuration = "DebugGame"
	ConfigDevelopment Configuration = "Development"
	ConfigShipping    Configuration = "Shipping"
	ConfigTest        Configuration = "Test"
)

// Configurations returns every known configuration
func Configurations() []Configuration {
	return []Configuration{ConfigDebug, ConfigDebugGame, ConfigDevelopment, ConfigShipping, ConfigTest}
}

// ParseConfiguration looks up a configuration by name, ignoring case
func ParseConfiguration(name string) (Configuration, error) {
	for _, c := range Configurations() {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown configuration: %q", name)
}

// Target describes what is being built. It is supplied by the build
// orchestrator once per configuration pass and never modified.
type Target struct {
	Platform      platform.Platform `yaml:"platform" toml:"platform" json:"platform"`
	Configuration Configuration     `yaml:"configuration" toml:"configuration" json:"configuration"`

	// DebugBuildsActuallyUseDebugCRT is set when Debug builds on Windows
	// link against the debug C runtime
	DebugBuildsActuallyUseDebugCRT bool `yaml:"debug_crt" toml:"debug_crt" json:"debug_crt"`
}

// String returns a compact "Platform/Configuration" form
func (t Target) String() string {
	s := fmt.Sprintf("%s/%s", t.Platform, t.Configuration)
	if t.DebugBuildsActuallyUseDebugCRT {
		s += "+debugcrt"
	}
	return s
}
