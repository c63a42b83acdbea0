// pkg/core/rules.go
package core

// BuildLabel selects the Debug or Release library directory
type BuildLabel string

const (
	LabelDebug   BuildLabel = "Debug"
	LabelRelease BuildLabel = "Release"
)

// Rules is the resolved build configuration of the module, in the shape
// the build orchestrator consumes it
type Rules struct {
	ModuleName string     `yaml:"module_name" toml:"module_name" json:"module_name"`
	BuildLabel BuildLabel `yaml:"build_label" toml:"build_label" json:"build_label"`
	Platform   string     `yaml:"platform" toml:"platform" json:"platform"`

	LibraryDir   string   `yaml:"library_dir" toml:"library_dir" json:"library_dir"`
	Libraries    []string `yaml:"libraries" toml:"libraries" json:"libraries"`
	IncludePaths []string `yaml:"include_paths" toml:"include_paths" json:"include_paths"`

	PublicDependencies  []string `yaml:"public_dependencies" toml:"public_dependencies" json:"public_dependencies"`
	PrivateDependencies []string `yaml:"private_dependencies" toml:"private_dependencies" json:"private_dependencies"`

	PCHUsage             string `yaml:"pch_usage" toml:"pch_usage" json:"pch_usage"`
	PrivatePCHHeaderFile string `yaml:"private_pch_header" toml:"private_pch_header" json:"private_pch_header"`
}

// NamedRules is one entry of a multi-target resolution
type NamedRules struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Target Target `yaml:"target" toml:"target" json:"target"`
	Rules  *Rules `yaml:"rules" toml:"rules" json:"rules"`
}
