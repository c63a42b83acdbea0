// pkg/rules/resolver.go
package rules

import (
	"path/filepath"

	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/platform"
)

// Library is one prebuilt static library of the connector
type Library struct {
	Base     string // Base name (e.g., "substance_connector")
	FileName string // Platform file name (e.g., "libsubstance_connector.a")
}

// BuildLabel picks the library directory for a target. Debug builds on
// Windows only get debug libraries when they also link the debug CRT;
// the prebuilt debug libraries are linked against it and would mismatch
// the release CRT otherwise.
func BuildLabel(t core.Target) core.BuildLabel {
	if t.Configuration == core.ConfigDebug {
		if t.Platform.IsInGroup(platform.GroupWindows) {
			if t.DebugBuildsActuallyUseDebugCRT {
				return core.LabelDebug
			}
		} else {
			return core.LabelDebug
		}
	}

	return core.LabelRelease
}

// PlatformLabel returns the platform directory name for a target
func PlatformLabel(t core.Target) string {
	return t.Platform.String()
}

// PluginRoot returns the plugin directory two levels above the module root
func PluginRoot(moduleRoot string) string {
	return filepath.Join(moduleRoot, "..", "..")
}

// LibraryDir returns <module_root>/../../Libs/<build_label>/<platform_label>
func LibraryDir(t core.Target, moduleRoot string) string {
	return filepath.Join(PluginRoot(moduleRoot), "Libs", string(BuildLabel(t)), PlatformLabel(t))
}

// Libraries lists the static libraries for a platform in link order
func Libraries(p platform.Platform) ([]Library, error) {
	var layout libraryLayout

	switch platform.FamilyOf(p) {
	case platform.FamilyWindows:
		layout = windowsLibraries
	case platform.FamilyUnix:
		layout = unixLibraries
	default:
		return nil, &UnsupportedPlatformError{Platform: p}
	}

	libs := make([]Library, 0, len(layout.Bases))
	for _, base := range layout.Bases {
		libs = append(libs, Library{
			Base:     base,
			FileName: layout.Prefix + base + layout.Extension,
		})
	}
	return libs, nil
}

// LibrarySet returns the full path of every static library to link
func LibrarySet(t core.Target, moduleRoot string) ([]string, error) {
	libs, err := Libraries(t.Platform)
	if err != nil {
		return nil, err
	}

	dir := LibraryDir(t, moduleRoot)
	paths := make([]string, 0, len(libs))
	for _, lib := range libs {
		paths = append(paths, filepath.Join(dir, lib.FileName))
	}
	return paths, nil
}

// IncludePaths returns the public include directories of the module
func IncludePaths(moduleRoot string) []string {
	root := PluginRoot(moduleRoot)
	return []string{
		filepath.Join(root, "include"),
		filepath.Join(root, "Source", "SubstanceEditor", "Classes"),
	}
}

// Dependencies returns copies of the private and public module
// dependency lists
func Dependencies() (private, public []string) {
	private = append([]string(nil), privateDependencies...)
	public = append([]string(nil), publicDependencies...)
	return private, public
}

// Resolve computes the complete rules for a target. The only failure is
// an unsupported platform, in which case no rules are returned.
func Resolve(t core.Target, moduleRoot string) (*core.Rules, error) {
	libs, err := LibrarySet(t, moduleRoot)
	if err != nil {
		return nil, err
	}

	private, public := Dependencies()

	return &core.Rules{
		ModuleName:           ModuleName,
		BuildLabel:           BuildLabel(t),
		Platform:             PlatformLabel(t),
		LibraryDir:           LibraryDir(t, moduleRoot),
		Libraries:            libs,
		IncludePaths:         IncludePaths(moduleRoot),
		PublicDependencies:   public,
		PrivateDependencies:  private,
		PCHUsage:             PCHUsage,
		PrivatePCHHeaderFile: PrivatePCHHeaderFile,
	}, nil
}
