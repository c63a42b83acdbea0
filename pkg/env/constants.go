// pkg/env/constants.go
package env

import (
	"github.com/arc-language/modrules/pkg/platform"
)

// flagStyle is the command-line convention of a toolchain
type flagStyle struct {
	Include     string // Include directory flag
	LibraryPath string // Library search path flag
	Link        string // Link-by-name flag, empty when libraries are passed as files
	LibPrefix   string // Stripped from file names when linking by name
	LibExt      string // Stripped from file names when linking by name
}

// GetFlagStyle returns the toolchain convention for a platform family
func GetFlagStyle(family platform.Family) (flagStyle, bool) {
	switch family {
	case platform.FamilyWindows:
		// MSVC: link.exe takes library files directly
		return flagStyle{
			Include:     "/I",
			LibraryPath: "/LIBPATH:",
			LibExt:      ".lib",
		}, true
	case platform.FamilyUnix:
		return flagStyle{
			Include:     "-I",
			LibraryPath: "-L",
			Link:        "-l",
			LibPrefix:   "lib",
			LibExt:      ".a",
		}, true
	default:
		return flagStyle{}, false
	}
}

// GetStaticLibraryExtensions returns static library extensions for a family
func GetStaticLibraryExtensions(family platform.Family) []string {
	switch family {
	case platform.FamilyWindows:
		return []string{".lib"}
	case platform.FamilyUnix:
		return []string{".a"}
	default:
		return nil
	}
}
