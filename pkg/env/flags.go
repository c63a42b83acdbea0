// pkg/env/flags.go
package env

import (
	"path/filepath"
	"strings"

	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/platform"
	"github.com/arc-language/modrules/pkg/rules"
)

// familyOf returns the family of the platform named in resolved rules
func familyOf(r *core.Rules) (platform.Family, error) {
	p, err := platform.Parse(r.Platform)
	if err != nil {
		return platform.FamilyUnsupported, err
	}

	family := platform.FamilyOf(p)
	if family == platform.FamilyUnsupported {
		return family, &rules.UnsupportedPlatformError{Platform: p}
	}
	return family, nil
}

// GetCompilerFlags generates compiler and linker flags for resolved rules
func GetCompilerFlags(r *core.Rules) (*CompilerFlags, error) {
	family, err := familyOf(r)
	if err != nil {
		return nil, err
	}
	style, _ := GetFlagStyle(family)

	flags := &CompilerFlags{}

	for _, inc := range r.IncludePaths {
		flags.IncludeFlags = append(flags.IncludeFlags, style.Include+inc)
	}

	if r.LibraryDir != "" {
		flags.LibraryFlags = append(flags.LibraryFlags, style.LibraryPath+r.LibraryDir)
	}

	for _, lib := range r.Libraries {
		name := filepath.Base(lib)
		if style.Link == "" {
			flags.LinkFlags = append(flags.LinkFlags, name)
			continue
		}
		name = strings.TrimPrefix(name, style.LibPrefix)
		name = strings.TrimSuffix(name, style.LibExt)
		flags.LinkFlags = append(flags.LinkFlags, style.Link+name)
	}

	return flags, nil
}
