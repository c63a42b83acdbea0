// pkg/env/library.go
package env

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/modrules/pkg/core"
)

// Verify checks that every library and include directory named in the
// resolved rules exists. Missing paths are reported, not returned as
// errors; only cancellation or an unsupported platform fail the call.
func Verify(ctx context.Context, r *core.Rules) (*Report, error) {
	family, err := familyOf(r)
	if err != nil {
		return nil, err
	}
	extensions := GetStaticLibraryExtensions(family)

	report := &Report{}

	for _, path := range r.Libraries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			report.MissingLibs = append(report.MissingLibs, path)
			continue
		}

		report.Libraries = append(report.Libraries, newLibrary(path, info.Size(), extensions))
	}

	for _, dir := range r.IncludePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !dirExists(dir) {
			report.MissingInclude = append(report.MissingInclude, dir)
		}
	}

	return report, nil
}

// newLibrary builds a Library from a file path
func newLibrary(path string, size int64, staticExts []string) *Library {
	fileName := filepath.Base(path)
	ext := filepath.Ext(fileName)

	// Extract library name (remove "lib" prefix and extension)
	name := strings.TrimSuffix(fileName, ext)
	if ext == ".a" {
		name = strings.TrimPrefix(name, "lib")
	}

	isStatic := false
	for _, s := range staticExts {
		if ext == s {
			isStatic = true
			break
		}
	}

	return &Library{
		Name:     name,
		Path:     path,
		Type:     ext,
		Size:     size,
		IsStatic: isStatic,
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
