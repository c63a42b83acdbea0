// pkg/env/types.go
package env

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "substance_connector")
	Path     string // Absolute path to library file
	Type     string // Extension: ".a", ".lib"
	Size     int64  // File size in bytes
	IsStatic bool   // True for .a and .lib files
}

// CompilerFlags holds compiler and linker flags
type CompilerFlags struct {
	IncludeFlags []string // -I or /I flags
	LibraryFlags []string // -L or /LIBPATH: flags
	LinkFlags    []string // -l flags, or library file names for MSVC
}

// All returns every flag in compiler-then-linker order
func (f *CompilerFlags) All() []string {
	all := make([]string, 0, len(f.IncludeFlags)+len(f.LibraryFlags)+len(f.LinkFlags))
	all = append(all, f.IncludeFlags...)
	all = append(all, f.LibraryFlags...)
	all = append(all, f.LinkFlags...)
	return all
}

// Report is the result of checking resolved rules against the disk
type Report struct {
	Libraries      []*Library // Libraries that exist
	MissingLibs    []string   // Library paths that do not exist
	MissingInclude []string   // Include directories that do not exist
}

// OK reports whether everything the rules reference exists
func (r *Report) OK() bool {
	return len(r.MissingLibs) == 0 && len(r.MissingInclude) == 0
}
