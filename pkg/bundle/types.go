// pkg/bundle/types.go
package bundle

// ManifestName is the file at the bundle root describing its rules
const ManifestName = "modrules.yaml"

// Options configures bundle creation
type Options struct {
	SkipHeaders  bool // Leave include directories out of the bundle
	SkipManifest bool // Leave the rules manifest out of the bundle
}

// Stats summarizes a written or extracted bundle
type Stats struct {
	Files    int   // Regular files
	Dirs     int   // Directories, including the root
	Symlinks int   // Symbolic links
	Bytes    int64 // Total regular file content
}
