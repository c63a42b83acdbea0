// pkg/bundle/bundle.go
package bundle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/nix/nar"

	"github.com/arc-language/modrules/pkg/core"
)

// Bundler packs the prebuilt libraries and headers of resolved rules into
// a xz-compressed NAR archive laid out like the plugin directory, and
// unpacks such archives again
type Bundler struct {
	logger *log.Logger
}

// New creates a Bundler. A nil logger discards all output.
func New(logger *log.Logger) *Bundler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Bundler{logger: logger}
}

// FileName returns the conventional bundle file name for rules
func FileName(r *core.Rules) string {
	return fmt.Sprintf("%s-%s-%s.nar.xz", r.ModuleName, r.BuildLabel, r.Platform)
}

// PluginRoot recovers the plugin directory from resolved rules. The
// library directory always sits at <plugin>/Libs/<label>/<platform>.
func PluginRoot(r *core.Rules) string {
	return filepath.Join(r.LibraryDir, "..", "..", "..")
}

// node is one entry of the archive tree
type node struct {
	children map[string]*node // non-nil for directories
	src      string           // file to copy content from
	data     []byte           // inline content, used when src is empty
	link     string           // symlink target
	size     int64
	exec     bool
}

func newDir() *node {
	return &node{children: make(map[string]*node)}
}

// add places leaf at the slash-separated path rel, creating directories
func (n *node) add(rel string, leaf *node) error {
	parts := strings.Split(rel, "/")
	cur := n
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur.children[part]
		if !ok {
			child = newDir()
			cur.children[part] = child
		} else if child.children == nil {
			return fmt.Errorf("path conflict at %s", rel)
		}
		cur = child
	}

	last := parts[len(parts)-1]
	if existing, ok := cur.children[last]; ok {
		if existing.children != nil && leaf.children != nil {
			return nil
		}
		return fmt.Errorf("duplicate entry %s", rel)
	}
	cur.children[last] = leaf
	return nil
}

// Write streams a bundle for the rules to w
func (b *Bundler) Write(ctx context.Context, w io.Writer, r *core.Rules, opts *Options) (*Stats, error) {
	if r == nil {
		return nil, fmt.Errorf("rules cannot be nil")
	}
	if opts == nil {
		opts = &Options{}
	}

	root, err := b.collect(r, opts)
	if err != nil {
		return nil, err
	}

	xzWriter, err := xz.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("creating xz writer: %w", err)
	}

	stats := &Stats{}
	nw := nar.NewWriter(xzWriter)
	if err := b.writeNode(ctx, nw, "", root, stats); err != nil {
		return nil, err
	}
	if err := nw.Close(); err != nil {
		return nil, fmt.Errorf("finishing NAR archive: %w", err)
	}
	if err := xzWriter.Close(); err != nil {
		return nil, fmt.Errorf("finishing xz stream: %w", err)
	}

	b.logger.Printf("✓ Bundle complete (%d files, %d bytes)", stats.Files, stats.Bytes)
	return stats, nil
}

// WriteFile writes a bundle to path, removing the partial file on failure
func (b *Bundler) WriteFile(ctx context.Context, path string, r *core.Rules, opts *Options) (*Stats, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating bundle file: %w", err)
	}

	bw := bufio.NewWriter(f)
	stats, err := b.Write(ctx, bw, r, opts)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	return stats, nil
}

// collect builds the archive tree from the rules
func (b *Bundler) collect(r *core.Rules, opts *Options) (*node, error) {
	pluginRoot := PluginRoot(r)
	root := newDir()

	for _, lib := range r.Libraries {
		rel, err := relativeTo(pluginRoot, lib)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(lib)
		if err != nil {
			return nil, fmt.Errorf("library %s: %w", lib, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("library %s is not a regular file", lib)
		}

		b.logger.Printf("Adding library %s", rel)
		if err := root.add(rel, &node{src: lib, size: info.Size()}); err != nil {
			return nil, err
		}
	}

	if !opts.SkipHeaders {
		for _, inc := range r.IncludePaths {
			if err := b.collectDir(root, pluginRoot, inc); err != nil {
				return nil, err
			}
		}
	}

	if !opts.SkipManifest {
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encoding manifest: %w", err)
		}
		if err := root.add(ManifestName, &node{data: data, size: int64(len(data))}); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// collectDir adds a directory tree to the archive
func (b *Bundler) collectDir(root *node, pluginRoot, dir string) error {
	b.logger.Printf("Adding include directory %s", dir)

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("include directory %s: %w", dir, err)
		}

		rel, err := relativeTo(pluginRoot, path)
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return root.add(rel, newDir())
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("reading symlink %s: %w", path, err)
			}
			return root.add(rel, &node{link: target})
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return root.add(rel, &node{src: path, size: info.Size(), exec: info.Mode()&0111 != 0})
		default:
			// Ignore other types
			return nil
		}
	})
}

// writeNode writes n and its children in NAR order
func (b *Bundler) writeNode(ctx context.Context, nw *nar.Writer, path string, n *node, stats *Stats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case n.children != nil:
		if err := nw.WriteHeader(&nar.Header{Path: path, Mode: fs.ModeDir | 0555}); err != nil {
			return fmt.Errorf("writing directory %q: %w", path, err)
		}
		stats.Dirs++

		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			childPath := name
			if path != "" {
				childPath = path + "/" + name
			}
			if err := b.writeNode(ctx, nw, childPath, n.children[name], stats); err != nil {
				return err
			}
		}

	case n.link != "":
		if err := nw.WriteHeader(&nar.Header{Path: path, Mode: fs.ModeSymlink | 0777, LinkTarget: n.link}); err != nil {
			return fmt.Errorf("writing symlink %q: %w", path, err)
		}
		stats.Symlinks++

	default:
		mode := fs.FileMode(0444)
		if n.exec {
			mode = 0555
		}
		if err := nw.WriteHeader(&nar.Header{Path: path, Mode: mode, Size: n.size}); err != nil {
			return fmt.Errorf("writing file %q: %w", path, err)
		}

		if n.src == "" {
			if _, err := nw.Write(n.data); err != nil {
				return fmt.Errorf("writing file %q: %w", path, err)
			}
		} else if err := copyFileContent(nw, n.src, n.size); err != nil {
			return fmt.Errorf("writing file %q: %w", path, err)
		}
		stats.Files++
		stats.Bytes += n.size
	}

	return nil
}

func copyFileContent(w io.Writer, src string, size int64) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.CopyN(w, f, size); err != nil {
		return fmt.Errorf("size mismatch or read failure: %w", err)
	}
	return nil
}

// relativeTo returns path relative to root in slash form, refusing
// paths that escape root
func relativeTo(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("path %s is not under plugin root %s: %w", path, root, err)
	}
	if rel == "." || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("path %s is not under plugin root %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
