// pkg/bundle/extract.go
package bundle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// Extract unpacks a xz-compressed NAR bundle into destPath
func (b *Bundler) Extract(ctx context.Context, r io.Reader, destPath string) (*Stats, error) {
	xzReader, err := xz.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("creating xz reader: %w", err)
	}

	narReader := nar.NewReader(xzReader)
	stats := &Stats{}

	// Read and extract each entry
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := narReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading NAR entry: %w", err)
		}

		if hdr.Path != "" && !filepath.IsLocal(filepath.FromSlash(hdr.Path)) {
			return nil, fmt.Errorf("refusing to extract %q outside destination", hdr.Path)
		}

		// Construct target path
		targetPath := filepath.Join(destPath, filepath.FromSlash(hdr.Path))

		// Handle different file types
		switch hdr.Mode.Type() {
		case os.ModeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return nil, fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
			stats.Dirs++
		case os.ModeSymlink:
			// Ensure parent directory exists
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return nil, fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.LinkTarget, targetPath); err != nil {
				return nil, fmt.Errorf("creating symlink: %w", err)
			}
			stats.Symlinks++
		case 0: // Regular file
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return nil, fmt.Errorf("creating parent directory: %w", err)
			}

			perm := os.FileMode(0644)
			if hdr.Mode&0111 != 0 {
				perm = 0755
			}

			outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
			if err != nil {
				return nil, fmt.Errorf("creating file %s: %w", targetPath, err)
			}

			written, err := io.Copy(outFile, narReader)
			outFile.Close()
			if err != nil {
				return nil, fmt.Errorf("writing file: %w", err)
			}
			if written != hdr.Size {
				return nil, fmt.Errorf("size mismatch for %s", hdr.Path)
			}
			stats.Files++
			stats.Bytes += written

		default:
			// Ignore other types
		}
	}

	b.logger.Printf("✓ Extraction complete (%d files)", stats.Files)
	return stats, nil
}

// ExtractFile unpacks the bundle at path into destPath
func (b *Bundler) ExtractFile(ctx context.Context, path, destPath string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	defer f.Close()

	return b.Extract(ctx, f, destPath)
}
