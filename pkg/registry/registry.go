// pkg/registry/registry.go
package registry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/modrules/pkg/core"
)

// Entry represents a single rules/<fingerprint>/index.toml file
type Entry struct {
	Fingerprint string      `toml:"fingerprint"`
	ModuleRoot  string      `toml:"module_root"`
	CreatedAt   string      `toml:"created_at"`
	Target      core.Target `toml:"target"`
	Rules       core.Rules  `toml:"rules"`
}

// Registry is a cache of resolved rules keyed by fingerprint
type Registry struct {
	rulesDir string
}

// New creates a Registry under the given cache directory
func New(cacheDir string) *Registry {
	return &Registry{
		rulesDir: filepath.Join(cacheDir, "rules"),
	}
}

// Dir returns the directory entries are stored in
func (r *Registry) Dir() string {
	return r.rulesDir
}

// checkFingerprint rejects anything that is not a single path element
func checkFingerprint(fp string) error {
	if fp == "" {
		return fmt.Errorf("registry: entry fingerprint is required")
	}
	if fp == "." || !filepath.IsLocal(fp) || strings.ContainsAny(fp, `/\`) {
		return fmt.Errorf("registry: invalid fingerprint '%s'", fp)
	}
	return nil
}

// Save writes an entry, replacing any entry with the same fingerprint
func (r *Registry) Save(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("registry: entry fingerprint is required")
	}
	if err := checkFingerprint(entry.Fingerprint); err != nil {
		return err
	}
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	dir := filepath.Join(r.rulesDir, entry.Fingerprint)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("registry: creating entry directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(entry); err != nil {
		return fmt.Errorf("registry: encoding '%s': %w", entry.Fingerprint, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.toml"), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("registry: writing '%s': %w", entry.Fingerprint, err)
	}

	return nil
}

// Load reads and parses rules/<fingerprint>/index.toml
func (r *Registry) Load(fingerprint string) (*Entry, error) {
	if err := checkFingerprint(fingerprint); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.rulesDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("registry: cache is empty, run resolve first")
	}

	path := filepath.Join(r.rulesDir, fingerprint, "index.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		// Check if the directory exists, to give a better error message.
		dirPath := filepath.Dir(path)
		if _, statErr := os.Stat(dirPath); statErr == nil {
			return nil, fmt.Errorf("registry: found entry '%s' directory, but missing index.toml", fingerprint)
		}
		return nil, fmt.Errorf("registry: entry '%s' not found", fingerprint)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", fingerprint, err)
	}

	return &entry, nil
}

// List returns every readable entry, ordered by fingerprint
func (r *Registry) List() ([]*Entry, error) {
	dirEntries, err := os.ReadDir(r.rulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Entry{}, nil
		}
		return nil, fmt.Errorf("registry: reading cache: %w", err)
	}

	entries := make([]*Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}

		entry, err := r.Load(de.Name())
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
