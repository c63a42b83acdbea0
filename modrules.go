// modrules.go
package modrules

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/arc-language/modrules/pkg/bundle"
	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/env"
	"github.com/arc-language/modrules/pkg/matrix"
	"github.com/arc-language/modrules/pkg/platform"
	"github.com/arc-language/modrules/pkg/registry"
	"github.com/arc-language/modrules/pkg/rules"
)

// Re-export core types for convenience
type (
	Target        = core.Target
	Rules         = core.Rules
	Configuration = core.Configuration
	BuildLabel    = core.BuildLabel
	Platform      = platform.Platform
	CompilerFlags = env.CompilerFlags
	Report        = env.Report
	BundleOptions = bundle.Options
	BundleStats   = bundle.Stats
	CacheEntry    = registry.Entry
	MatrixResult  = matrix.Result
	NamedRules    = core.NamedRules

	// UnsupportedPlatformError is returned when a target platform has no
	// prebuilt libraries
	UnsupportedPlatformError = rules.UnsupportedPlatformError
)

// Re-export configuration constants
const (
	ConfigDebug       = core.ConfigDebug
	ConfigDebugGame   = core.ConfigDebugGame
	ConfigDevelopment = core.ConfigDevelopment
	ConfigShipping    = core.ConfigShipping
	ConfigTest        = core.ConfigTest
)

// LogPrefix starts every line of the debug logger
const LogPrefix = "[modrules] "

// Config holds configuration for the resolver
type Config struct {
	ModuleRoot string      // Directory of the module descriptor
	CachePath  string      // Root of the rules cache
	Debug      bool        // Enable debug logging
	Logger     *log.Logger // Custom logger (optional)
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	base := core.DefaultConfig()
	return &Config{
		ModuleRoot: base.ModuleRoot,
		CachePath:  base.CachePath,
	}
}

// Resolver resolves module rules for targets and runs the tooling built
// on top of them
type Resolver struct {
	config   *Config
	logger   *log.Logger
	registry *registry.Registry
	bundler  *bundle.Bundler
}

// New creates a resolver. The module root is made absolute so every
// resolved path is fully qualified.
func New(config *Config) (*Resolver, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.ModuleRoot == "" {
		return nil, &Error{Op: "init", Err: fmt.Errorf("module root is required")}
	}
	root, err := filepath.Abs(config.ModuleRoot)
	if err != nil {
		return nil, &Error{Op: "init", Err: fmt.Errorf("resolving module root: %w", err)}
	}
	config.ModuleRoot = root

	// Ensure CachePath is set
	if config.CachePath == "" {
		config.CachePath = core.DefaultConfig().CachePath
	}

	// Setup logger
	logger := config.Logger
	if logger == nil {
		if config.Debug {
			logger = log.New(os.Stderr, LogPrefix, log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	if config.Debug {
		logger.Printf("Initialized Resolver")
		logger.Printf("  ModuleRoot: %s", config.ModuleRoot)
		logger.Printf("  CachePath: %s", config.CachePath)
	}

	return &Resolver{
		config:   config,
		logger:   logger,
		registry: registry.New(config.CachePath),
		bundler:  bundle.New(logger),
	}, nil
}

// ModuleRoot returns the absolute module root in use
func (r *Resolver) ModuleRoot() string {
	return r.config.ModuleRoot
}

// Resolve computes the rules for a target. An unsupported platform is a
// fatal configuration error and yields no rules.
func (r *Resolver) Resolve(target Target) (*Rules, error) {
	if target.Platform == "" || target.Configuration == "" {
		return nil, &Error{Op: "resolve", Target: target.String(), Err: ErrInvalidTarget}
	}

	res, err := rules.Resolve(target, r.config.ModuleRoot)
	if err != nil {
		return nil, &Error{Op: "resolve", Target: target.String(), Err: err}
	}

	r.logger.Printf("Resolved %s -> %s/%s (%d libraries)", target, res.BuildLabel, res.Platform, len(res.Libraries))
	return res, nil
}

// ResolveAndCache resolves a target and records the result in the rules
// cache, returning the rules fingerprint
func (r *Resolver) ResolveAndCache(target Target) (*Rules, string, error) {
	res, err := r.Resolve(target)
	if err != nil {
		return nil, "", err
	}

	fp, err := rules.Fingerprint(res)
	if err != nil {
		return nil, "", &Error{Op: "fingerprint", Target: target.String(), Err: err}
	}

	entry := &registry.Entry{
		Fingerprint: fp,
		ModuleRoot:  r.config.ModuleRoot,
		Target:      target,
		Rules:       *res,
	}
	if err := r.registry.Save(entry); err != nil {
		return nil, "", &Error{Op: "cache", Target: target.String(), Err: err}
	}

	r.logger.Printf("Cached %s as %s", target, fp)
	return res, fp, nil
}

// ResolveMatrix resolves every target of a matrix file or directory.
// Targets without their own module_root use the resolver's.
func (r *Resolver) ResolveMatrix(ctx context.Context, path string) ([]*MatrixResult, error) {
	m, err := matrix.Load(path)
	if err != nil {
		return nil, &Error{Op: "matrix", Err: err}
	}

	r.logger.Printf("Loaded %d targets from %s", len(m.Entries), path)

	results, err := matrix.Resolve(ctx, m, r.config.ModuleRoot)
	if err != nil {
		return nil, &Error{Op: "matrix", Err: err}
	}
	return results, nil
}

// Flags resolves a target and returns its compiler and linker flags
func (r *Resolver) Flags(target Target) (*CompilerFlags, error) {
	res, err := r.Resolve(target)
	if err != nil {
		return nil, err
	}

	flags, err := env.GetCompilerFlags(res)
	if err != nil {
		return nil, &Error{Op: "flags", Target: target.String(), Err: err}
	}
	return flags, nil
}

// Verify resolves a target and checks its files exist on disk
func (r *Resolver) Verify(ctx context.Context, target Target) (*Rules, *Report, error) {
	res, err := r.Resolve(target)
	if err != nil {
		return nil, nil, err
	}

	report, err := env.Verify(ctx, res)
	if err != nil {
		return nil, nil, &Error{Op: "verify", Target: target.String(), Err: err}
	}

	r.logger.Printf("Verified %s: %d libraries present, %d missing, %d include dirs missing",
		target, len(report.Libraries), len(report.MissingLibs), len(report.MissingInclude))
	return res, report, nil
}

// Bundle resolves a target and writes its libraries and headers to a
// .nar.xz archive. An empty outPath writes bundle.FileName into the
// current directory. The written path is returned.
func (r *Resolver) Bundle(ctx context.Context, target Target, outPath string, opts *BundleOptions) (string, *BundleStats, error) {
	res, err := r.Resolve(target)
	if err != nil {
		return "", nil, err
	}

	if outPath == "" {
		outPath = bundle.FileName(res)
	}

	stats, err := r.bundler.WriteFile(ctx, outPath, res, opts)
	if err != nil {
		return "", nil, &Error{Op: "bundle", Target: target.String(), Err: err}
	}
	return outPath, stats, nil
}

// Extract unpacks a bundle into destPath
func (r *Resolver) Extract(ctx context.Context, bundlePath, destPath string) (*BundleStats, error) {
	stats, err := r.bundler.ExtractFile(ctx, bundlePath, destPath)
	if err != nil {
		return nil, &Error{Op: "extract", Err: err}
	}
	return stats, nil
}

// Cached loads a rules cache entry by fingerprint
func (r *Resolver) Cached(fingerprint string) (*CacheEntry, error) {
	entry, err := r.registry.Load(fingerprint)
	if err != nil {
		return nil, &Error{Op: "cache", Err: err}
	}
	return entry, nil
}

// CacheEntries lists all rules cache entries
func (r *Resolver) CacheEntries() ([]*CacheEntry, error) {
	entries, err := r.registry.List()
	if err != nil {
		return nil, &Error{Op: "cache", Err: err}
	}
	return entries, nil
}
