// pkg/matrix/matrix.go

// Package matrix loads target matrix files. A matrix file lists the
// targets a module is built for, so that one invocation can resolve rules
// for every platform/configuration pair a project ships:
//
//	target "editor-win64" {
//	  platform      = platform.Win64
//	  configuration = configuration.Development
//	}
//
//	target "editor-win64-debug" {
//	  platform      = "Win64"
//	  configuration = "Debug"
//	  debug_crt     = true
//	}
//
// Platforms and configurations may be written as plain strings or through
// the `platform` and `configuration` variables, which catch typos at parse
// time.
package matrix

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/platform"
	"github.com/arc-language/modrules/pkg/rules"
)

// Entry is one named target of a matrix
type Entry struct {
	Name       string
	Target     core.Target
	ModuleRoot string // Empty means the caller's module root
	File       string // File the entry was declared in
}

// Matrix is the ordered set of targets loaded from one or more files
type Matrix struct {
	Entries []*Entry
}

// Result pairs a matrix entry with its resolved rules
type Result struct {
	Entry *Entry
	Rules *core.Rules
}

// hclMatrixFile represents the top-level structure of a matrix file for decoding.
type hclMatrixFile struct {
	Targets []*hclTarget `hcl:"target,block"`
}

type hclTarget struct {
	Name          string  `hcl:"name,label"`
	Platform      string  `hcl:"platform"`
	Configuration string  `hcl:"configuration"`
	DebugCRT      *bool   `hcl:"debug_crt,optional"`
	ModuleRoot    *string `hcl:"module_root,optional"`
}

// evalContext exposes platform.<Name> and configuration.<Name>
func evalContext() *hcl.EvalContext {
	platforms := make(map[string]cty.Value)
	for _, p := range platform.All() {
		platforms[p.String()] = cty.StringVal(p.String())
	}

	configurations := make(map[string]cty.Value)
	for _, c := range core.Configurations() {
		configurations[string(c)] = cty.StringVal(string(c))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platform":      cty.ObjectVal(platforms),
			"configuration": cty.ObjectVal(configurations),
		},
	}
}

// Parse decodes matrix source. filename is used in diagnostics and to
// anchor relative module_root values.
func Parse(src []byte, filename string) (*Matrix, error) {
	return parse(hclparse.NewParser(), src, filename)
}

func parse(parser *hclparse.Parser, src []byte, filename string) (*Matrix, error) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse matrix file %s: %w", filename, diags)
	}

	var parsed hclMatrixFile
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode matrix file %s: %w", filename, diags)
	}

	m := &Matrix{Entries: make([]*Entry, 0, len(parsed.Targets))}
	for _, t := range parsed.Targets {
		entry, err := newEntry(t, filename)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, entry)
	}

	if err := m.checkNames(); err != nil {
		return nil, err
	}
	return m, nil
}

func newEntry(t *hclTarget, filename string) (*Entry, error) {
	p, err := platform.Parse(t.Platform)
	if err != nil {
		return nil, fmt.Errorf("%s: target %q: %w", filename, t.Name, err)
	}
	c, err := core.ParseConfiguration(t.Configuration)
	if err != nil {
		return nil, fmt.Errorf("%s: target %q: %w", filename, t.Name, err)
	}

	entry := &Entry{
		Name: t.Name,
		Target: core.Target{
			Platform:      p,
			Configuration: c,
		},
		File: filename,
	}
	if t.DebugCRT != nil {
		entry.Target.DebugBuildsActuallyUseDebugCRT = *t.DebugCRT
	}
	if t.ModuleRoot != nil && *t.ModuleRoot != "" {
		root := *t.ModuleRoot
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(filename), root)
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("%s: target %q: resolving module_root: %w", filename, t.Name, err)
		}
		entry.ModuleRoot = abs
	}

	return entry, nil
}

func (m *Matrix) checkNames() error {
	seen := make(map[string]string)
	for _, e := range m.Entries {
		if prev, ok := seen[e.Name]; ok {
			return fmt.Errorf("%s: target %q already declared in %s", e.File, e.Name, prev)
		}
		seen[e.Name] = e.File
	}
	return nil
}

// Load reads a matrix from a file, or from every .hcl file under a
// directory in lexical order
func Load(path string) (*Matrix, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading matrix: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = findFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find matrix files in %s: %w", path, err)
		}
	}

	parser := hclparse.NewParser()
	m := &Matrix{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading matrix file: %w", err)
		}

		part, err := parse(parser, src, file)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, part.Entries...)
	}

	if err := m.checkNames(); err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve resolves every entry in declaration order against an absolute
// module root. The first unsupported platform aborts the whole run; no
// partial results are returned.
func Resolve(ctx context.Context, m *Matrix, moduleRoot string) ([]*Result, error) {
	results := make([]*Result, 0, len(m.Entries))

	for _, e := range m.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root := moduleRoot
		if e.ModuleRoot != "" {
			root = e.ModuleRoot
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("target %q: resolving module root: %w", e.Name, err)
		}

		r, err := rules.Resolve(e.Target, root)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", e.Name, err)
		}
		results = append(results, &Result{Entry: e, Rules: r})
	}

	return results, nil
}

// findFilesByExtension recursively collects files with the given extension
func findFilesByExtension(rootPath, extension string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
