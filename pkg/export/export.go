// pkg/export/export.go
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/modrules/pkg/core"
)

var encoders = map[string]core.Encoder{
	"text": textEncoder{},
	"yaml": yamlEncoder{},
	"json": jsonEncoder{},
	"toml": tomlEncoder{},
}

// Get returns the encoder for a format name
func Get(format string) (core.Encoder, error) {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format '%s' (available: %s)", format, strings.Join(Available(), ", "))
	}
	return enc, nil
}

// Available returns the registered format names, sorted
func Available() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// document wraps a multi-target result for the structured formats
type document struct {
	Targets []core.NamedRules `yaml:"targets" toml:"targets" json:"targets"`
}

type textEncoder struct{}

func (textEncoder) Name() string { return "text" }

func (textEncoder) Encode(w io.Writer, r *core.Rules) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Module: %s\n", r.ModuleName)
	fmt.Fprintf(&b, "Build: %s\n", r.BuildLabel)
	fmt.Fprintf(&b, "Platform: %s\n", r.Platform)
	fmt.Fprintf(&b, "Library dir: %s\n", r.LibraryDir)
	fmt.Fprintf(&b, "PCH usage: %s\n", r.PCHUsage)
	fmt.Fprintf(&b, "Private PCH header: %s\n", r.PrivatePCHHeaderFile)

	writeList(&b, "Libraries", r.Libraries)
	writeList(&b, "Include paths", r.IncludePaths)
	writeList(&b, "Public dependencies", r.PublicDependencies)
	writeList(&b, "Private dependencies", r.PrivateDependencies)

	_, err := io.WriteString(w, b.String())
	return err
}

func (e textEncoder) EncodeAll(w io.Writer, set []core.NamedRules) error {
	for i, nr := range set {
		header := fmt.Sprintf("== %s: %s ==\n", nr.Name, nr.Target)
		if i > 0 {
			header = "\n" + header
		}
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if err := e.Encode(w, nr.Rules); err != nil {
			return err
		}
	}
	return nil
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  %s\n", item)
	}
}

type yamlEncoder struct{}

func (yamlEncoder) Name() string { return "yaml" }

func (yamlEncoder) Encode(w io.Writer, r *core.Rules) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func (yamlEncoder) EncodeAll(w io.Writer, set []core.NamedRules) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Targets: set}); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

type jsonEncoder struct{}

func (jsonEncoder) Name() string { return "json" }

func (jsonEncoder) Encode(w io.Writer, r *core.Rules) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func (jsonEncoder) EncodeAll(w io.Writer, set []core.NamedRules) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Targets: set}); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

type tomlEncoder struct{}

func (tomlEncoder) Name() string { return "toml" }

func (tomlEncoder) Encode(w io.Writer, r *core.Rules) error {
	if err := toml.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	return nil
}

func (tomlEncoder) EncodeAll(w io.Writer, set []core.NamedRules) error {
	if err := toml.NewEncoder(w).Encode(document{Targets: set}); err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	return nil
}
