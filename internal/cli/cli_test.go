package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/modrules"
)

type fixture struct {
	pluginRoot string
	moduleRoot string
	cache      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pluginRoot := t.TempDir()
	return &fixture{
		pluginRoot: pluginRoot,
		moduleRoot: filepath.Join(pluginRoot, "Source", "SubstanceConnector"),
		cache:      t.TempDir(),
	}
}

// resetFlags restores every flag of the command tree to its default and
// clears its Changed mark
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	reset := func(fl *pflag.Flag) {
		require.NoError(t, fl.Value.Set(fl.DefValue), fl.Name)
		fl.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

// run executes the root command with the fixture's global flags. The
// command tree is shared between runs, so its flags are reset first.
func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(t, rootCmd)

	global := []string{
		"--config", filepath.Join(f.cache, "absent.yaml"),
		"--module-root", f.moduleRoot,
		"--cache", f.cache,
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, global...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestResolveCommand_JSON(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "resolve", "-p", "Win64", "-c", "Debug", "--debug-crt=true", "--format", "json")
	require.NoError(t, err)

	var rules modrules.Rules
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Equal(t, modrules.BuildLabel("Debug"), rules.BuildLabel)
	assert.Equal(t, filepath.Join(f.pluginRoot, "Libs", "Debug", "Win64", "substance_connector.lib"), rules.Libraries[1])

	// The resolution was cached
	out, err = f.run(t, "cache", "list", "-p", "Win64", "-c", "Debug")
	require.NoError(t, err)
	assert.Contains(t, out, "Win64/Debug+debugcrt")
}

func TestResolveCommand_Unsupported(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "resolve", "-p", "PS5", "-c", "Shipping", "--format", "text")
	require.ErrorIs(t, err, modrules.ErrPlatformNotSupported)
	assert.Empty(t, out, "no partial output")
}

func TestResolveCommand_Matrix(t *testing.T) {
	f := newFixture(t)

	matrixFile := filepath.Join(t.TempDir(), "targets.hcl")
	require.NoError(t, os.WriteFile(matrixFile, []byte(`
target "mac" {
  platform      = platform.Mac
  configuration = configuration.Debug
}
target "linux" {
  platform      = platform.Linux
  configuration = configuration.Shipping
}
`), 0644))

	out, err := f.run(t, "resolve", "--matrix", matrixFile, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "== mac: Mac/Debug ==")
	assert.Contains(t, out, "== linux: Linux/Shipping ==")
	assert.Contains(t, out, "libsubstanceconnector_framework.a")
}

func TestLibsAndFlagsCommands(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "libs", "-p", "Linux", "-c", "Debug")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, filepath.Join(f.pluginRoot, "Libs", "Debug", "Linux", "libjsoncpp.a"), lines[0])

	out, err = f.run(t, "flags", "-p", "Linux", "-c", "Debug", "--one-line")
	require.NoError(t, err)
	assert.Contains(t, out, "-lsubstance_connector")
	assert.Contains(t, out, "-L"+filepath.Join(f.pluginRoot, "Libs", "Debug", "Linux"))

	out, err = f.run(t, "includes", "-p", "Mac", "-c", "Shipping")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.pluginRoot, "include")+"\n"+filepath.Join(f.pluginRoot, "Source", "SubstanceEditor", "Classes")+"\n", out)
}

func TestDepsCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "deps", "-p", "Mac", "-c", "Shipping", "--public")
	require.NoError(t, err)
	assert.Equal(t, "AssetRegistry\nCore\nCoreUObject\nJson\nSubstanceEditor\nUnrealEd\nAssetTools\nSettings\n", out)

	out, err = f.run(t, "deps", "-p", "Win64", "-c", "Shipping")
	require.NoError(t, err)
	assert.Contains(t, out, "Public:\n  AssetRegistry\n")
	assert.Contains(t, out, "Private:\n  Projects\n")
}

func TestCheckAndBundleCommands(t *testing.T) {
	f := newFixture(t)
	targetArgs := []string{"-p", "Mac", "-c", "Development"}

	out, err := f.run(t, append([]string{"check"}, targetArgs...)...)
	require.ErrorIs(t, err, modrules.ErrMissingFiles)
	assert.Contains(t, out, "✗ missing library")

	libDir := filepath.Join(f.pluginRoot, "Libs", "Release", "Mac")
	require.NoError(t, os.MkdirAll(libDir, 0755))
	for _, name := range []string{"libjsoncpp.a", "libsubstance_connector.a", "libsubstanceconnector_framework.a"} {
		require.NoError(t, os.WriteFile(filepath.Join(libDir, name), []byte("!<arch>\n"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(f.pluginRoot, "include"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(f.pluginRoot, "Source", "SubstanceEditor", "Classes"), 0755))

	out, err = f.run(t, append([]string{"check"}, targetArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "All files present.")

	bundlePath := filepath.Join(t.TempDir(), "mac.nar.xz")
	out, err = f.run(t, append([]string{"bundle", "-o", bundlePath}, targetArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote "+bundlePath)

	dest := t.TempDir()
	out, err = f.run(t, "extract", bundlePath, dest)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Extracted 4 files")
	assert.FileExists(t, filepath.Join(dest, "Libs", "Release", "Mac", "libjsoncpp.a"))
}

func TestPlatformsCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "platforms")
	require.NoError(t, err)
	assert.Contains(t, out, "Win64")
	assert.Contains(t, out, "not supported")
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "libs", "-p", "Win64", "-c", "Debug", "--debug-crt")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("Libs", "Debug", "Win64"))

	out, err = f.run(t, "libs", "-p", "Win64", "-c", "Debug")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("Libs", "Release", "Win64"))

	out, err = f.run(t, "deps", "-p", "Win64", "-c", "Debug", "--private")
	require.NoError(t, err)
	assert.NotContains(t, out, "Public:")

	out, err = f.run(t, "deps", "-p", "Win64", "-c", "Debug")
	require.NoError(t, err)
	assert.Contains(t, out, "Public:")
}

func TestResolveCommand_MatrixStructuredFormats(t *testing.T) {
	f := newFixture(t)

	matrixFile := filepath.Join(t.TempDir(), "targets.hcl")
	require.NoError(t, os.WriteFile(matrixFile, []byte(`
target "mac" {
  platform      = platform.Mac
  configuration = configuration.Debug
}
target "win" {
  platform      = platform.Win64
  configuration = configuration.Shipping
}
`), 0644))

	out, err := f.run(t, "resolve", "--matrix", matrixFile, "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Targets []modrules.NamedRules `json:"targets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Targets, 2)
	assert.Equal(t, "mac", doc.Targets[0].Name)
	assert.Equal(t, "win", doc.Targets[1].Name)
	assert.Equal(t, "Win64", doc.Targets[1].Rules.Platform)

	out, err = f.run(t, "resolve", "--matrix", matrixFile, "--format", "toml")
	require.NoError(t, err)
	var tomlDoc struct {
		Targets []modrules.NamedRules `toml:"targets"`
	}
	_, err = toml.Decode(out, &tomlDoc)
	require.NoError(t, err)
	require.Len(t, tomlDoc.Targets, 2)
	assert.Equal(t, "Mac", tomlDoc.Targets[0].Rules.Platform)
}

func TestCacheShow_TextHeaderIgnoresFormatCase(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "resolve", "-p", "Linux", "-c", "Shipping", "--format", "json")
	require.NoError(t, err)

	r, err := modrules.New(&modrules.Config{ModuleRoot: f.moduleRoot, CachePath: f.cache})
	require.NoError(t, err)
	entries, err := r.CacheEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out, err := f.run(t, "cache", "show", entries[0].Fingerprint, "--format", "TEXT")
	require.NoError(t, err)
	assert.Contains(t, out, "Target: Linux/Shipping\n")
	assert.Contains(t, out, "Module root: "+f.moduleRoot+"\n")
	assert.Contains(t, out, "Module: SubstanceConnector\n")
}

func TestCacheShow_RejectsPathFingerprint(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "resolve", "-p", "Linux", "-c", "Shipping", "--format", "json")
	require.NoError(t, err)

	_, err = f.run(t, "cache", "show", "..")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fingerprint")
}
