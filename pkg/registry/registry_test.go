package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/modrules/pkg/core"
	"github.com/arc-language/modrules/pkg/platform"
	"github.com/arc-language/modrules/pkg/rules"
)

func newEntry(t *testing.T, target core.Target) *Entry {
	t.Helper()

	moduleRoot := "/p/Source/SubstanceConnector"
	r, err := rules.Resolve(target, moduleRoot)
	require.NoError(t, err)
	fp, err := rules.Fingerprint(r)
	require.NoError(t, err)

	return &Entry{
		Fingerprint: fp,
		ModuleRoot:  moduleRoot,
		Target:      target,
		Rules:       *r,
	}
}

func TestSaveLoad(t *testing.T) {
	reg := New(t.TempDir())
	entry := newEntry(t, core.Target{Platform: platform.Win64, Configuration: core.ConfigDebug, DebugBuildsActuallyUseDebugCRT: true})

	require.NoError(t, reg.Save(entry))
	assert.NotEmpty(t, entry.CreatedAt)
	assert.FileExists(t, filepath.Join(reg.Dir(), entry.Fingerprint, "index.toml"))

	loaded, err := reg.Load(entry.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, entry, loaded)
}

func TestSave_RequiresFingerprint(t *testing.T) {
	reg := New(t.TempDir())
	require.Error(t, reg.Save(&Entry{}))
	require.Error(t, reg.Save(nil))
}

func TestLoad_Errors(t *testing.T) {
	reg := New(t.TempDir())

	_, err := reg.Load("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache is empty")

	require.NoError(t, os.MkdirAll(filepath.Join(reg.Dir(), "broken"), 0755))

	_, err = reg.Load("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = reg.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing index.toml")

	require.NoError(t, os.WriteFile(filepath.Join(reg.Dir(), "broken", "index.toml"), []byte("fingerprint = ["), 0644))
	_, err = reg.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestList(t *testing.T) {
	reg := New(t.TempDir())

	entries, err := reg.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	a := newEntry(t, core.Target{Platform: platform.Mac, Configuration: core.ConfigShipping})
	b := newEntry(t, core.Target{Platform: platform.Linux, Configuration: core.ConfigDebug})
	require.NoError(t, reg.Save(a))
	require.NoError(t, reg.Save(b))

	// Unreadable entries are skipped
	require.NoError(t, os.MkdirAll(filepath.Join(reg.Dir(), "junk"), 0755))

	entries, err = reg.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	fps := []string{entries[0].Fingerprint, entries[1].Fingerprint}
	assert.ElementsMatch(t, []string{a.Fingerprint, b.Fingerprint}, fps)
}

func TestLoadSave_RejectInvalidFingerprints(t *testing.T) {
	cache := t.TempDir()
	reg := New(cache)

	// A stray index one level up must stay unreachable
	require.NoError(t, reg.Save(newEntry(t, core.Target{Platform: platform.Linux, Configuration: core.ConfigShipping})))
	require.NoError(t, os.WriteFile(filepath.Join(reg.Dir(), "index.toml"), []byte(`fingerprint = "stray"`), 0644))

	for _, fp := range []string{"..", ".", "../rules", "a/b", `a\b`, "/abs", ""} {
		t.Run(fp, func(t *testing.T) {
			_, err := reg.Load(fp)
			require.Error(t, err)

			err = reg.Save(&Entry{Fingerprint: fp})
			require.Error(t, err)
		})
	}

	_, err := os.Stat(filepath.Join(cache, "index.toml"))
	assert.True(t, os.IsNotExist(err))
}
