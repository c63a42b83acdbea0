package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("MODRULES_CACHE_PATH", "/tmp/cache")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "/tmp/cache", cfg.CachePath)
	assert.Equal(t, string(ConfigDevelopment), cfg.Target.Configuration)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
module_root: /work/Plugins/Substance/Source/SubstanceConnector
format: yaml
target:
  platform: Win64
  configuration: Debug
  debug_crt: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/work/Plugins/Substance/Source/SubstanceConnector", cfg.ModuleRoot)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "Win64", cfg.Target.Platform)
	assert.Equal(t, "Debug", cfg.Target.Configuration)
	assert.True(t, cfg.Target.DebugCRT)
	assert.NotEmpty(t, cfg.CachePath, "unset fields keep their defaults")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unterminated"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.ModuleRoot = "/plugin/Source/SubstanceConnector"
	cfg.Target.Platform = "Mac"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseConfiguration(t *testing.T) {
	c, err := ParseConfiguration("shipping")
	require.NoError(t, err)
	assert.Equal(t, ConfigShipping, c)

	_, err = ParseConfiguration("Profile")
	require.Error(t, err)
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "Win64/Debug+debugcrt", Target{Platform: "Win64", Configuration: ConfigDebug, DebugBuildsActuallyUseDebugCRT: true}.String())
	assert.Equal(t, "Mac/Shipping", Target{Platform: "Mac", Configuration: ConfigShipping}.String())
}
