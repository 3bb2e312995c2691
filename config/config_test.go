package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{".yml", ".yaml"}, cfg.Scan.Extensions)
	assert.Contains(t, cfg.Scan.SkipFolders, "roles")
	assert.Contains(t, cfg.Scan.SkipFiles, "vars.yml")
	assert.Contains(t, cfg.Scan.UnsupportedPlatforms, "openstack")
	assert.Equal(t, "roles", cfg.Roles.Dir)
	assert.True(t, cfg.Roles.Display)
	assert.False(t, cfg.Roles.DisplayDeps)
}

func TestLoadCachesConfig(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second, "Load should return the cached snapshot")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ansigraph.yaml")
	content := []byte(`
scan:
  skip_folders: ["only_this"]
roles:
  display_deps: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"only_this"}, cfg.Scan.SkipFolders)
	assert.True(t, cfg.Roles.DisplayDeps)
	// Untouched sections keep their defaults
	assert.Equal(t, []string{".yml", ".yaml"}, cfg.Scan.Extensions)
}

func TestScanConfigHelpers(t *testing.T) {
	cfg := ScanConfig{
		Extensions:           []string{".yml", ".yaml"},
		SkipFolders:          []string{"adhoc"},
		SkipFiles:            []string{"vars.yml"},
		UnsupportedPlatforms: []string{"openstack"},
		IncludeUnsupported:   true,
	}

	assert.True(t, cfg.HasExtension("site.yml"))
	assert.True(t, cfg.HasExtension("SITE.YAML"))
	assert.False(t, cfg.HasExtension("README.md"))

	assert.True(t, cfg.SkipFolder("adhoc"))
	assert.False(t, cfg.SkipFolder("openstack"), "unsupported folders stay when included")
	cfg.IncludeUnsupported = false
	assert.True(t, cfg.SkipFolder("openstack"), "unsupported folders are skipped when excluded")

	assert.True(t, cfg.SkipFile("vars.yml"))
	assert.False(t, cfg.SkipFile("site.yml"))
	assert.True(t, cfg.Unsupported("openstack"))
}
