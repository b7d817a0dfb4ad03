package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RookieDailyLi/akka/internal/config"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, flag := range []string{"server", "path", "docs-dir", "branch", "config", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %q", flag)
	}
	assert.Equal(t, "s", cmd.Flags().Lookup("server").Shorthand)
	assert.Equal(t, "p", cmd.Flags().Lookup("path").Shorthand)
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(&rootOptions{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultServer, cfg.Server)
	assert.Equal(t, config.DefaultPath, cfg.Path)
	assert.Equal(t, config.DefaultDocsDir, cfg.DocsDir)
}

func TestBuildConfigFlagOverrides(t *testing.T) {
	cfg, err := buildConfig(&rootOptions{
		server: "relay.example.org",
		path:   "www2",
	})
	require.NoError(t, err)
	assert.Equal(t, "relay.example.org", cfg.Server)
	assert.Equal(t, "www2", cfg.Path)
	assert.Equal(t, config.DefaultDocsDir, cfg.DocsDir, "untouched fields keep defaults")
}

func TestBuildConfigFlagsBeatProfileFile(t *testing.T) {
	tempDir := t.TempDir()
	profile := filepath.Join(tempDir, "profile.json")
	err := os.WriteFile(profile, []byte(`{"server": "file.example.org", "path": "www-file"}`), 0644)
	require.NoError(t, err)

	cfg, err := buildConfig(&rootOptions{
		configFile: profile,
		server:     "flag.example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "flag.example.org", cfg.Server, "flags override the profile file")
	assert.Equal(t, "www-file", cfg.Path, "profile file overrides defaults")
}

func TestBuildConfigBadProfileFile(t *testing.T) {
	_, err := buildConfig(&rootOptions{configFile: "does-not-exist.json"})
	require.Error(t, err)
}

func TestHelpExitsCleanly(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--help"})
	assert.NoError(t, cmd.Execute())
}
