package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty dir and clears every variable LoadConfig reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvConfig, EnvDataDir, EnvProject, EnvUser, EnvLogUseCases} {
		t.Setenv(k, "")
	}
	return home
}

func TestDefaultConfig_DataDirNextToExecutable(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "data", filepath.Base(cfg.DataDir))
	assert.False(t, cfg.LogUseCases)
	assert.Empty(t, cfg.Project)
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_DefaultFileInHome(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".timekeeper", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data_dir: logs\nproject: Apollo\nuser: ada\nlog_use_cases: true\n"), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".timekeeper", "logs"), cfg.DataDir, "relative dirs resolve against the config file")
	assert.Equal(t, "Apollo", cfg.Project)
	assert.Equal(t, "ada", cfg.User)
	assert.True(t, cfg.LogUseCases)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/tk\nproject: Apollo\nlog_use_cases: true\n"), 0644))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvProject, "Gemini")
	t.Setenv(EnvLogUseCases, "false")
	t.Setenv(EnvDataDir, "~/timelogs")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "~/timelogs", cfg.DataDir)
	assert.Equal(t, "Gemini", cfg.Project)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadConfig_InvalidBoolIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogUseCases, "sometimes")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
