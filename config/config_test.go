package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ignis-sh/ignis/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
backend: niri
niri:
  socket: /run/user/1000/niri.sock
hyprland:
  command_socket: /tmp/hypr/.socket.sock
`))
	require.NoError(t, err)

	assert.Equal(t, "niri", cfg.Backend)
	assert.Equal(t, "/run/user/1000/niri.sock", cfg.Niri.Socket)
	assert.Equal(t, "/tmp/hypr/.socket.sock", cfg.Hyprland.CommandSocket)
}

func TestLoadTOMLFromBytes(t *testing.T) {
	cfg, err := LoadTOMLFromBytes([]byte(`
backend = "hyprland"

[hyprland]
event_socket = "/tmp/hypr/.socket2.sock"
`))
	require.NoError(t, err)

	assert.Equal(t, "hyprland", cfg.Backend)
	assert.Equal(t, "/tmp/hypr/.socket2.sock", cfg.Hyprland.EventSocket)
}

func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
backend: hyprland

logging:
  level: debug
  report_caller: true
`))
	require.NoError(t, err)
	require.Contains(t, cfg.Extensions, "logging")
	assert.NotContains(t, cfg.Extensions, "backend")

	type logConfig struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}

	var logCfg logConfig
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)

	// Missing extension keys leave the target zero-valued
	var missing logConfig
	require.NoError(t, cfg.UnmarshalExtension("nonexistent", &missing))
	assert.Equal(t, logConfig{}, missing)
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_NIRI_SOCKET", "/run/niri.sock")

	cfg, err := LoadFromBytes([]byte("niri:\n  socket: ${TEST_NIRI_SOCKET}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/run/niri.sock", cfg.Niri.Socket)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "ignis.yml"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadDefaultMissingConfigIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	os.Unsetenv("IGNIS_CONFIG")

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Backend)
}

func TestLoadDefaultHonorsIgnisConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("backend: niri\n"), 0644))
	t.Setenv("IGNIS_CONFIG", path)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "niri", cfg.Backend)
}
