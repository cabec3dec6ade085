package auto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignis-sh/ignis/compositor/auto"
	"github.com/ignis-sh/ignis/config"
	"github.com/ignis-sh/ignis/errors"
)

// clearSession blanks the session environment so detection cannot pick up a
// compositor running on the host.
func clearSession(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	t.Setenv("NIRI_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
}

func TestDetectExplicitBackend(t *testing.T) {
	clearSession(t)

	backend, err := auto.Detect(&config.Config{Backend: "hyprland"})
	require.NoError(t, err)
	assert.Equal(t, "hyprland", backend.Name())

	backend, err = auto.Detect(&config.Config{Backend: "niri"})
	require.NoError(t, err)
	assert.Equal(t, "niri", backend.Name())
}

func TestDetectUnknownBackend(t *testing.T) {
	clearSession(t)

	_, err := auto.Detect(&config.Config{Backend: "sway"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestDetectNoCompositorRunning(t *testing.T) {
	clearSession(t)

	_, err := auto.Detect(&config.Config{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIPCUnavailable, errors.GetCode(err))
}

func TestDetectConfiguredSocketPaths(t *testing.T) {
	clearSession(t)

	backend, err := auto.Detect(&config.Config{
		Backend: "niri",
		Niri:    config.NiriConfig{Socket: "/tmp/niri-test.sock"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/niri-test.sock", backend.Socket())
}
