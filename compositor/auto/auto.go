// Package auto selects a compositor backend from the configuration or, when
// none is configured, from the sockets present in the session environment.
package auto

import (
	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/compositor/hyprland"
	"github.com/ignis-sh/ignis/compositor/niri"
	"github.com/ignis-sh/ignis/config"
	"github.com/ignis-sh/ignis/errors"
)

// Detect returns the backend named by cfg.Backend, or probes for a running
// compositor when the configuration leaves the choice open. Hyprland wins
// ties.
func Detect(cfg *config.Config) (compositor.Backend, error) {
	switch cfg.Backend {
	case "hyprland":
		return hyprland.New(cfg.Hyprland), nil
	case "niri":
		return niri.New(cfg.Niri), nil
	case "":
	default:
		return nil, errors.ConfigInvalid("unknown backend: " + cfg.Backend)
	}

	if hyprland.Detected() {
		return hyprland.New(cfg.Hyprland), nil
	}
	if niri.Detected() {
		return niri.New(cfg.Niri), nil
	}
	return nil, errors.New(errors.ErrCodeIPCUnavailable, "no running compositor detected")
}

// NewClient detects a backend and wraps it in a client. The client is not
// started; call Start once the compositor is reachable.
func NewClient(cfg *config.Config) (*compositor.Client, error) {
	backend, err := Detect(cfg)
	if err != nil {
		return nil, err
	}
	return compositor.New(backend), nil
}
