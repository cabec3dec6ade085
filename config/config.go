// Package config loads the ignis.yml (or ignis.toml) configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ignis-sh/ignis/errors"
	"github.com/mitchellh/mapstructure"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config is the parsed ignis configuration.
type Config struct {
	// Backend forces a compositor backend ("hyprland" or "niri").
	// When empty the backend is detected at runtime.
	Backend string `yaml:"backend" toml:"backend"`

	Hyprland HyprlandConfig `yaml:"hyprland" toml:"hyprland"`
	Niri     NiriConfig     `yaml:"niri" toml:"niri"`

	// Extensions captures unknown top-level sections (e.g. "logging") so
	// other packages can decode their own configuration.
	Extensions map[string]interface{} `yaml:"-" toml:"-"`
}

// HyprlandConfig overrides the Hyprland socket locations derived from the
// environment.
type HyprlandConfig struct {
	CommandSocket string `yaml:"command_socket" toml:"command_socket"`
	EventSocket   string `yaml:"event_socket" toml:"event_socket"`
}

// NiriConfig overrides the Niri socket location derived from the environment.
type NiriConfig struct {
	Socket string `yaml:"socket" toml:"socket"`
}

// knownKeys are top-level sections owned by this struct; everything else
// lands in Extensions.
var knownKeys = map[string]struct{}{
	"backend":  {},
	"hyprland": {},
	"niri":     {},
}

// Load reads and parses a configuration file. The format is chosen by the
// file extension (.toml is TOML, everything else is YAML).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	if strings.HasSuffix(path, ".toml") {
		return LoadTOMLFromBytes(data)
	}
	return LoadFromBytes(data)
}

// LoadDefault loads the configuration from the standard location:
// $IGNIS_CONFIG if set, otherwise ignis.yml (or ignis.toml) under
// $XDG_CONFIG_HOME/ignis. A missing default config is not an error; an
// empty config is returned instead.
func LoadDefault() (*Config, error) {
	if path := os.Getenv("IGNIS_CONFIG"); path != "" {
		return Load(path)
	}

	dir := configDir()
	if dir == "" {
		return &Config{}, nil
	}

	for _, name := range []string{"ignis.yml", "ignis.yaml", "ignis.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return &Config{}, nil
}

// LoadFromBytes parses a YAML configuration document.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
	}
	cfg.Extensions = extractExtensions(raw)

	return &cfg, nil
}

// LoadTOMLFromBytes parses a TOML configuration document.
func LoadTOMLFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
	}
	cfg.Extensions = extractExtensions(raw)

	return &cfg, nil
}

// UnmarshalExtension decodes a specific extension section from the loaded
// configuration into the provided target struct. The target must be a
// pointer. A missing section leaves the target zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{} into
	// the strongly-typed target struct, keyed by yaml tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

func extractExtensions(raw map[string]interface{}) map[string]interface{} {
	ext := make(map[string]interface{})
	for key, value := range raw {
		if _, known := knownKeys[key]; !known {
			ext[key] = value
		}
	}
	return ext
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ignis")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "ignis")
	}
	return ""
}

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
