package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/openagentsbuilder/oab/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

// Configer reads and writes config.toml in a resolved .oab/ directory.
type Configer struct {
	path string
}

// NewConfiger resolves the .oab/ directory (override first) and returns a
// Configer for the config.toml inside it. The file itself may not exist yet.
func NewConfiger(override string) (*Configer, error) {
	path, err := dotdir.NewManager().File(override, configFile)
	if err != nil {
		return nil, err
	}
	return &Configer{path: path}, nil
}

// keyOrder lists config keys in TOML section order.
var keyOrder = []string{
	"client.base_url",
	"client.database_id_hash",
	"client.agent_id",
	"client.timeout",
	"chat.render_markdown",
	"chat.show_reasoning",
}

// ValidConfigKeys returns every supported configuration key in section order.
func ValidConfigKeys() []string {
	return slices.Clone(keyOrder)
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

// GetTarget returns the path of config.toml.
func (c *Configer) GetTarget() string {
	return c.path
}

// LoadConfig returns the stored configuration with defaults filled in for
// every unset field, or NewDefaultConfig() when config.toml does not exist.
func (c *Configer) LoadConfig() (*Config, error) {
	cfg := &Config{}
	found, err := dotdir.ReadTOML(c.path, cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return NewDefaultConfig(), nil
	}

	if cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// SaveConfig replaces config.toml with cfg.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}
	return dotdir.WriteTOML(c.path, cfg)
}

// SetConfigValue validates value for key and stores it.
func (c *Configer) SetConfigValue(key, value string) error {
	info, err := lookupKey(key)
	if err != nil {
		return err
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue returns the effective value of key, defaults included.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, err := lookupKey(key)
	if err != nil {
		return "", err
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}

func lookupKey(key string) (configKeyInfo, error) {
	info, ok := configKeys[key]
	if !ok {
		return configKeyInfo{}, fmt.Errorf("unknown config key: %q", key)
	}
	return info, nil
}
