package config

import (
	"fmt"
	"strings"

	"github.com/openagentsbuilder/oab/pkg/client"
)

const defaultRenderMarkdown = true

var defaultTimeout = client.DefaultTimeout.String()

// presets maps a preset name to the instance it points at.
var presets = []struct {
	name    string
	baseURL string
}{
	{"hosted", client.DefaultBaseURL},
	{"local", "http://localhost:3000"},
}

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	markdown := defaultRenderMarkdown
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			BaseURL: client.DefaultBaseURL,
			Timeout: defaultTimeout,
		},
		Chat: ChatConfig{
			RenderMarkdown: &markdown,
		},
	}
}

// fillDefaults sets every unset field of c from NewDefaultConfig().
func (c *Config) fillDefaults() {
	d := NewDefaultConfig()

	if c.Client.BaseURL == "" {
		c.Client.BaseURL = d.Client.BaseURL
	}
	if c.Client.Timeout == "" {
		c.Client.Timeout = d.Client.Timeout
	}
	if c.Chat.RenderMarkdown == nil {
		c.Chat.RenderMarkdown = d.Chat.RenderMarkdown
	}
}

// PresetConfig returns the default config pointed at a well-known instance:
// "hosted" (app.openagentsbuilder.com) or "local" (a development server on
// localhost:3000). Names are case-insensitive.
func PresetConfig(name string) (*Config, error) {
	for _, p := range presets {
		if strings.EqualFold(p.name, name) {
			cfg := NewDefaultConfig()
			cfg.Client.BaseURL = p.baseURL
			return cfg, nil
		}
	}
	return nil, fmt.Errorf("unknown preset: %q (available: %s)", name, strings.Join(ValidPresetNames(), ", "))
}

// ValidPresetNames returns the recognized preset names.
func ValidPresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}
