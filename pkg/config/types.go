package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config represents the persistent oab configuration stored as config.toml
// in the .oab/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Chat    ChatConfig   `toml:"chat"`
}

// ClientConfig selects the Open Agents Builder instance and tenant that CLI
// commands talk to. The API key lives in credentials.toml, never here.
type ClientConfig struct {
	BaseURL        string `toml:"base_url,omitempty"`
	DatabaseIDHash string `toml:"database_id_hash,omitempty"`
	AgentID        string `toml:"agent_id,omitempty"`

	// Timeout is a Go duration string (e.g. "60s") bounding non-streaming
	// calls.
	Timeout string `toml:"timeout,omitempty"`
}

// TimeoutDuration parses Timeout. An empty or invalid value yields zero, which
// the client treats as its default.
func (c ClientConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ChatConfig holds settings for "oab chat".
type ChatConfig struct {
	// RenderMarkdown re-renders each finished reply as terminal markdown.
	RenderMarkdown *bool `toml:"render_markdown,omitempty"`

	// ShowReasoning prints reasoning parts as they stream.
	ShowReasoning bool `toml:"show_reasoning,omitempty"`
}

// Markdown reports whether replies are rendered as markdown.
func (c ChatConfig) Markdown() bool {
	return c.RenderMarkdown == nil || *c.RenderMarkdown
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.base_url": {
		get: func(c *Config) string { return c.Client.BaseURL },
		set: func(c *Config, v string) error { c.Client.BaseURL = v; return nil },
	},
	"client.database_id_hash": {
		get: func(c *Config) string { return c.Client.DatabaseIDHash },
		set: func(c *Config, v string) error { c.Client.DatabaseIDHash = v; return nil },
	},
	"client.agent_id": {
		get: func(c *Config) string { return c.Client.AgentID },
		set: func(c *Config, v string) error { c.Client.AgentID = v; return nil },
	},
	"client.timeout": {
		get: func(c *Config) string { return c.Client.Timeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for client.timeout: %w", err)
			}
			c.Client.Timeout = v
			return nil
		},
	},
	"chat.render_markdown": {
		get: func(c *Config) string { return strconv.FormatBool(c.Chat.Markdown()) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for chat.render_markdown: %w", err)
			}
			c.Chat.RenderMarkdown = &b
			return nil
		},
	},
	"chat.show_reasoning": {
		get: func(c *Config) string { return strconv.FormatBool(c.Chat.ShowReasoning) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for chat.show_reasoning: %w", err)
			}
			c.Chat.ShowReasoning = b
			return nil
		},
	},
}
