package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/openagentsbuilder/oab/pkg/dotdir"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "OAB"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the OAB_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (OAB_CLIENT_BASE_URL, OAB_CLIENT_AGENT_ID, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	v.AddConfigPath(target)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Client
	v.SetDefault("client.base_url", d.Client.BaseURL)
	v.SetDefault("client.database_id_hash", d.Client.DatabaseIDHash)
	v.SetDefault("client.agent_id", d.Client.AgentID)
	v.SetDefault("client.timeout", d.Client.Timeout)

	// Chat
	v.SetDefault("chat.render_markdown", d.Chat.Markdown())
	v.SetDefault("chat.show_reasoning", d.Chat.ShowReasoning)
}

// FromViper builds a Config from the merged flag, env, file and default view.
func FromViper(v *viper.Viper) *Config {
	markdown := v.GetBool("chat.render_markdown")
	return &Config{
		Version: v.GetInt("version"),
		Client: ClientConfig{
			BaseURL:        v.GetString("client.base_url"),
			DatabaseIDHash: v.GetString("client.database_id_hash"),
			AgentID:        v.GetString("client.agent_id"),
			Timeout:        v.GetDuration("client.timeout").String(),
		},
		Chat: ChatConfig{
			RenderMarkdown: &markdown,
			ShowReasoning:  v.GetBool("chat.show_reasoning"),
		},
	}
}
