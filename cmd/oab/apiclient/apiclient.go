// Package apiclient builds an API client for oab subcommands from the merged
// flag, environment, config file and credentials view.
package apiclient

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagentsbuilder/oab/pkg/client"
	"github.com/openagentsbuilder/oab/pkg/config"
	"github.com/openagentsbuilder/oab/pkg/credentials"
	"github.com/openagentsbuilder/oab/pkg/logger"
)

// ConnectionFlags are registered on every command that calls the API.
var ConnectionFlags = []string{
	config.FlagBaseURL,
	config.FlagDatabaseID,
	config.FlagTimeout,
}

// ErrNoDatabase is returned when no database id hash is configured.
var ErrNoDatabase = errors.New(`no database id hash configured: pass --database-id, set OAB_CLIENT_DATABASE_ID_HASH or run "oab config set client.database_id_hash <hash>"`)

// AddFlags registers the given registry flags on cmd. Their values are read
// back through viper, never through the variables bound here.
func AddFlags(cmd *cobra.Command, keys ...string) {
	for _, key := range keys {
		switch key {
		case config.FlagTimeout:
			config.AddDurationFlag(cmd, config.ClientFlags, key, new(time.Duration))
		case config.FlagMarkdown, config.FlagShowReasoning:
			config.AddBoolFlag(cmd, config.ClientFlags, key, new(bool))
		default:
			config.AddStringFlag(cmd, config.ClientFlags, key, new(string))
		}
	}
}

// LoadConfig resolves the effective configuration for cmd.
func LoadConfig(cmd *cobra.Command, keys ...string) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	config.BindRegisteredFlags(v, cmd, config.ClientFlags, keys)

	return config.FromViper(v), nil
}

// Logger returns the logger installed by the root command, or a terminal
// logger at debug level when --debug is set.
func Logger(cmd *cobra.Command) *slog.Logger {
	if l, ok := logger.FromContext(cmd.Context()); ok {
		return l
	}
	return TerminalLogger(cmd)
}

// TerminalLogger writes colorized records to the command's stderr.
func TerminalLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return logger.New(
		logger.WithDebug(debug),
		logger.WithFormat(logger.FormatPretty),
		logger.WithWriter(cmd.ErrOrStderr()),
	)
}

// New builds a client for cfg, resolving the API key from OAB_API_KEY or
// credentials.toml.
func New(cmd *cobra.Command, cfg *config.Config) (*client.Client, error) {
	if cfg.Client.DatabaseIDHash == "" {
		return nil, ErrNoDatabase
	}

	configDir, _ := cmd.Flags().GetString("config-dir")
	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	apiKey, err := mgr.ResolveKey(cfg.Client.DatabaseIDHash)
	if err != nil {
		return nil, err
	}

	log := Logger(cmd)
	log.Debug("creating client",
		"base_url", cfg.Client.BaseURL,
		"database_id_hash", cfg.Client.DatabaseIDHash,
	)

	return client.New(client.Config{
		BaseURL:        cfg.Client.BaseURL,
		DatabaseIDHash: cfg.Client.DatabaseIDHash,
		APIKey:         apiKey,
		Timeout:        cfg.Client.TimeoutDuration(),
		Logger:         log,
	})
}
