// Package configcmder provides the config command for managing persistent
// oab configuration stored in the .oab/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openagentsbuilder/oab/pkg/cliui"
	"github.com/openagentsbuilder/oab/pkg/config"
)

const configLongDesc string = `Manage persistent oab configuration.

Configuration is stored as config.toml in the .oab/ directory and provides
default values for command flags. CLI flags and OAB_* environment variables
always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  client.base_url, client.database_id_hash, client.agent_id, client.timeout,
  chat.render_markdown, chat.show_reasoning

Use subcommands to get, set, or list configuration values:
  oab config set <key> <value>    Set a configuration value
  oab config get <key>            Get a configuration value
  oab config list                 List all configuration values

Examples:
  oab config set client.database_id_hash 35f5c5b1...
  oab config set client.agent_id 8f2c...
  oab config get client.base_url
  oab config list`

const configShortDesc string = "Manage persistent oab configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func checkKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func printTarget(w io.Writer, cfger *config.Configer) {
	fmt.Fprintf(w, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Config file:"),
		cliui.DimStyle.Render(cfger.GetTarget()),
	)
}
