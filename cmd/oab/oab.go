// Package oabcmder
package oabcmder

import (
	"io"

	"github.com/spf13/cobra"

	agentscmder "github.com/openagentsbuilder/oab/cmd/oab/agents"
	"github.com/openagentsbuilder/oab/cmd/oab/apiclient"
	authcmder "github.com/openagentsbuilder/oab/cmd/oab/auth"
	chatcmder "github.com/openagentsbuilder/oab/cmd/oab/chat"
	configcmder "github.com/openagentsbuilder/oab/cmd/oab/config"
	initcmder "github.com/openagentsbuilder/oab/cmd/oab/init"
	sessionscmder "github.com/openagentsbuilder/oab/cmd/oab/sessions"
	versioncmder "github.com/openagentsbuilder/oab/cmd/oab/version"
	"github.com/openagentsbuilder/oab/pkg/logger"
)

const oabLongDesc string = `oab talks to Open Agents Builder agents from the terminal.

Get started:
  oab init                     Create a local .oab/ directory
  oab config set client.database_id_hash <hash>
  oab auth                     Store the API key of that database
  oab chat --agent <id>        Chat with an agent`

const oabShortDesc string = "oab - Open Agents Builder CLI"

func NewOabCmd() *cobra.Command {
	var trace io.Closer

	cmd := &cobra.Command{
		Use:          "oab",
		Short:        oabShortDesc,
		Long:         oabLongDesc,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l := apiclient.TerminalLogger(cmd)

			logFile, _ := cmd.Flags().GetString("log-file")
			if logFile != "" {
				fileLogger, closer, err := logger.OpenTrace(logFile)
				if err != nil {
					return err
				}
				trace = closer
				l = logger.Multi(l, fileLogger)
			}

			l.Debug("running command", "command", cmd.CommandPath())
			cmd.SetContext(logger.NewContext(cmd.Context(), l))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if trace == nil {
				return nil
			}
			return trace.Close()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .oab/ config directory")
	cmd.PersistentFlags().String("log-file", "", "Append debug level JSON logs to this file")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(agentscmder.NewAgentsCmd())
	cmd.AddCommand(sessionscmder.NewSessionsCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
