// Package sessionscmder provides the sessions command for listing and
// removing chat sessions.
package sessionscmder

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openagentsbuilder/oab/cmd/oab/apiclient"
	"github.com/openagentsbuilder/oab/pkg/client"
	"github.com/openagentsbuilder/oab/pkg/cliui"
	"github.com/openagentsbuilder/oab/pkg/config"
)

const sessionsLongDesc string = `List and remove chat sessions.

Examples:
  oab sessions list
  oab sessions list --agent 8f2c... --limit 20
  oab sessions delete 1d4e...`

const sessionsShortDesc string = "Manage chat sessions"

func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: sessionsShortDesc,
		Long:  sessionsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDeleteCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	var limit, offset int
	flags := append([]string{config.FlagAgent}, apiclient.ConnectionFlags...)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := apiclient.LoadConfig(cmd, flags...)
			if err != nil {
				return err
			}
			c, err := apiclient.New(cmd, cfg)
			if err != nil {
				return err
			}

			params := url.Values{}
			if cfg.Client.AgentID != "" {
				params.Set("agentId", cfg.Client.AgentID)
			}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				params.Set("offset", strconv.Itoa(offset))
			}

			sessions, err := c.Sessions.List(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}

			printSessions(cmd.OutOrStdout(), sessions)
			return nil
		},
	}

	apiclient.AddFlags(cmd, flags...)
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of sessions to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of sessions to skip")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := apiclient.LoadConfig(cmd, apiclient.ConnectionFlags...)
			if err != nil {
				return err
			}
			c, err := apiclient.New(cmd, cfg)
			if err != nil {
				return err
			}

			if _, err := c.Sessions.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deleting session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n  %s Deleted session %s\n\n",
				cliui.SuccessMark,
				cliui.NameStyle.Render(args[0]),
			)
			return nil
		},
	}

	apiclient.AddFlags(cmd, apiclient.ConnectionFlags...)

	return cmd
}

func printSessions(w io.Writer, sessions []client.Session) {
	if len(sessions) == 0 {
		fmt.Fprintf(w, "\n  %s No sessions.\n\n", cliui.DimStyle.Render("●"))
		return
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions))))

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		user := s.UserName
		if user == "" {
			user = s.UserEmail
		}
		rows = append(rows, []string{s.ID, s.AgentID, user, s.CreatedAt})
	}
	cliui.Table(w, []lipgloss.Style{cliui.NameStyle, cliui.DimStyle, cliui.ValueStyle, cliui.StepStyle}, rows)
	fmt.Fprintln(w)
}
