// Package agentscmder provides the agents command for inspecting agent
// definitions.
package agentscmder

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openagentsbuilder/oab/cmd/oab/apiclient"
	"github.com/openagentsbuilder/oab/pkg/client"
	"github.com/openagentsbuilder/oab/pkg/cliui"
	"github.com/openagentsbuilder/oab/pkg/utils"
)

const agentsLongDesc string = `Inspect the agents of a database.

Examples:
  oab agents list
  oab agents list --database-id 35f5c5b1...`

const agentsShortDesc string = "Inspect agents"

func NewAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: agentsShortDesc,
		Long:  agentsLongDesc,
	}

	cmd.AddCommand(newListCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := apiclient.LoadConfig(cmd, apiclient.ConnectionFlags...)
			if err != nil {
				return err
			}
			c, err := apiclient.New(cmd, cfg)
			if err != nil {
				return err
			}

			agents, err := c.Agents.List(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("listing agents: %w", err)
			}

			printAgents(cmd.OutOrStdout(), agents)
			return nil
		},
	}

	apiclient.AddFlags(cmd, apiclient.ConnectionFlags...)

	return cmd
}

func printAgents(w io.Writer, agents []client.Agent) {
	if len(agents) == 0 {
		fmt.Fprintf(w, "\n  %s No agents.\n\n", cliui.DimStyle.Render("●"))
		return
	}

	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render(fmt.Sprintf("Agents (%d)", len(agents))))

	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{utils.Truncate(a.DisplayName, 40), a.ID, a.Locale})
	}
	cliui.Table(w, []lipgloss.Style{cliui.NameStyle, cliui.DimStyle, cliui.StepStyle}, rows)
	fmt.Fprintln(w)
}
