// Package authcmder provides the auth command for storing database API keys.
package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openagentsbuilder/oab/cmd/oab/apiclient"
	"github.com/openagentsbuilder/oab/pkg/client"
	"github.com/openagentsbuilder/oab/pkg/cliui"
	"github.com/openagentsbuilder/oab/pkg/config"
	"github.com/openagentsbuilder/oab/pkg/credentials"
)

const authLongDesc string = `Store API keys for Open Agents Builder databases.

Keys are stored per database id hash in credentials.toml in the .oab/
directory and used by every command that talks to the API. The
OAB_API_KEY environment variable takes precedence over stored keys.

When no database id hash is given, the configured client.database_id_hash
is used.

Examples:
  oab auth 35f5c5b1...              Prompt for the key of a database
  oab auth --verify                 Store and check the key of the configured database
  oab auth --list                   List databases with stored keys
  oab auth --remove 35f5c5b1...     Remove a stored key
  echo $KEY | oab auth 35f5c5b1...  Pipe the key from stdin`

const authShortDesc string = "Store API keys for databases"

type authCommander struct {
	configDir string
	verify    bool

	out io.Writer
	in  io.Reader
}

func NewAuthCmd() *cobra.Command {
	cmder := &authCommander{}
	var listFlag bool
	var removeFlag string

	cmd := &cobra.Command{
		Use:   "auth [database-id-hash]",
		Short: authShortDesc,
		Long:  authLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			cmder.out = cmd.OutOrStdout()
			cmder.in = cmd.InOrStdin()

			switch {
			case listFlag:
				return cmder.runList()
			case removeFlag != "":
				return cmder.runRemove(removeFlag)
			}

			cfg, err := apiclient.LoadConfig(cmd, apiclient.ConnectionFlags...)
			if err != nil {
				return err
			}

			databaseID := cfg.Client.DatabaseIDHash
			if len(args) == 1 {
				databaseID = strings.TrimSpace(args[0])
			}
			if databaseID == "" {
				return apiclient.ErrNoDatabase
			}

			return cmder.runAuth(cmd, cfg, databaseID)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			configDir, _ := cmd.Flags().GetString("config-dir")
			mgr, err := credentials.NewManager(configDir)
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			ids, _ := mgr.ListDatabases()
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().BoolVar(&listFlag, "list", false, "List databases with stored keys")
	cmd.Flags().StringVar(&removeFlag, "remove", "", "Remove the stored key of a database")
	cmd.Flags().BoolVar(&cmder.verify, "verify", false, "Check the key against the API before storing it")
	apiclient.AddFlags(cmd, apiclient.ConnectionFlags...)

	return cmd
}

func (c *authCommander) runAuth(cmd *cobra.Command, cfg *config.Config, databaseID string) error {
	apiKey, err := c.readAPIKey(databaseID)
	if err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	if c.verify {
		cl, err := client.New(client.Config{
			BaseURL:        cfg.Client.BaseURL,
			DatabaseIDHash: databaseID,
			APIKey:         apiKey,
			Timeout:        cfg.Client.TimeoutDuration(),
			Logger:         apiclient.Logger(cmd),
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out)
		err = cliui.Step(c.out, "Verifying key against "+cl.BaseURL(), func() error {
			_, err := cl.Agents.List(cmd.Context(), nil)
			return err
		})
		if err != nil {
			return fmt.Errorf("verifying API key: %w", err)
		}
	}

	mgr, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.SetKey(databaseID, apiKey); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\n  %s Stored key for %s %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(databaseID),
		cliui.DimStyle.Render("("+mgr.GetTarget()+")"),
	)

	return nil
}

func (c *authCommander) runList() error {
	mgr, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	ids, err := mgr.ListDatabases()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintf(c.out, "\n  %s No stored credentials.\n", cliui.DimStyle.Render("●"))
		fmt.Fprintf(c.out, "  Use 'oab auth <database-id-hash>' to store a key.\n\n")
		return nil
	}

	fmt.Fprintf(c.out, "\n  %s\n\n", cliui.HeaderStyle.Render("Stored credentials"))
	for _, id := range ids {
		fmt.Fprintf(c.out, "  %s  %s\n", cliui.SuccessMark, cliui.NameStyle.Render(id))
	}
	fmt.Fprintln(c.out)

	return nil
}

func (c *authCommander) runRemove(databaseID string) error {
	databaseID = strings.TrimSpace(databaseID)

	mgr, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.RemoveKey(databaseID); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\n  %s Removed key for %s.\n\n", cliui.SuccessMark, cliui.NameStyle.Render(databaseID))

	return nil
}

// readAPIKey reads the first line of piped input, or prompts with hidden
// input when stdin is a terminal.
func (c *authCommander) readAPIKey(databaseID string) (string, error) {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		scanner := bufio.NewScanner(c.in)
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return "", errors.New("no input received on stdin")
	}

	fmt.Fprintf(c.out, "Enter API key for %s: ", databaseID)

	keyBytes, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	return string(keyBytes), nil
}
