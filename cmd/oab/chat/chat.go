// Package chatcmder provides the chat command for talking to an Open Agents
// Builder agent from the terminal.
package chatcmder

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openagentsbuilder/oab/cmd/oab/apiclient"
	"github.com/openagentsbuilder/oab/pkg/client"
	"github.com/openagentsbuilder/oab/pkg/cliui"
	"github.com/openagentsbuilder/oab/pkg/config"
	"github.com/openagentsbuilder/oab/pkg/stream"
)

var (
	userPrompt      = cliui.PromptStyle.Render("you> ")
	assistantPrompt = cliui.StepStyle.Render("agent> ")
)

var errNoAgent = errors.New(`no agent configured: pass --agent, set OAB_CLIENT_AGENT_ID or run "oab config set client.agent_id <id>"`)

var chatFlags = append([]string{
	config.FlagAgent,
	config.FlagMarkdown,
	config.FlagShowReasoning,
}, apiclient.ConnectionFlags...)

type chatCommander struct {
	sessionID   string
	message     string
	attachments []string

	agentID       string
	markdown      bool
	showReasoning bool

	client *client.Client
	logger *slog.Logger
	out    io.Writer
	in     io.Reader
}

const chatLongDesc string = `Start an interactive chat session with an agent.

Replies stream to the terminal as the agent produces them. Tool calls and
errors reported by the agent are shown inline; reasoning is shown when
--show-reasoning is set. When markdown rendering is enabled the finished
reply is rendered once it is complete.

The conversation lives for the duration of the command. The server assigns
a session id on the first reply; pass it back with --session to continue the
same session later.

Examples:
  oab chat --agent 8f2c...
  oab chat --agent 8f2c... --session 1d4e...
  oab chat --agent 8f2c... -m "What are your opening hours?"
  echo "hello" | oab chat --agent 8f2c... --markdown=false`

const chatShortDesc string = "Chat with an agent"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := apiclient.LoadConfig(cmd, chatFlags...)
			if err != nil {
				return err
			}

			cmder.agentID = cfg.Client.AgentID
			cmder.markdown = cfg.Chat.Markdown()
			cmder.showReasoning = cfg.Chat.ShowReasoning
			if cmder.agentID == "" {
				return errNoAgent
			}

			cmder.client, err = apiclient.New(cmd, cfg)
			if err != nil {
				return err
			}
			cmder.logger = apiclient.Logger(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.out = cmd.OutOrStdout()
			cmder.in = cmd.InOrStdin()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if cmder.message != "" {
				_, err := cmder.turn(ctx, []client.ChatMessage{{Role: client.RoleUser, Content: cmder.message}})
				return err
			}
			return cmder.run(ctx)
		},
	}

	apiclient.AddFlags(cmd, chatFlags...)
	cmd.Flags().StringVarP(&cmder.sessionID, "session", "s", "", "Continue an existing session")
	cmd.Flags().StringVarP(&cmder.message, "message", "m", "", "Send a single message and exit")
	cmd.Flags().StringSliceVar(&cmder.attachments, "attach", nil, "Attachment URL available to the agent (repeatable)")

	return cmd
}

func (c *chatCommander) options() client.ChatRequestOptions {
	opts := client.ChatRequestOptions{
		AgentID:   c.agentID,
		SessionID: c.sessionID,
	}
	for _, u := range c.attachments {
		opts.Attachments = append(opts.Attachments, client.ChatAttachment{URL: u})
	}
	return opts
}

func (c *chatCommander) run(ctx context.Context) error {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  %s\n", cliui.KeyValue("Agent", cliui.NameStyle.Render(c.agentID)))
	if c.sessionID != "" {
		fmt.Fprintf(c.out, "  %s\n", cliui.KeyValue("Session", c.sessionID))
	} else {
		fmt.Fprintf(c.out, "  %s New session\n", cliui.DimStyle.Render("●"))
	}
	fmt.Fprintf(c.out, "\n  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	var messages []client.ChatMessage
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprint(c.out, userPrompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}

		messages = append(messages, client.ChatMessage{Role: client.RoleUser, Content: input})

		reply, err := c.turn(ctx, messages)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(c.out, "\n  %s %v\n\n", cliui.FailMark, err)
			// Drop the failed message so it can be retried.
			messages = messages[:len(messages)-1]
			continue
		}

		messages = append(messages, client.ChatMessage{Role: client.RoleAssistant, Content: reply})
		fmt.Fprintln(c.out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(c.out)
	return nil
}

// turn sends the conversation, prints the streamed reply and returns the
// assistant text.
func (c *chatCommander) turn(ctx context.Context, messages []client.ChatMessage) (string, error) {
	r, sessionID, err := c.client.Chat.Open(ctx, messages, c.options())
	if err != nil {
		return "", err
	}

	if sessionID != "" && sessionID != c.sessionID {
		c.sessionID = sessionID
		c.logger.Debug("session assigned", "session_id", sessionID)
		fmt.Fprintf(c.out, "  %s\n", cliui.DimStyle.Render("session: "+sessionID))
	}

	fmt.Fprint(c.out, assistantPrompt)

	p := &printer{out: c.out, live: !c.markdown, showReasoning: c.showReasoning}
	if err := stream.Dispatch(r.All(), p.callbacks()); err != nil {
		fmt.Fprintln(c.out)
		return p.text.String(), err
	}

	reply := p.text.String()
	if c.markdown && reply != "" {
		rendered, err := cliui.RenderMarkdown(reply, terminalWidth(c.out))
		if err != nil {
			c.logger.Debug("markdown rendering failed", "error", err)
		}
		fmt.Fprint(c.out, "\n"+rendered)
	} else {
		fmt.Fprintln(c.out)
	}

	return reply, nil
}

// printer renders stream events to the terminal.
type printer struct {
	out           io.Writer
	live          bool
	showReasoning bool

	text strings.Builder
}

func (p *printer) callbacks() stream.Callbacks {
	return stream.Callbacks{
		Handlers: stream.Handlers{
			stream.KindText: func(content any) {
				s := unescape(content.(string))
				p.text.WriteString(s)
				if p.live {
					fmt.Fprint(p.out, s)
				}
			},
			stream.KindReasoning: func(content any) {
				if p.showReasoning {
					fmt.Fprint(p.out, cliui.DimStyle.Render(fmt.Sprint(content)))
				}
			},
			stream.KindToolCall: func(content any) {
				fmt.Fprintf(p.out, "\n  %s\n", cliui.DimStyle.Render("⚙ "+toolName(content)))
			},
			stream.KindError: func(content any) {
				fmt.Fprintf(p.out, "\n  %s %s\n", cliui.FailMark, cliui.ErrorStyle.Render(fmt.Sprint(content)))
			},
		},
	}
}

// unescape decodes JSON string escapes in a text part. Text parts arrive
// still escaped; anything that does not decode is shown as is.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

func toolName(content any) string {
	if m, ok := content.(map[string]any); ok {
		if name, ok := m["toolName"].(string); ok && name != "" {
			return name
		}
	}
	return "tool call"
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

