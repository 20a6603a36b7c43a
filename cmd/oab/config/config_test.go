package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/openagentsbuilder/oab/cmd/oab/config"
	"github.com/openagentsbuilder/oab/pkg/config"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "oab-config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	run := func(args ...string) (string, error) {
		cmd := configcmder.NewConfigCmd()
		cmd.PersistentFlags().String("config-dir", "", "Override path to .oab/ config directory")
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append(args, "--config-dir", tmpDir))
		err := cmd.Execute()
		return out.String(), err
	}

	load := func() *config.Config {
		cfger, err := config.NewConfiger(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		cfg, err := cfger.LoadConfig()
		Expect(err).NotTo(HaveOccurred())
		return cfg
	}

	Describe("set subcommand", func() {
		It("writes the value to config.toml", func() {
			_, err := run("set", "client.agent_id", "agent-1")
			Expect(err).NotTo(HaveOccurred())

			_, err = os.Stat(filepath.Join(tmpDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(load().Client.AgentID).To(Equal("agent-1"))
		})

		It("keeps an explicit false markdown setting", func() {
			_, err := run("set", "chat.render_markdown", "false")
			Expect(err).NotTo(HaveOccurred())
			Expect(load().Chat.Markdown()).To(BeFalse())
		})

		It("rejects unknown keys", func() {
			_, err := run("set", "invalid_key", "value")
			Expect(err).To(MatchError(ContainSubstring("unknown config key")))
		})

		It("rejects invalid durations", func() {
			_, err := run("set", "client.timeout", "soon")
			Expect(err).To(MatchError(ContainSubstring("client.timeout")))
		})

		It("requires exactly two arguments", func() {
			_, err := run("set", "client.agent_id")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("get subcommand", func() {
		It("prints a previously set value", func() {
			_, err := run("set", "client.database_id_hash", "db-hash")
			Expect(err).NotTo(HaveOccurred())

			out, err := run("get", "client.database_id_hash")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("db-hash"))
		})

		It("prints the default base URL when nothing is set", func() {
			out, err := run("get", "client.base_url")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("https://app.openagentsbuilder.com"))
		})

		It("marks unset keys", func() {
			out, err := run("get", "client.agent_id")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("<not set>"))
		})

		It("rejects unknown keys", func() {
			_, err := run("get", "invalid_key")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("list subcommand", func() {
		It("lists every key", func() {
			_, err := run("set", "client.agent_id", "agent-1")
			Expect(err).NotTo(HaveOccurred())

			out, err := run("list")
			Expect(err).NotTo(HaveOccurred())
			for _, key := range config.ValidConfigKeys() {
				Expect(out).To(ContainSubstring(key))
			}
			Expect(out).To(ContainSubstring(`"agent-1"`))
		})

		It("rejects any arguments", func() {
			_, err := run("list", "extra")
			Expect(err).To(HaveOccurred())
		})
	})
})

