package authcmder_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	authcmder "github.com/openagentsbuilder/oab/cmd/oab/auth"
	"github.com/openagentsbuilder/oab/pkg/credentials"
)

func newCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	cmd := authcmder.NewAuthCmd()
	cmd.PersistentFlags().String("config-dir", "", "Override path to .oab/ config directory")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, out
}

var _ = Describe("Auth Command", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "oab-auth-test-*")
		Expect(err).NotTo(HaveOccurred())

		GinkgoT().Setenv("OAB_API_KEY", "")
		GinkgoT().Setenv("OAB_CLIENT_DATABASE_ID_HASH", "")
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	storedKey := func(id string) string {
		mgr, err := credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		key, err := mgr.GetKey(id)
		Expect(err).NotTo(HaveOccurred())
		return key
	}

	Describe("NewAuthCmd", func() {
		It("creates a command with expected properties", func() {
			cmd := authcmder.NewAuthCmd()
			Expect(cmd.Use).To(Equal("auth [database-id-hash]"))
			Expect(cmd.Short).NotTo(BeEmpty())
		})

		It("has --list, --remove and --verify flags", func() {
			cmd := authcmder.NewAuthCmd()
			Expect(cmd.Flags().Lookup("list")).NotTo(BeNil())
			Expect(cmd.Flags().Lookup("remove")).NotTo(BeNil())
			Expect(cmd.Flags().Lookup("verify")).NotTo(BeNil())
		})
	})

	Describe("storing a key", func() {
		It("reads the key from piped input", func() {
			cmd, out := newCmd("  key-123  \n")
			cmd.SetArgs([]string{"db-hash", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
			Expect(storedKey("db-hash")).To(Equal("key-123"))
			Expect(out.String()).To(ContainSubstring("Stored key for"))
		})

		It("falls back to the configured database", func() {
			GinkgoT().Setenv("OAB_CLIENT_DATABASE_ID_HASH", "from-env")

			cmd, _ := newCmd("key-456\n")
			cmd.SetArgs([]string{"--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
			Expect(storedKey("from-env")).To(Equal("key-456"))
		})

		It("requires a database", func() {
			cmd, _ := newCmd("key\n")
			cmd.SetArgs([]string{"--config-dir", tmpDir})

			Expect(cmd.Execute()).To(MatchError(ContainSubstring("no database id hash configured")))
		})

		It("rejects an empty key", func() {
			cmd, _ := newCmd("   \n")
			cmd.SetArgs([]string{"db-hash", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(MatchError("API key cannot be empty"))
		})

		It("fails without input", func() {
			cmd, _ := newCmd("")
			cmd.SetArgs([]string{"db-hash", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(MatchError("no input received on stdin"))
		})
	})

	Describe("--verify flag", func() {
		var (
			server *httptest.Server
			status int
			auth   string
		)

		BeforeEach(func() {
			status = http.StatusOK
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				auth = r.Header.Get("Authorization")
				if status != http.StatusOK {
					w.WriteHeader(status)
					_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
					return
				}
				_, _ = w.Write([]byte(`[]`))
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		It("stores the key once the API accepts it", func() {
			cmd, _ := newCmd("good-key\n")
			cmd.SetArgs([]string{"db-hash", "--verify", "--base-url", server.URL, "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
			Expect(auth).To(Equal("Bearer good-key"))
			Expect(storedKey("db-hash")).To(Equal("good-key"))
		})

		It("does not store a rejected key", func() {
			status = http.StatusUnauthorized

			cmd, _ := newCmd("bad-key\n")
			cmd.SetArgs([]string{"db-hash", "--verify", "--base-url", server.URL, "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(MatchError(ContainSubstring("error (401): Unauthorized")))
			Expect(storedKey("db-hash")).To(BeEmpty())
		})
	})

	Describe("--list flag", func() {
		It("shows no credentials when none stored", func() {
			cmd, out := newCmd("")
			cmd.SetArgs([]string{"--list", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
			Expect(out.String()).To(ContainSubstring("No stored credentials."))
		})

		It("lists stored databases", func() {
			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(mgr.SetKey("db-a", "k1")).To(Succeed())
			Expect(mgr.SetKey("db-b", "k2")).To(Succeed())

			cmd, out := newCmd("")
			cmd.SetArgs([]string{"--list", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
			Expect(out.String()).To(ContainSubstring("db-a"))
			Expect(out.String()).To(ContainSubstring("db-b"))
			Expect(out.String()).NotTo(ContainSubstring("k1"))
		})
	})

	Describe("--remove flag", func() {
		It("removes a stored key", func() {
			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(mgr.SetKey("db-a", "k1")).To(Succeed())

			cmd, _ := newCmd("")
			cmd.SetArgs([]string{"--remove", "db-a", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
			Expect(storedKey("db-a")).To(BeEmpty())
		})
	})
})
