package oabcmder_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	oabcmder "github.com/openagentsbuilder/oab/cmd/oab"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	auth   string
}

var _ = Describe("NewOabCmd", func() {
	It("registers every subcommand", func() {
		cmd := oabcmder.NewOabCmd()
		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("chat", "agents", "sessions", "auth", "config", "init", "version"))
	})

	It("has global debug and config-dir flags", func() {
		cmd := oabcmder.NewOabCmd()
		Expect(cmd.PersistentFlags().ShorthandLookup("d")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
	})

	It("prints the version", func() {
		cmd := oabcmder.NewOabCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetArgs([]string{"version"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Version: dev"))
	})
})

var _ = Describe("Resource commands", func() {
	var (
		tmpDir string
		server *httptest.Server

		mu       sync.Mutex
		requests []recorded
		status   int
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "oab-root-test-*")
		Expect(err).NotTo(HaveOccurred())

		requests = nil
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			requests = append(requests, recorded{
				method: r.Method,
				path:   r.URL.EscapedPath(),
				query:  r.URL.Query(),
				auth:   r.Header.Get("Authorization"),
			})
			mu.Unlock()

			if status != http.StatusOK {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"message":"Not found"}`))
				return
			}

			switch r.URL.Path {
			case "/api/agent":
				_, _ = w.Write([]byte(`[{"id":"agent-1","displayName":"Support bot","locale":"en"}]`))
			case "/api/session":
				_, _ = w.Write([]byte(`[{"id":"sess-1","agentId":"agent-1","userName":"Jo","createdAt":"2025-03-04"}]`))
			default:
				_, _ = w.Write([]byte(`{"message":"ok","status":200}`))
			}
		}))

		GinkgoT().Setenv("OAB_API_KEY", "secret")
		GinkgoT().Setenv("OAB_CLIENT_AGENT_ID", "")
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(tmpDir)
	})

	execute := func(args ...string) (string, error) {
		cmd := oabcmder.NewOabCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append(args,
			"--config-dir", tmpDir,
			"--base-url", server.URL,
			"--database-id", "db-hash",
		))
		err := cmd.Execute()
		return out.String(), err
	}

	last := func() recorded {
		mu.Lock()
		defer mu.Unlock()
		Expect(requests).NotTo(BeEmpty())
		return requests[len(requests)-1]
	}

	It("lists agents", func() {
		out, err := execute("agents", "list")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Support bot"))
		Expect(out).To(ContainSubstring("agent-1"))

		req := last()
		Expect(req.method).To(Equal(http.MethodGet))
		Expect(req.path).To(Equal("/api/agent"))
		Expect(req.auth).To(Equal("Bearer secret"))
	})

	It("lists sessions filtered by agent", func() {
		out, err := execute("sessions", "list", "--agent", "agent-1", "--limit", "5")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("sess-1"))
		Expect(out).To(ContainSubstring("Jo"))

		req := last()
		Expect(req.path).To(Equal("/api/session"))
		Expect(req.query.Get("agentId")).To(Equal("agent-1"))
		Expect(req.query.Get("limit")).To(Equal("5"))
		Expect(req.query.Has("offset")).To(BeFalse())
	})

	It("deletes a session", func() {
		out, err := execute("sessions", "delete", "sess/1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Deleted session"))

		req := last()
		Expect(req.method).To(Equal(http.MethodDelete))
		Expect(req.path).To(Equal("/api/session/sess%2F1"))
	})

	It("writes a JSON trace with --log-file", func() {
		path := filepath.Join(tmpDir, "oab.log")
		_, err := execute("agents", "list", "--log-file", path)
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"msg":"running command"`))
		Expect(string(data)).To(ContainSubstring(`"msg":"sending request"`))
		Expect(string(data)).To(ContainSubstring(`"command":"oab agents list"`))
	})

	It("surfaces API errors", func() {
		status = http.StatusNotFound
		_, err := execute("sessions", "delete", "missing")
		Expect(err).To(MatchError(ContainSubstring("error (404): Not found")))
	})
})
