package credentials_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openagentsbuilder/oab/pkg/credentials"
)

const (
	dbA = "35f5c5b139a6b569d4649b788c1851831eb44d8e32b716b8411ec6431af8121d"
	dbB = "0000000000000000000000000000000000000000000000000000000000000001"
)

var _ = Describe("Manager", func() {
	var (
		tmpDir string
		mgr    *credentials.Manager
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "credentials-test-*")
		Expect(err).NotTo(HaveOccurred())

		mgr, err = credentials.NewManager(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		GinkgoT().Setenv(credentials.EnvAPIKey, "")
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewManager", func() {
		It("targets credentials.toml in the override directory", func() {
			Expect(mgr.GetTarget()).To(Equal(filepath.Join(tmpDir, "credentials.toml")))
		})
	})

	Describe("Load", func() {
		It("returns empty credentials when no file exists", func() {
			creds, err := mgr.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.Databases).To(BeEmpty())
		})

		It("loads existing credentials", func() {
			data := `version = 0

[databases.` + dbA + `]
api_key = "ak-test"
`
			Expect(os.WriteFile(mgr.GetTarget(), []byte(data), 0o600)).To(Succeed())

			creds, err := mgr.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.Databases).To(HaveKeyWithValue(dbA, credentials.DatabaseCredential{APIKey: "ak-test"}))
		})

		It("returns error for malformed TOML", func() {
			Expect(os.WriteFile(mgr.GetTarget(), []byte("[[[broken"), 0o600)).To(Succeed())
			_, err := mgr.Load()
			Expect(err).To(MatchError(ContainSubstring("parsing credentials")))
		})
	})

	Describe("Save", func() {
		It("persists credentials with restricted permissions", func() {
			Expect(mgr.SetKey(dbA, "ak-1")).To(Succeed())

			info, err := os.Stat(mgr.GetTarget())
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
		})

		It("returns error for nil credentials", func() {
			Expect(mgr.Save(nil)).To(HaveOccurred())
		})
	})

	Describe("SetKey and GetKey", func() {
		It("stores keys per database", func() {
			Expect(mgr.SetKey(dbA, "ak-a")).To(Succeed())
			Expect(mgr.SetKey(dbB, "ak-b")).To(Succeed())
			Expect(mgr.SetKey(dbA, "ak-a2")).To(Succeed())

			key, err := mgr.GetKey(dbA)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("ak-a2"))

			key, err = mgr.GetKey(dbB)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("ak-b"))
		})

		It("requires a database id hash", func() {
			Expect(mgr.SetKey("", "ak")).To(HaveOccurred())
		})

		It("returns empty string for an unknown database", func() {
			key, err := mgr.GetKey(dbB)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})
	})

	Describe("ResolveKey", func() {
		It("prefers the environment", func() {
			Expect(mgr.SetKey(dbA, "stored")).To(Succeed())
			GinkgoT().Setenv(credentials.EnvAPIKey, "from-env")

			key, err := mgr.ResolveKey(dbA)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("from-env"))
		})

		It("falls back to the stored key", func() {
			Expect(mgr.SetKey(dbA, "stored")).To(Succeed())

			key, err := mgr.ResolveKey(dbA)
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("stored"))
		})

		It("fails when no key is available", func() {
			_, err := mgr.ResolveKey(dbB)
			Expect(err).To(MatchError(credentials.ErrNoAPIKey))
		})
	})

	Describe("RemoveKey and ListDatabases", func() {
		It("lists databases in sorted order and removes them", func() {
			Expect(mgr.SetKey(dbA, "a")).To(Succeed())
			Expect(mgr.SetKey(dbB, "b")).To(Succeed())

			ids, err := mgr.ListDatabases()
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{dbB, dbA}))

			Expect(mgr.RemoveKey(dbA)).To(Succeed())
			Expect(mgr.RemoveKey("missing")).To(Succeed())

			ids, err = mgr.ListDatabases()
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{dbB}))
		})
	})
})
