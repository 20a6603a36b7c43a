package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openagentsbuilder/oab/pkg/dotdir"
)

type sample struct {
	Name  string            `toml:"name"`
	Items map[string]string `toml:"items"`
}

var _ = Describe("TOML files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("round trips a value with private permissions", func() {
		path := filepath.Join(dir, "state.toml")
		Expect(dotdir.WriteTOML(path, sample{Name: "a", Items: map[string]string{"k": "v"}})).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))

		var got sample
		found, err := dotdir.ReadTOML(path, &got)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(got.Name).To(Equal("a"))
		Expect(got.Items).To(HaveKeyWithValue("k", "v"))
	})

	It("replaces an existing file and leaves no temp files", func() {
		path := filepath.Join(dir, "state.toml")
		Expect(dotdir.WriteTOML(path, sample{Name: "old"})).To(Succeed())
		Expect(dotdir.WriteTOML(path, sample{Name: "new"})).To(Succeed())

		var got sample
		_, err := dotdir.ReadTOML(path, &got)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("new"))

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	})

	It("reports a missing file as not found", func() {
		got := sample{Name: "untouched"}
		found, err := dotdir.ReadTOML(filepath.Join(dir, "missing.toml"), &got)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(got.Name).To(Equal("untouched"))
	})

	It("names the file in parse errors", func() {
		path := filepath.Join(dir, "broken.toml")
		Expect(os.WriteFile(path, []byte("not valid [[["), 0o600)).To(Succeed())

		var got sample
		_, err := dotdir.ReadTOML(path, &got)
		Expect(err).To(MatchError(ContainSubstring("parsing broken.toml")))
	})

	It("fails when the directory is missing", func() {
		err := dotdir.WriteTOML(filepath.Join(dir, "nope", "state.toml"), sample{})
		Expect(err).To(MatchError(ContainSubstring("writing state.toml")))
	})
})
