package fixtures_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/tracim/tracim-seed-cli/pkg/fixtures"
)

func TestDefaultCatalog(t *testing.T) {
	g := NewWithT(t)
	catalog := fixtures.Default()

	paths, err := catalog.Set("Set1")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(Equal([]string{
		"/file_2.txt",
		"/folder_1",
		"/folder_1/file_1.txt",
	}))

	content, err := catalog.FileContent("/file_2.txt")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(content).To(Equal([]byte("Hello world !")))

	content, err = catalog.FileContent("/folder_1/file_1.txt")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(content).To(Equal([]byte("Hello world again !")))
}

func TestCatalogLookupFailures(t *testing.T) {
	g := NewWithT(t)
	catalog := fixtures.Default()

	_, err := catalog.Set("NoSuchSet")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("unknown set 'NoSuchSet'"))

	_, err = catalog.FileContent("/folder_1")
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("no file content recorded"))
}

func TestSetNamesAreSorted(t *testing.T) {
	g := NewWithT(t)
	catalog := fixtures.NewCatalog(
		map[string][]string{
			"Zeta":  {"/file_z.txt"},
			"Alpha": {"/file_a.txt"},
			"Mid":   {"/file_m.txt"},
		},
		map[string][]byte{},
	)

	g.Expect(catalog.SetNames()).To(Equal([]string{"Alpha", "Mid", "Zeta"}))
}
