package fixtures

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Catalog holds the named path sets and the file payloads used to seed
// workspaces. It is immutable after construction; commands receive it
// injected instead of reading process-wide globals.
type Catalog struct {
	sets         map[string][]string
	fileContents map[string][]byte
}

func NewCatalog(sets map[string][]string, fileContents map[string][]byte) *Catalog {
	return &Catalog{
		sets:         sets,
		fileContents: fileContents,
	}
}

// Default returns the catalog of the standard end-to-end fixture sets.
//
// Paths of a set must be ordered so that every folder appears before
// its children; the seeder trusts this order and never sorts. The last
// path segment's prefix decides the entity kind: "file_" is a file,
// "folder_" is a folder.
func Default() *Catalog {
	return NewCatalog(
		map[string][]string{
			"Set1": {
				"/file_2.txt",
				"/folder_1",
				"/folder_1/file_1.txt",
			},
		},
		map[string][]byte{
			"/file_2.txt":          []byte("Hello world !"),
			"/folder_1/file_1.txt": []byte("Hello world again !"),
		},
	)
}

// Set returns the ordered path list of the named set.
func (c *Catalog) Set(name string) ([]string, error) {
	paths, exists := c.sets[name]
	if !exists {
		return nil, fmt.Errorf("unknown set '%s', available sets: %v", name, c.SetNames())
	}
	return paths, nil
}

// FileContent returns the payload recorded for the given file path.
func (c *Catalog) FileContent(path string) ([]byte, error) {
	content, exists := c.fileContents[path]
	if !exists {
		return nil, fmt.Errorf("no file content recorded for path '%s'", path)
	}
	return content, nil
}

// SetNames returns the names of all sets, sorted.
func (c *Catalog) SetNames() []string {
	names := lo.Keys(c.sets)
	sort.Strings(names)
	return names
}
