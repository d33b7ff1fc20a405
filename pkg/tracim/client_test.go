package tracim

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/tracim/tracim-seed-cli/testutil"
)

func TestCreateFile(t *testing.T) {
	g := NewWithT(t)
	server := testutil.NewFakeTracimServer(t)
	client := NewClient(server.URL(), Credentials{Username: "john", Password: "secret"})

	t.Run("creates a root level file", func(t *testing.T) {
		contentID, err := client.CreateFile(7, "file_2.txt", []byte("Hello world !"), nil)

		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(contentID).To(Equal(1))

		created := server.ContentByID(contentID)
		g.Expect(created).ToNot(BeNil())
		g.Expect(created.Filename).To(Equal("file_2.txt"))
		g.Expect(created.FileBytes).To(Equal([]byte("Hello world !")))
		g.Expect(created.ParentID).To(BeNil())
		g.Expect(server.LastUsername).To(Equal("john"))
		g.Expect(server.LastPassword).To(Equal("secret"))
	})

	t.Run("creates a file under a parent", func(t *testing.T) {
		parentID := 1
		contentID, err := client.CreateFile(7, "file_1.txt", []byte("Hello world again !"), &parentID)

		g.Expect(err).ToNot(HaveOccurred())

		created := server.ContentByID(contentID)
		g.Expect(created.ParentID).ToNot(BeNil())
		g.Expect(*created.ParentID).To(Equal(parentID))
	})

	t.Run("fails on unexpected status", func(t *testing.T) {
		server.FailStatus = 400

		_, err := client.CreateFile(7, "file_3.txt", []byte("x"), nil)

		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("returned status 400"))
		server.FailStatus = 0
	})
}

func TestCreateFolder(t *testing.T) {
	g := NewWithT(t)
	server := testutil.NewFakeTracimServer(t)
	client := NewClient(server.URL(), Credentials{Username: "john", Password: "secret"})

	t.Run("creates a root level folder", func(t *testing.T) {
		contentID, err := client.CreateFolder(7, "folder_1", nil)

		g.Expect(err).ToNot(HaveOccurred())

		created := server.ContentByID(contentID)
		g.Expect(created).ToNot(BeNil())
		g.Expect(created.Label).To(Equal("folder_1"))
		g.Expect(created.ContentType).To(Equal("folder"))
		g.Expect(created.ParentID).To(BeNil())
	})

	t.Run("creates a nested folder", func(t *testing.T) {
		parentID := 1
		contentID, err := client.CreateFolder(7, "folder_2", &parentID)

		g.Expect(err).ToNot(HaveOccurred())

		created := server.ContentByID(contentID)
		g.Expect(*created.ParentID).To(Equal(parentID))
	})

	t.Run("fails on unexpected status", func(t *testing.T) {
		server.FailStatus = 500

		_, err := client.CreateFolder(7, "folder_3", nil)

		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("returned status 500"))
		server.FailStatus = 0
	})
}

func TestGetFileContent(t *testing.T) {
	g := NewWithT(t)
	server := testutil.NewFakeTracimServer(t)
	client := NewClient(server.URL(), Credentials{Username: "john", Password: "secret"})

	contentID, err := client.CreateFile(7, "file_2.txt", []byte("Hello world !"), nil)
	g.Expect(err).ToNot(HaveOccurred())

	fileBytes, err := client.GetFileContent(7, contentID, "file_2.txt")

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(fileBytes).To(Equal([]byte("Hello world !")))
}

func TestGetContent(t *testing.T) {
	g := NewWithT(t)
	server := testutil.NewFakeTracimServer(t)
	client := NewClient(server.URL(), Credentials{Username: "john", Password: "secret"})

	contentID, err := client.CreateFolder(7, "folder_1", nil)
	g.Expect(err).ToNot(HaveOccurred())

	content, err := client.GetContent(7, contentID)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(content.ContentID).To(Equal(contentID))
	g.Expect(content.Label).To(Equal("folder_1"))
	g.Expect(content.ContentType).To(Equal("folder"))

	_, err = client.GetContent(7, 999)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("returned status 404"))
}

func TestListAndTrashContents(t *testing.T) {
	g := NewWithT(t)
	server := testutil.NewFakeTracimServer(t)
	client := NewClient(server.URL(), Credentials{Username: "john", Password: "secret"})

	folderID, err := client.CreateFolder(7, "folder_1", nil)
	g.Expect(err).ToNot(HaveOccurred())
	_, err = client.CreateFile(7, "file_1.txt", []byte("Hello world again !"), &folderID)
	g.Expect(err).ToNot(HaveOccurred())

	contents, err := client.ListContents(7)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(contents).To(HaveLen(2))
	g.Expect(contents[0].ContentType).To(Equal("folder"))
	g.Expect(contents[1].ParentID).ToNot(BeNil())
	g.Expect(*contents[1].ParentID).To(Equal(folderID))

	err = client.TrashContent(7, folderID)
	g.Expect(err).ToNot(HaveOccurred())

	contents, err = client.ListContents(7)
	g.Expect(err).ToNot(HaveOccurred())
	// Trashing the folder trashes its child too
	g.Expect(contents[0].IsDeleted).To(BeTrue())
	g.Expect(contents[1].IsDeleted).To(BeTrue())
}
