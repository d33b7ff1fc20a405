package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"
)

// Call records one request received by the fake server.
type Call struct {
	Method string
	Path   string
}

// FakeContent is a file or folder stored by the fake server.
type FakeContent struct {
	ContentID   int
	Label       string
	Filename    string
	ContentType string
	ParentID    *int
	FileBytes   []byte
	IsDeleted   bool
}

// FakeTracimServer implements the subset of the Tracim HTTP API the
// seeder uses, in memory. Content ids are assigned sequentially
// starting at 1. Set FailStatus to a non-zero value to make every
// subsequent request answer with that status.
type FakeTracimServer struct {
	t      *testing.T
	server *httptest.Server

	mu           sync.Mutex
	nextID       int
	Contents     []*FakeContent
	Calls        []Call
	FailStatus   int
	LastUsername string
	LastPassword string
}

var (
	filesPattern    = regexp.MustCompile(`^/workspaces/(\d+)/files$`)
	contentsPattern = regexp.MustCompile(`^/workspaces/(\d+)/contents$`)
	contentPattern  = regexp.MustCompile(`^/workspaces/(\d+)/contents/(\d+)$`)
	trashedPattern  = regexp.MustCompile(`^/workspaces/(\d+)/contents/(\d+)/trashed$`)
	rawFilePattern  = regexp.MustCompile(`^/workspaces/(\d+)/files/(\d+)/raw/(.+)$`)
)

func NewFakeTracimServer(t *testing.T) *FakeTracimServer {
	fake := &FakeTracimServer{t: t, nextID: 1}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(fake.server.Close)
	return fake
}

// URL returns the base API URL to point the client at.
func (s *FakeTracimServer) URL() string {
	return s.server.URL
}

// ContentByID returns the stored content with the given id, or nil.
func (s *FakeTracimServer) ContentByID(contentID int) *FakeContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, content := range s.Contents {
		if content.ContentID == contentID {
			return content
		}
	}
	return nil
}

func (s *FakeTracimServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, Call{Method: r.Method, Path: r.URL.Path})
	s.LastUsername, s.LastPassword, _ = r.BasicAuth()

	if s.FailStatus != 0 {
		http.Error(w, `{"message": "injected failure"}`, s.FailStatus)
		return
	}

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && filesPattern.MatchString(path):
		s.handleCreateFile(w, r)
	case r.Method == http.MethodPost && contentsPattern.MatchString(path):
		s.handleCreateFolder(w, r)
	case r.Method == http.MethodGet && contentsPattern.MatchString(path):
		s.handleListContents(w)
	case r.Method == http.MethodGet && contentPattern.MatchString(path):
		s.handleGetContent(w, contentPattern.FindStringSubmatch(path)[2])
	case r.Method == http.MethodPut && trashedPattern.MatchString(path):
		s.handleTrashContent(w, trashedPattern.FindStringSubmatch(path)[2])
	case r.Method == http.MethodGet && rawFilePattern.MatchString(path):
		s.handleGetRawFile(w, rawFilePattern.FindStringSubmatch(path)[2])
	default:
		http.NotFound(w, r)
	}
}

func (s *FakeTracimServer) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filePart, fileHeader, err := r.FormFile("files")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer filePart.Close()
	fileBytes, err := io.ReadAll(filePart)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	content := &FakeContent{
		ContentID:   s.nextID,
		Filename:    fileHeader.Filename,
		ContentType: "file",
		ParentID:    parseOptionalID(r.FormValue("parent_id")),
		FileBytes:   fileBytes,
	}
	s.nextID++
	s.Contents = append(s.Contents, content)

	writeJSON(w, http.StatusOK, map[string]interface{}{"content_id": content.ContentID})
}

func (s *FakeTracimServer) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Label       string `json:"label"`
		ContentType string `json:"content_type"`
		ParentID    *int   `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if request.ContentType != "folder" {
		http.Error(w, fmt.Sprintf(`{"message": "unsupported content type '%s'"}`, request.ContentType), http.StatusBadRequest)
		return
	}

	content := &FakeContent{
		ContentID:   s.nextID,
		Label:       request.Label,
		ContentType: "folder",
		ParentID:    request.ParentID,
	}
	s.nextID++
	s.Contents = append(s.Contents, content)

	writeJSON(w, http.StatusOK, map[string]interface{}{"content_id": content.ContentID})
}

func (s *FakeTracimServer) handleListContents(w http.ResponseWriter) {
	items := make([]map[string]interface{}, 0, len(s.Contents))
	for _, content := range s.Contents {
		items = append(items, contentJSON(content))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *FakeTracimServer) handleGetContent(w http.ResponseWriter, rawID string) {
	content := s.findContent(rawID)
	if content == nil {
		http.Error(w, `{"message": "content not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contentJSON(content))
}

func (s *FakeTracimServer) handleTrashContent(w http.ResponseWriter, rawID string) {
	content := s.findContent(rawID)
	if content == nil {
		http.Error(w, `{"message": "content not found"}`, http.StatusNotFound)
		return
	}
	s.trashRecursively(content)
	w.WriteHeader(http.StatusNoContent)
}

func (s *FakeTracimServer) handleGetRawFile(w http.ResponseWriter, rawID string) {
	content := s.findContent(rawID)
	if content == nil || content.ContentType != "file" {
		http.Error(w, `{"message": "content not found"}`, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(content.FileBytes)
}

func (s *FakeTracimServer) findContent(rawID string) *FakeContent {
	contentID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil
	}
	for _, content := range s.Contents {
		if content.ContentID == contentID {
			return content
		}
	}
	return nil
}

func (s *FakeTracimServer) trashRecursively(parent *FakeContent) {
	parent.IsDeleted = true
	for _, content := range s.Contents {
		if content.ParentID != nil && *content.ParentID == parent.ContentID && !content.IsDeleted {
			s.trashRecursively(content)
		}
	}
}

func contentJSON(content *FakeContent) map[string]interface{} {
	item := map[string]interface{}{
		"content_id":   content.ContentID,
		"label":        content.Label,
		"filename":     content.Filename,
		"content_type": content.ContentType,
		"is_deleted":   content.IsDeleted,
	}
	if content.ParentID != nil {
		item["parent_id"] = *content.ParentID
	} else {
		item["parent_id"] = nil
	}
	return item
}

func parseOptionalID(value string) *int {
	if value == "" {
		return nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &id
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
