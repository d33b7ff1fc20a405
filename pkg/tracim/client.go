package tracim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/henvic/httpretty"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

const requestTimeout = 30 * time.Second

// Credentials are the basic auth credentials of a Tracim user.
type Credentials struct {
	Username string
	Password string
}

// Content is a file or folder as returned by the Tracim API.
type Content struct {
	ContentID   int    `json:"content_id"`
	ParentID    *int   `json:"parent_id"`
	Label       string `json:"label"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	IsDeleted   bool   `json:"is_deleted"`
}

type ClientInterface interface {
	CreateFile(workspaceID int, name string, content []byte, parentID *int) (int, error)
	CreateFolder(workspaceID int, name string, parentID *int) (int, error)
	GetContent(workspaceID int, contentID int) (*Content, error)
	GetFileContent(workspaceID int, contentID int, filename string) ([]byte, error)
	ListContents(workspaceID int) ([]Content, error)
	TrashContent(workspaceID int, contentID int) error
}

var _ ClientInterface = &Client{}

// Client talks to the Tracim HTTP API. All calls are sequential and
// blocking; any unexpected response status is a fatal error for the
// caller, there are no retries.
type Client struct {
	apiURL      string
	credentials Credentials
	httpClient  *http.Client
}

// NewClient creates a client for the API at apiURL, e.g.
// "http://tracim.local/api". Wire-level logging is enabled when the
// debug log level is active.
func NewClient(apiURL string, credentials Credentials) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}

	if l.IsDebug() {
		wireLogger := &httpretty.Logger{
			Time:           true,
			RequestHeader:  true,
			RequestBody:    true,
			ResponseHeader: true,
			ResponseBody:   true,
			Formatters:     []httpretty.Formatter{&httpretty.JSONFormatter{}},
		}
		httpClient.Transport = wireLogger.RoundTripper(http.DefaultTransport)
	}

	return &Client{
		apiURL:      strings.TrimSuffix(apiURL, "/"),
		credentials: credentials,
		httpClient:  httpClient,
	}
}

type contentIDResponse struct {
	ContentID int `json:"content_id"`
}

// CreateFile uploads a new file into the workspace, optionally under
// the given parent folder. Returns the content id assigned by Tracim.
func (c *Client) CreateFile(workspaceID int, name string, content []byte, parentID *int) (int, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	filePart, err := writer.CreateFormFile("files", name)
	if err != nil {
		return 0, fmt.Errorf("failed to build multipart body for '%s': %w", name, err)
	}
	if _, err := filePart.Write(content); err != nil {
		return 0, fmt.Errorf("failed to build multipart body for '%s': %w", name, err)
	}
	if parentID != nil {
		if err := writer.WriteField("parent_id", strconv.Itoa(*parentID)); err != nil {
			return 0, fmt.Errorf("failed to build multipart body for '%s': %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to build multipart body for '%s': %w", name, err)
	}

	path := fmt.Sprintf("/workspaces/%d/files", workspaceID)
	responseBody, err := c.do(http.MethodPost, path, writer.FormDataContentType(), body, http.StatusOK)
	if err != nil {
		return 0, err
	}

	var response contentIDResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return 0, fmt.Errorf("failed to decode response of POST %s: %w", path, err)
	}
	return response.ContentID, nil
}

// CreateFolder creates a new folder in the workspace, optionally under
// the given parent folder. Returns the content id assigned by Tracim.
func (c *Client) CreateFolder(workspaceID int, name string, parentID *int) (int, error) {
	payload := map[string]interface{}{
		"label":        name,
		"content_type": "folder",
	}
	if parentID != nil {
		payload["parent_id"] = *parentID
	}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize folder creation request for '%s': %w", name, err)
	}

	path := fmt.Sprintf("/workspaces/%d/contents", workspaceID)
	responseBody, err := c.do(http.MethodPost, path, "application/json", bytes.NewReader(requestBody), http.StatusOK)
	if err != nil {
		return 0, err
	}

	var response contentIDResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return 0, fmt.Errorf("failed to decode response of POST %s: %w", path, err)
	}
	return response.ContentID, nil
}

// GetContent fetches a single content of the workspace.
func (c *Client) GetContent(workspaceID int, contentID int) (*Content, error) {
	path := fmt.Sprintf("/workspaces/%d/contents/%d", workspaceID, contentID)
	responseBody, err := c.do(http.MethodGet, path, "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var content Content
	if err := json.Unmarshal(responseBody, &content); err != nil {
		return nil, fmt.Errorf("failed to decode response of GET %s: %w", path, err)
	}
	return &content, nil
}

// GetFileContent downloads the raw bytes of a file content.
func (c *Client) GetFileContent(workspaceID int, contentID int, filename string) ([]byte, error) {
	path := fmt.Sprintf("/workspaces/%d/files/%d/raw/%s", workspaceID, contentID, filename)
	return c.do(http.MethodGet, path, "", nil, http.StatusOK)
}

// ListContents returns every content of the workspace, trashed ones
// included.
func (c *Client) ListContents(workspaceID int) ([]Content, error) {
	path := fmt.Sprintf("/workspaces/%d/contents", workspaceID)
	responseBody, err := c.do(http.MethodGet, path, "", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var response struct {
		Items []Content `json:"items"`
	}
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to decode response of GET %s: %w", path, err)
	}
	return response.Items, nil
}

// TrashContent moves a content (and its children) to the workspace
// trash.
func (c *Client) TrashContent(workspaceID int, contentID int) error {
	path := fmt.Sprintf("/workspaces/%d/contents/%d/trashed", workspaceID, contentID)
	_, err := c.do(http.MethodPut, path, "", nil, http.StatusNoContent)
	return err
}

// do issues one request with basic auth and enforces the expected
// status; any other status is a contract violation and aborts the
// caller's whole operation.
func (c *Client) do(method, path, contentType string, body io.Reader, expectedStatus int) ([]byte, error) {
	request, err := http.NewRequest(method, c.apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	request.SetBasicAuth(c.credentials.Username, c.credentials.Password)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if response.StatusCode != expectedStatus {
		return nil, fmt.Errorf("%s %s returned status %d (expected %d): %s",
			method, path, response.StatusCode, expectedStatus, bodySnippet(responseBody))
	}

	return responseBody, nil
}

const maxBodySnippetLen = 200

func bodySnippet(body []byte) string {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxBodySnippetLen {
		snippet = snippet[:maxBodySnippetLen] + "..."
	}
	return snippet
}
