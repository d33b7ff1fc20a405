package commands

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/common"
	"github.com/tracim/tracim-seed-cli/pkg/fixtures"
	"github.com/tracim/tracim-seed-cli/pkg/tracim"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

var VerifyParamsConfig = map[string]common.Parameter{
	"set": {
		Name:       "set",
		ShortName:  "s",
		EnvVarName: "TRACIM_VERIFY_SET",
		TypeKind:   reflect.String,
		Usage:      "Name of the fixture set to verify against the workspace. Required.",
		Required:   true,
	},
	"workspace-id": {
		Name:       "workspace-id",
		ShortName:  "w",
		EnvVarName: "TRACIM_VERIFY_WORKSPACE_ID",
		TypeKind:   reflect.Int,
		Usage:      "Id of the workspace to verify. Required.",
		Required:   true,
	},
	"username": {
		Name:       "username",
		ShortName:  "u",
		EnvVarName: "TRACIM_VERIFY_USERNAME",
		TypeKind:   reflect.String,
		Usage:      "Username used for basic auth against the Tracim API. Required.",
		Required:   true,
	},
	"password": {
		Name:       "password",
		ShortName:  "p",
		EnvVarName: "TRACIM_VERIFY_PASSWORD",
		TypeKind:   reflect.String,
		Usage:      "Password used for basic auth against the Tracim API. Required.",
		Required:   true,
	},
	"api-url": {
		Name:         "api-url",
		ShortName:    "a",
		EnvVarName:   "TRACIM_VERIFY_API_URL",
		TypeKind:     reflect.String,
		DefaultValue: "http://localhost/api",
		Usage:        "Base URL of the Tracim API.",
	},
}

type VerifyParams struct {
	SetName     string `paramName:"set"`
	WorkspaceID int    `paramName:"workspace-id"`
	Username    string `paramName:"username"`
	Password    string `paramName:"password"`
	ApiURL      string `paramName:"api-url"`
}

type VerifyResults struct {
	VerifiedPaths []string `json:"verified_paths"`
}

// Verify checks that every entity of a named fixture set exists in the
// workspace with the expected kind, parent and file payload. It is
// meant to be run after a seed to assert the run from the outside.
type Verify struct {
	Params        *VerifyParams
	Client        tracim.ClientInterface
	Catalog       *fixtures.Catalog
	Results       VerifyResults
	ResultsWriter common.ResultsWriterInterface
}

func NewVerify(cmd *cobra.Command) (*Verify, error) {
	verify := &Verify{}

	params := &VerifyParams{}
	if err := common.ParseParameters(cmd, VerifyParamsConfig, params); err != nil {
		return nil, err
	}
	verify.Params = params

	verify.Client = tracim.NewClient(params.ApiURL, tracim.Credentials{
		Username: params.Username,
		Password: params.Password,
	})
	verify.Catalog = fixtures.Default()
	verify.ResultsWriter = common.NewResultsWriter()

	return verify, nil
}

// Run executes the command logic.
func (c *Verify) Run() error {
	c.logParams()

	if err := c.validateParams(); err != nil {
		return err
	}

	paths, err := c.Catalog.Set(c.Params.SetName)
	if err != nil {
		return err
	}

	contents, err := c.Client.ListContents(c.Params.WorkspaceID)
	if err != nil {
		return err
	}

	// Paths are resolved in set order so a child can look up the
	// content id its parent path resolved to.
	resolved := map[string]tracim.Content{}
	verifiedPaths := []string{}
	for _, path := range paths {
		content, err := c.verifyEntity(path, contents, resolved)
		if err != nil {
			l.Logger.Errorf("verification of '%s' failed: %s", path, err.Error())
			return err
		}
		resolved[path] = *content
		verifiedPaths = append(verifiedPaths, path)
		l.Logger.Infof("Verified %s (content id %d)", path, content.ContentID)
	}

	c.Results.VerifiedPaths = verifiedPaths

	if resultJson, err := c.ResultsWriter.CreateResultJson(c.Results); err == nil {
		fmt.Print(resultJson)
	} else {
		l.Logger.Errorf("failed to create results json: %s", err.Error())
		return err
	}

	return nil
}

func (c *Verify) verifyEntity(path string, contents []tracim.Content, resolved map[string]tracim.Content) (*tracim.Content, error) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	name := segments[len(segments)-1]

	var parentID *int
	if len(segments) > 1 {
		parentKey := "/" + strings.Join(segments[:len(segments)-1], "/")
		parent, exists := resolved[parentKey]
		if !exists {
			return nil, fmt.Errorf("parent '%s' was not resolved before '%s', fix the set order", parentKey, path)
		}
		parentID = &parent.ContentID
	}

	isFile := strings.HasPrefix(name, filePrefix)
	if !isFile && !strings.HasPrefix(name, folderPrefix) {
		return nil, fmt.Errorf("entity name '%s' has no recognized prefix ('%s' or '%s')", name, filePrefix, folderPrefix)
	}

	candidate := findContent(contents, name, isFile, parentID)
	if candidate == nil {
		return nil, fmt.Errorf("no content named '%s' found under the expected parent", name)
	}

	// Re-fetch the single content so the check runs against the
	// authoritative record, not the listing
	content, err := c.Client.GetContent(c.Params.WorkspaceID, candidate.ContentID)
	if err != nil {
		return nil, err
	}

	if isFile {
		expected, err := c.Catalog.FileContent(path)
		if err != nil {
			return nil, err
		}
		actual, err := c.Client.GetFileContent(c.Params.WorkspaceID, content.ContentID, name)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(actual, expected) {
			return nil, fmt.Errorf("file content of '%s' differs from the catalog payload", path)
		}
	}

	return content, nil
}

// findContent returns the first non-trashed content matching name and
// parent. Files are matched on filename, folders on label.
func findContent(contents []tracim.Content, name string, isFile bool, parentID *int) *tracim.Content {
	for i := range contents {
		content := &contents[i]
		if content.IsDeleted {
			continue
		}
		if isFile {
			if content.ContentType == "folder" || content.Filename != name {
				continue
			}
		} else {
			if content.ContentType != "folder" || content.Label != name {
				continue
			}
		}
		if (content.ParentID == nil) != (parentID == nil) {
			continue
		}
		if parentID != nil && *content.ParentID != *parentID {
			continue
		}
		return content
	}
	return nil
}

func (c *Verify) logParams() {
	l.Logger.Infof("[param] Set: %s", c.Params.SetName)
	l.Logger.Infof("[param] Workspace id: %d", c.Params.WorkspaceID)
	l.Logger.Infof("[param] Username: %s", c.Params.Username)
	l.Logger.Infof("[param] API URL: %s", c.Params.ApiURL)
}

func (c *Verify) validateParams() error {
	if c.Params.WorkspaceID <= 0 {
		return fmt.Errorf("workspace id '%d' is invalid", c.Params.WorkspaceID)
	}
	return validateApiURL(c.Params.ApiURL)
}
