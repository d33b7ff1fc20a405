package commands

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/common"
	"github.com/tracim/tracim-seed-cli/pkg/fixtures"
	"github.com/tracim/tracim-seed-cli/pkg/tracim"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

const (
	filePrefix   = "file_"
	folderPrefix = "folder_"
)

var SeedParamsConfig = map[string]common.Parameter{
	"set": {
		Name:       "set",
		ShortName:  "s",
		EnvVarName: "TRACIM_SEED_SET",
		TypeKind:   reflect.String,
		Usage:      "Name of the fixture set to create in the workspace. Required.",
		Required:   true,
	},
	"workspace-id": {
		Name:       "workspace-id",
		ShortName:  "w",
		EnvVarName: "TRACIM_SEED_WORKSPACE_ID",
		TypeKind:   reflect.Int,
		Usage:      "Id of an existing workspace to seed. Required.",
		Required:   true,
	},
	"username": {
		Name:       "username",
		ShortName:  "u",
		EnvVarName: "TRACIM_SEED_USERNAME",
		TypeKind:   reflect.String,
		Usage:      "Username used for basic auth against the Tracim API. Required.",
		Required:   true,
	},
	"password": {
		Name:       "password",
		ShortName:  "p",
		EnvVarName: "TRACIM_SEED_PASSWORD",
		TypeKind:   reflect.String,
		Usage:      "Password used for basic auth against the Tracim API. Required.",
		Required:   true,
	},
	"api-url": {
		Name:         "api-url",
		ShortName:    "a",
		EnvVarName:   "TRACIM_SEED_API_URL",
		TypeKind:     reflect.String,
		DefaultValue: "http://localhost/api",
		Usage:        "Base URL of the Tracim API.",
	},
}

type SeedParams struct {
	SetName     string `paramName:"set"`
	WorkspaceID int    `paramName:"workspace-id"`
	Username    string `paramName:"username"`
	Password    string `paramName:"password"`
	ApiURL      string `paramName:"api-url"`
}

type SeedResults struct {
	ContentIds map[string]int `json:"content_ids"`
}

// Seed creates every file and folder of a named fixture set in a
// workspace, in the set's listed order. There is no dedup: seeding the
// same set twice creates duplicate contents.
type Seed struct {
	Params        *SeedParams
	Client        tracim.ClientInterface
	Catalog       *fixtures.Catalog
	Results       SeedResults
	ResultsWriter common.ResultsWriterInterface
}

func NewSeed(cmd *cobra.Command) (*Seed, error) {
	seed := &Seed{}

	params := &SeedParams{}
	if err := common.ParseParameters(cmd, SeedParamsConfig, params); err != nil {
		return nil, err
	}
	seed.Params = params

	seed.Client = tracim.NewClient(params.ApiURL, tracim.Credentials{
		Username: params.Username,
		Password: params.Password,
	})
	seed.Catalog = fixtures.Default()
	seed.ResultsWriter = common.NewResultsWriter()

	return seed, nil
}

// Run executes the command logic.
func (c *Seed) Run() error {
	c.logParams()

	if err := c.validateParams(); err != nil {
		return err
	}

	paths, err := c.Catalog.Set(c.Params.SetName)
	if err != nil {
		return err
	}

	// Each created content is recorded under its full path so that
	// later paths can resolve their parent id. A failed creation
	// aborts the run immediately, leaving the workspace partially
	// populated.
	contentIds := map[string]int{}
	for _, path := range paths {
		l.Logger.Debugf("Creating %s", path)
		contentID, err := c.createEntity(path, contentIds)
		if err != nil {
			l.Logger.Errorf("failed to create '%s': %s", path, err.Error())
			return err
		}
		contentIds[path] = contentID
		l.Logger.Infof("Created %s (content id %d)", path, contentID)
	}

	c.Results.ContentIds = contentIds

	if resultJson, err := c.ResultsWriter.CreateResultJson(c.Results); err == nil {
		fmt.Print(resultJson)
	} else {
		l.Logger.Errorf("failed to create results json: %s", err.Error())
		return err
	}

	return nil
}

// createEntity creates the remote entity for one path. Only the last
// path segment is created; the parent id is resolved from the contents
// created by earlier paths of the set.
func (c *Seed) createEntity(path string, contentIds map[string]int) (int, error) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	name := segments[len(segments)-1]

	var parentID *int
	if len(segments) > 1 {
		parentKey := "/" + strings.Join(segments[:len(segments)-1], "/")
		id, exists := contentIds[parentKey]
		if !exists {
			return 0, fmt.Errorf("parent '%s' of '%s' has not been created yet, fix the set order", parentKey, path)
		}
		parentID = &id
	}

	switch {
	case strings.HasPrefix(name, filePrefix):
		content, err := c.Catalog.FileContent(path)
		if err != nil {
			return 0, err
		}
		return c.Client.CreateFile(c.Params.WorkspaceID, name, content, parentID)
	case strings.HasPrefix(name, folderPrefix):
		return c.Client.CreateFolder(c.Params.WorkspaceID, name, parentID)
	default:
		return 0, fmt.Errorf("entity name '%s' has no recognized prefix ('%s' or '%s')", name, filePrefix, folderPrefix)
	}
}

func (c *Seed) logParams() {
	l.Logger.Infof("[param] Set: %s", c.Params.SetName)
	l.Logger.Infof("[param] Workspace id: %d", c.Params.WorkspaceID)
	l.Logger.Infof("[param] Username: %s", c.Params.Username)
	l.Logger.Infof("[param] API URL: %s", c.Params.ApiURL)
}

func (c *Seed) validateParams() error {
	if c.Params.WorkspaceID <= 0 {
		return fmt.Errorf("workspace id '%d' is invalid", c.Params.WorkspaceID)
	}
	return validateApiURL(c.Params.ApiURL)
}

func validateApiURL(apiURL string) error {
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("API URL '%s' is invalid", apiURL)
	}
	return nil
}
