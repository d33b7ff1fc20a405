package commands

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/common"
	"github.com/tracim/tracim-seed-cli/pkg/tracim"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

var ClearParamsConfig = map[string]common.Parameter{
	"workspace-id": {
		Name:       "workspace-id",
		ShortName:  "w",
		EnvVarName: "TRACIM_CLEAR_WORKSPACE_ID",
		TypeKind:   reflect.Int,
		Usage:      "Id of the workspace to clear. Required.",
		Required:   true,
	},
	"username": {
		Name:       "username",
		ShortName:  "u",
		EnvVarName: "TRACIM_CLEAR_USERNAME",
		TypeKind:   reflect.String,
		Usage:      "Username used for basic auth against the Tracim API. Required.",
		Required:   true,
	},
	"password": {
		Name:       "password",
		ShortName:  "p",
		EnvVarName: "TRACIM_CLEAR_PASSWORD",
		TypeKind:   reflect.String,
		Usage:      "Password used for basic auth against the Tracim API. Required.",
		Required:   true,
	},
	"api-url": {
		Name:         "api-url",
		ShortName:    "a",
		EnvVarName:   "TRACIM_CLEAR_API_URL",
		TypeKind:     reflect.String,
		DefaultValue: "http://localhost/api",
		Usage:        "Base URL of the Tracim API.",
	},
}

type ClearParams struct {
	WorkspaceID int    `paramName:"workspace-id"`
	Username    string `paramName:"username"`
	Password    string `paramName:"password"`
	ApiURL      string `paramName:"api-url"`
}

type ClearResults struct {
	TrashedIds []int `json:"trashed_ids"`
}

// Clear trashes every root-level content of a workspace so the next
// seed run starts from a clean slate. Children are trashed together
// with their parent by the remote service.
type Clear struct {
	Params        *ClearParams
	Client        tracim.ClientInterface
	Results       ClearResults
	ResultsWriter common.ResultsWriterInterface
}

func NewClear(cmd *cobra.Command) (*Clear, error) {
	clear := &Clear{}

	params := &ClearParams{}
	if err := common.ParseParameters(cmd, ClearParamsConfig, params); err != nil {
		return nil, err
	}
	clear.Params = params

	clear.Client = tracim.NewClient(params.ApiURL, tracim.Credentials{
		Username: params.Username,
		Password: params.Password,
	})
	clear.ResultsWriter = common.NewResultsWriter()

	return clear, nil
}

// Run executes the command logic.
func (c *Clear) Run() error {
	c.logParams()

	if err := c.validateParams(); err != nil {
		return err
	}

	contents, err := c.Client.ListContents(c.Params.WorkspaceID)
	if err != nil {
		return err
	}

	trashedIds := []int{}
	for _, content := range contents {
		if content.ParentID != nil || content.IsDeleted {
			continue
		}
		l.Logger.Debugf("Trashing content %d (%s)", content.ContentID, content.Label)
		if err := c.Client.TrashContent(c.Params.WorkspaceID, content.ContentID); err != nil {
			l.Logger.Errorf("failed to trash content %d: %s", content.ContentID, err.Error())
			return err
		}
		trashedIds = append(trashedIds, content.ContentID)
	}
	l.Logger.Infof("Trashed %d root contents", len(trashedIds))

	c.Results.TrashedIds = trashedIds

	if resultJson, err := c.ResultsWriter.CreateResultJson(c.Results); err == nil {
		fmt.Print(resultJson)
	} else {
		l.Logger.Errorf("failed to create results json: %s", err.Error())
		return err
	}

	return nil
}

func (c *Clear) logParams() {
	l.Logger.Infof("[param] Workspace id: %d", c.Params.WorkspaceID)
	l.Logger.Infof("[param] Username: %s", c.Params.Username)
	l.Logger.Infof("[param] API URL: %s", c.Params.ApiURL)
}

func (c *Clear) validateParams() error {
	if c.Params.WorkspaceID <= 0 {
		return fmt.Errorf("workspace id '%d' is invalid", c.Params.WorkspaceID)
	}
	return validateApiURL(c.Params.ApiURL)
}
