package commands

import (
	"fmt"

	"github.com/tracim/tracim-seed-cli/pkg/common"
	"github.com/tracim/tracim-seed-cli/pkg/fixtures"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

type ListSetsResults struct {
	Sets []string `json:"sets"`
}

// ListSets prints the names of the available fixture sets.
type ListSets struct {
	Catalog       *fixtures.Catalog
	Results       ListSetsResults
	ResultsWriter common.ResultsWriterInterface
}

func NewListSets() *ListSets {
	return &ListSets{
		Catalog:       fixtures.Default(),
		ResultsWriter: common.NewResultsWriter(),
	}
}

// Run executes the command logic.
func (c *ListSets) Run() error {
	c.Results.Sets = c.Catalog.SetNames()

	if resultJson, err := c.ResultsWriter.CreateResultJson(c.Results); err == nil {
		fmt.Print(resultJson)
	} else {
		l.Logger.Errorf("failed to create results json: %s", err.Error())
		return err
	}

	return nil
}
