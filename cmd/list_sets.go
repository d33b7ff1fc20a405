package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/commands"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

var ListSetsCmd = &cobra.Command{
	Use:   "list-sets",
	Short: "List the names of the available fixture sets.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := commands.NewListSets().Run(); err != nil {
			l.Logger.Fatal(err)
		}
	},
}
