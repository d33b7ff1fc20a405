package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/cmd/workspace"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "A sub command group to work with workspace contents",
}

func init() {
	workspaceCmd.AddCommand(workspace.SeedCmd)
	workspaceCmd.AddCommand(workspace.ClearCmd)
	workspaceCmd.AddCommand(workspace.VerifyCmd)
}
