package workspace

import (
	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/commands"
	"github.com/tracim/tracim-seed-cli/pkg/common"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Trash every root-level content of a workspace.",
	Run: func(cmd *cobra.Command, args []string) {
		clear, err := commands.NewClear(cmd)
		if err != nil {
			l.Logger.Fatal(err)
		}
		if err := clear.Run(); err != nil {
			l.Logger.Fatal(err)
		}
	},
}

func init() {
	common.RegisterParameters(ClearCmd, commands.ClearParamsConfig)
}
