package workspace

import (
	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/commands"
	"github.com/tracim/tracim-seed-cli/pkg/common"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

const COMMAND_NAME = "seed"

var SeedCmd = &cobra.Command{
	Use:   COMMAND_NAME,
	Short: "Create every file and folder of a named fixture set in a workspace.",
	Long:  "Create every file and folder of a named fixture set in a workspace, in the set's listed order.",
	Run: func(cmd *cobra.Command, args []string) {
		l.Logger.Debugf("Starting %s", COMMAND_NAME)
		seed, err := commands.NewSeed(cmd)
		if err != nil {
			l.Logger.Fatal(err)
		}
		if err := seed.Run(); err != nil {
			l.Logger.Fatal(err)
		}
		l.Logger.Debugf("Finished %s", COMMAND_NAME)
	},
}

func init() {
	common.RegisterParameters(SeedCmd, commands.SeedParamsConfig)
}
