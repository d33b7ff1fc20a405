package workspace

import (
	"github.com/spf13/cobra"

	"github.com/tracim/tracim-seed-cli/pkg/commands"
	"github.com/tracim/tracim-seed-cli/pkg/common"

	l "github.com/tracim/tracim-seed-cli/pkg/logger"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a seeded fixture set exists in a workspace with the expected contents.",
	Run: func(cmd *cobra.Command, args []string) {
		verify, err := commands.NewVerify(cmd)
		if err != nil {
			l.Logger.Fatal(err)
		}
		if err := verify.Run(); err != nil {
			l.Logger.Fatal(err)
		}
	},
}

func init() {
	common.RegisterParameters(VerifyCmd, commands.VerifyParamsConfig)
}
