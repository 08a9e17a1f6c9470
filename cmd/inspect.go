package cmd

import (
	"github.com/spf13/cobra"

	"github.com/walletkeep/walletkeep/cmds"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Lists the persisted keys of the vault",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCommand(cmds.InspectCmd{Cmd: baseCmd()})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
