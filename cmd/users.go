package cmd

import (
	"github.com/spf13/cobra"

	"github.com/walletkeep/walletkeep/cmds"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Prints the stored wallet accounts, seed material redacted",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCommand(cmds.UsersCmd{Cmd: baseCmd()})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
