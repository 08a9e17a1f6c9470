package cmd

import (
	"github.com/spf13/cobra"

	"github.com/walletkeep/walletkeep/cmds"
)

var wipeFlags = struct {
	sure bool
}{}

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Erases every persisted key, no undo",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCommand(cmds.WipeCmd{
			Cmd:  baseCmd(),
			Sure: wipeFlags.sure,
		})
	},
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeFlags.sure, "sure", false,
		"confirm that the storage really should be wiped")
	rootCmd.AddCommand(wipeCmd)
}
