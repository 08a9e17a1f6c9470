package cmd

import (
	"github.com/spf13/cobra"

	"github.com/walletkeep/walletkeep/cmds"
)

var migrateFlags = struct {
	version string
}{}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Runs the startup data migrations and prints the prior version",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCommand(cmds.MigrateCmd{
			Cmd:     baseCmd(),
			Version: migrateFlags.version,
		})
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFlags.version, "as-version",
		cmds.DefaultVersion(), "version tag to migrate to")
	rootCmd.AddCommand(migrateCmd)
}
