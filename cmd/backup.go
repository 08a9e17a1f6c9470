package cmd

import (
	"github.com/spf13/cobra"

	"github.com/walletkeep/walletkeep/cmds"
)

var backupFlags = struct {
	dir string
	at  string
}{}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshots the vault file, optionally on a daily schedule",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runCommand(cmds.BackupCmd{
			Cmd:        baseCmd(),
			BackupDir:  backupFlags.dir,
			BackupTime: backupFlags.at,
		})
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupFlags.dir, "backup-dir", "",
		"directory the snapshots are written to")
	backupCmd.Flags().StringVar(&backupFlags.at, "backup-time", "",
		"daily snapshot time as HH:MM, empty takes one snapshot and exits")
	rootCmd.AddCommand(backupCmd)
}
