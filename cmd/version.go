package cmd

import (
	"fmt"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"

	"github.com/walletkeep/walletkeep/utils"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of the CLI tool",
	RunE: func(_ *cobra.Command, _ []string) (err error) {
		defer err2.Handle(&err)

		try.To1(fmt.Println(utils.Version))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
