package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version задается при сборке через -ldflags "-X main.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ledger",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ledger version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
