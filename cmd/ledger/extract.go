package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [image]",
	Short: "Print the text recognized in an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ex, err := newExtractor(appConfig.OCR, logger)
		if err != nil {
			return err
		}

		text, err := ex.Extract(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
