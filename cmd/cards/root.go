package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daggerheart-cards",
	Short: "Generate printable Daggerheart card sheets",
	Long:  "Discover card images from ZIP archives, PDFs and image files and lay them out into a printable 3x3 card sheet PDF with cut marks",
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(extractCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
