package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/app/components"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract card images without building a PDF",
	Long:  "Collect and normalize card images from the assets directory into a folder of image files",
	Run: func(cmd *cobra.Command, args []string) {
		assetsDir, _ := cmd.Flags().GetString("assets-dir")
		output, _ := cmd.Flags().GetString("output")
		noFallback, _ := cmd.Flags().GetBool("no-fallback")

		builder := services.NewBuilder(assetsDir, !noFallback, 0)

		done := listenPlain(builder)
		result, err := builder.Extract(output)
		builder.Close()
		<-done
		cobra.CheckErr(err)

		components.PrintExtractSummary(result)
		components.PrintFailureReport(result.Failures)
	},
}

func init() {
	extractCmd.Flags().StringP("assets-dir", "a", "assets", "Path to the assets directory")
	extractCmd.Flags().StringP("output", "o", "build/images", "Directory for the extracted card images")
	extractCmd.Flags().Bool("no-fallback", false, "Disable the MuPDF fallback (useful for testing)")
}
