package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/app"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/app/components"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/data"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/integrations"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/services"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the card sheet PDF",
	Long:  "Collect card images from the assets directory and write a printable 3x3 card sheet PDF",
	Run: func(cmd *cobra.Command, args []string) {
		assetsDir, _ := cmd.Flags().GetString("assets-dir")
		output, _ := cmd.Flags().GetString("output")
		noFallback, _ := cmd.Flags().GetBool("no-fallback")
		dpi, _ := cmd.Flags().GetFloat64("dpi")
		plain, _ := cmd.Flags().GetBool("plain")

		builder := services.NewBuilder(assetsDir, !noFallback, dpi)

		var result *data.BuildResult
		var err error

		if plain {
			done := listenPlain(builder)
			result, err = builder.Build(output)
			builder.Close()
			<-done
		} else {
			result, err = app.RunBuild(builder, func() (*data.BuildResult, error) {
				return builder.Build(output)
			})
		}
		cobra.CheckErr(err)

		components.PrintBuildSummary(result)
		components.PrintFailureReport(result.Failures)
	},
}

// listenPlain prints progress lines instead of the TUI. The returned channel
// closes once the progress channel has drained.
func listenPlain(builder *services.Builder) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for progress := range builder.Progress() {
			switch progress.Phase {
			case "extracting", "copying":
				fmt.Printf("  [%d/%d] %s: %s\n", progress.Current, progress.Total, progress.Source, progress.Item)
			case "writing":
				fmt.Printf("  %s\n", progress.Item)
			}
		}
	}()
	return done
}

func init() {
	buildCmd.Flags().StringP("assets-dir", "a", "assets", "Path to the assets directory")
	buildCmd.Flags().StringP("output", "o", "build/daggerheart-cards.pdf", "Path to the output PDF")
	buildCmd.Flags().Bool("no-fallback", false, "Disable the MuPDF fallback (useful for testing)")
	buildCmd.Flags().Float64("dpi", integrations.DefaultDPI, "Raster density of the composed sheets")
	buildCmd.Flags().Bool("plain", false, "Print plain progress lines instead of the TUI")
}
