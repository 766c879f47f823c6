package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/app/styles"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/data"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/utils"
)

// maxFallbackRows caps the fallback table; runs over large collections can
// have dozens of entries and the tail adds nothing.
const maxFallbackRows = 20

// PrintBuildSummary renders the result table after a successful build.
func PrintBuildSummary(result *data.BuildResult) {
	columns := []table.Column{
		{Title: "Property", Width: 20},
		{Title: "Value", Width: 50},
	}

	rows := []table.Row{
		{"🃏 Cards extracted", fmt.Sprintf("%d", result.Cards)},
		{"📄 Pages created", fmt.Sprintf("%d", result.Pages)},
		{"💾 Output file", utils.Truncate(result.OutputPath, 48)},
		{"📊 File size", utils.HumanSize(result.OutputSize)},
	}

	fmt.Println()
	fmt.Println(renderTable(columns, rows, styles.Success))
	fmt.Println(styles.StatusCompleted.Render("✔ Done! Your card sheets are ready to print."))
}

// PrintExtractSummary renders the result line after a successful extract run.
func PrintExtractSummary(result *data.BuildResult) {
	fmt.Println()
	fmt.Printf("%s %s\n",
		styles.StatusCompleted.Render(fmt.Sprintf("✔ Extracted %d card images to", result.Cards)),
		styles.TextStyle.Render(result.OutputPath),
	)
}

// PrintFailureReport lists PDFs that needed the fallback renderer and PDFs
// that could not be processed at all. Prints nothing when both are empty.
func PrintFailureReport(failures []data.FailedPDF) {
	var recovered, skipped []data.FailedPDF
	for _, f := range failures {
		if f.UsedFallback {
			recovered = append(recovered, f)
		} else {
			skipped = append(skipped, f)
		}
	}

	columns := []table.Column{
		{Title: "Source", Width: 24},
		{Title: "Item", Width: 28},
		{Title: "Error", Width: 48},
	}

	if len(recovered) > 0 {
		fmt.Println()
		fmt.Println(styles.StatusWarning.Render(
			fmt.Sprintf("⚠ %d PDFs required the MuPDF fallback:", len(recovered))))

		rows := []table.Row{}
		for i, f := range recovered {
			if i == maxFallbackRows {
				rows = append(rows, table.Row{"...", fmt.Sprintf("and %d more", len(recovered)-maxFallbackRows), ""})
				break
			}
			rows = append(rows, failureRow(f))
		}
		fmt.Println(renderTable(columns, rows, styles.Warning))
	}

	if len(skipped) > 0 {
		fmt.Println()
		fmt.Println(styles.StatusError.Render(
			fmt.Sprintf("✘ %d items could not be processed at all:", len(skipped))))

		rows := []table.Row{}
		for _, f := range skipped {
			rows = append(rows, failureRow(f))
		}
		fmt.Println(renderTable(columns, rows, styles.Error))
	}
}

func failureRow(f data.FailedPDF) table.Row {
	return table.Row{
		utils.Truncate(f.Source, 22),
		utils.Truncate(f.Item, 26),
		utils.Truncate(f.Err, 46),
	}
}

func renderTable(columns []table.Column, rows []table.Row, border lipgloss.Color) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
