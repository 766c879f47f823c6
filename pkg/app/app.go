package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/app/styles"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/data"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/services"
	"github.com/lehmamic/daggerheart-card-pdf-generator/pkg/utils"
)

// RunBuild drives a build (or extract) run behind a progress TUI. The work
// function runs in the background; the model consumes the builder's progress
// channel until the run closes it. Quitting the display early does not stop
// the run: RunBuild always waits for the work function before returning, so
// the result is never read while still being written.
func RunBuild(b *services.Builder, work func() (*data.BuildResult, error), opts ...tea.ProgramOption) (*data.BuildResult, error) {
	var (
		result  *data.BuildResult
		workErr error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, workErr = work()
		b.Close()
	}()

	p := tea.NewProgram(newBuildModel(b.Progress()), opts...)
	_, runErr := p.Run()
	<-done

	if workErr != nil {
		return nil, workErr
	}
	if runErr != nil {
		return nil, fmt.Errorf("progress display failed: %w", runErr)
	}
	return result, workErr
}

type progressMsg services.BuildProgress

// doneMsg signals that the progress channel was closed.
type doneMsg struct{}

type buildModel struct {
	ch      <-chan services.BuildProgress
	spinner spinner.Model
	bar     progress.Model
	last    services.BuildProgress
}

func newBuildModel(ch <-chan services.BuildProgress) buildModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.StatusWorking),
	)
	return buildModel{
		ch:      ch,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

func waitForProgress(ch <-chan services.BuildProgress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return doneMsg{}
		}
		return progressMsg(p)
	}
}

func (m buildModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForProgress(m.ch))
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.last = services.BuildProgress(msg)
		return m, waitForProgress(m.ch)

	case doneMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m buildModel) View() string {
	var b strings.Builder

	b.WriteString(styles.BannerStyle.Render(
		styles.TitleStyle.Render("Daggerheart Cards") + "\n" +
			styles.SubtitleStyle.Render("Creating printable card sheets"),
	))
	b.WriteString("\n\n")

	phase := m.last.Phase
	if phase == "" {
		phase = "scanning"
	}

	line := fmt.Sprintf("%s %s", m.spinner.View(), styles.StatusStyle(phase).Render(phaseLabel(phase)))
	if m.last.Item != "" {
		line += " " + styles.TextStyle.Render(utils.Truncate(m.last.Item, 48))
	}
	b.WriteString(line)
	b.WriteString("\n")

	if m.last.Total > 0 {
		percent := float64(m.last.Current) / float64(m.last.Total)
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" %d/%d", m.last.Current, m.last.Total)))
		b.WriteString("\n")
	}

	if m.last.Phase == "error" && m.last.Err != nil {
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", m.last.Err)))
		b.WriteString("\n")
	}

	return b.String()
}

func phaseLabel(phase string) string {
	switch phase {
	case "scanning":
		return "Scanning assets..."
	case "extracting":
		return "Extracting"
	case "copying":
		return "Copying"
	case "writing":
		return "Writing"
	case "complete":
		return "Done"
	case "error":
		return "Failed"
	default:
		return phase
	}
}
