package tui

import (
	"fmt"
	"os"
	"strings"

	"e2fn/internal/domain"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	ProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	DoneMsg struct {
		Report domain.Report
	}
	ErrorMsg struct {
		Err error
	}
)

type Config struct {
	SourceDir string
	DestDir   string
	DryRun    bool
	// Cancel is called when the user quits while the batch is running.
	Cancel func()
}

type Model struct {
	config   Config
	Phase    Phase
	Report   domain.Report
	Err      error
	spinner  spinner.Model
	progress progress.Model
	current  int
	total    int
	file     string
	Quitting bool
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseRunning,
		spinner:  s,
		progress: p,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(msg.Width-20, 60))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.Phase == PhaseRunning && m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, tea.Quit
		}

	case ProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		m.file = msg.File
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Report = msg.Report
		return m, tea.Quit

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.Phase == PhaseRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseRunning:
		b.WriteString(m.renderRunning())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Press q to stop"))
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHeader() string {
	subtitle := "Renaming photos by capture time"
	if m.config.DryRun {
		subtitle += " (dry run)"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("e2fn"),
		subtitleStyle.Render(subtitle),
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.DestDir))),
	)
}

func (m Model) renderRunning() string {
	if m.total == 0 {
		return fmt.Sprintf("%s Scanning images...", m.spinner.View())
	}

	percent := float64(m.current) / float64(m.total)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Processing...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d images", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	if m.file != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.file)))
	}
	return b.String()
}

func (m Model) renderDone() string {
	line := fmt.Sprintf("%s %d images processed, %d copied", iconSuccess, m.total, len(m.Report.Copied))
	if m.config.DryRun {
		line = fmt.Sprintf("%s %d images processed, %d would be copied", iconSuccess, m.total, len(m.Report.Copied))
	}
	out := successStyle.Render(line)
	if skipped := m.Report.Skipped(); skipped > 0 {
		out += "\n" + warningStyle.Render(fmt.Sprintf("%s %d skipped", iconWarning, skipped))
	}
	return out
}

func (m Model) renderError() string {
	msg := errorStyle.Render(fmt.Sprintf("%s Error: %s", iconError, m.Err.Error()))
	return highlightBoxStyle.BorderForeground(errorColor).Render(msg)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
