// Package ui shows the progress of a batch conversion as a Bubbletea program.
package ui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/isfconv/internal/batch"
	"github.com/linuxmatters/isfconv/internal/cli"
)

// maxLines is the number of finished files listed while the batch runs.
const maxLines = 8

// FileStarted reports that a worker picked up a file.
type FileStarted struct {
	batch.Job
}

// FileDone reports the outcome of one file.
type FileDone struct {
	batch.Result
}

// BatchComplete signals that every job has finished.
type BatchComplete struct {
	Elapsed time.Duration
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model is the Bubbletea model for a batch conversion.
type Model struct {
	progressBar progress.Model

	total   int
	results []batch.Result
	running map[int]string
	lines   []string
	points  int
	failed  int

	startTime time.Time
	elapsed   time.Duration
	complete  bool

	// UI state
	width           int
	completionDelay time.Duration
	cancel          func()
	interrupted     bool
}

// NewModel creates a model for total files. cancel, if set, is called when
// the user interrupts the batch.
func NewModel(total int, cancel func()) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.TraceAmber), string(cli.TraceYellow)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		total:           total,
		running:         make(map[int]string),
		startTime:       time.Now(),
		completionDelay: 500 * time.Millisecond,
		cancel:          cancel,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case FileStarted:
		m.running[msg.Index] = filepath.Base(msg.Input)
		return m, nil

	case FileDone:
		delete(m.running, msg.Index)
		m.results = append(m.results, msg.Result)
		m.points += msg.Points
		if msg.Err != nil {
			m.failed++
		}
		m.lines = append(m.lines, fileLines(msg.Result)...)
		return m, nil

	case BatchComplete:
		m.complete = true
		m.elapsed = msg.Elapsed
		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// Interrupted reports whether the user stopped the batch.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Done returns the number of finished files.
func (m *Model) Done() int {
	return len(m.results)
}

// fileLines renders the per-file lines for a result: the outcome followed
// by any warnings.
func fileLines(res batch.Result) []string {
	name := filepath.Base(res.Input)
	okStyle := lipgloss.NewStyle().Foreground(cli.TraceYellow)
	errStyle := lipgloss.NewStyle().Foreground(cli.TraceRed).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(cli.TraceAmber)
	faint := lipgloss.NewStyle().Faint(true)

	var lines []string
	if res.Err != nil {
		lines = append(lines, errStyle.Render("✗ ")+name+faint.Render(": "+res.Err.Error()))
	} else {
		lines = append(lines, okStyle.Render("✓ ")+name+faint.Render(
			fmt.Sprintf(" → %s (%d points, %s)", filepath.Base(res.Written), res.Points, cli.FormatDuration(res.Duration))))
	}
	for _, w := range res.Warnings {
		lines = append(lines, warnStyle.Render("  ⚠ ")+faint.Render(w.String()))
	}
	return lines
}

// View renders the UI
func (m *Model) View() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.TraceYellow).
		Render("isfconv ⏦")
	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(cli.TraceAmber).Render(
		fmt.Sprintf("Converting %d files", m.total)))
	s.WriteString("\n\n")

	percent := 1.0
	if m.total > 0 {
		percent = float64(len(m.results)) / float64(m.total)
	}
	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(percent))
	s.WriteString(fmt.Sprintf("  %d/%d", len(m.results), m.total))
	s.WriteString("\n")

	elapsed := m.elapsed
	if !m.complete {
		elapsed = time.Since(m.startTime)
	}
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("Time: %s  │  Points: %d  │  Failed: %d", cli.FormatDuration(elapsed), m.points, m.failed)))
	s.WriteString("\n")

	if len(m.running) > 0 && !m.complete {
		names := make([]string, 0, len(m.running))
		for _, n := range m.running {
			names = append(names, n)
		}
		slices.Sort(names)
		s.WriteString(lipgloss.NewStyle().Faint(true).Italic(true).Render(
			"Working on: " + strings.Join(names, ", ")))
		s.WriteString("\n")
	}

	lines := m.lines
	if !m.complete && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	if len(lines) > 0 {
		s.WriteString("\n")
		s.WriteString(strings.Join(lines, "\n"))
		s.WriteString("\n")
	}

	border := cli.TraceAmber
	if m.failed > 0 {
		border = cli.TraceRed
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(strings.TrimRight(s.String(), "\n"))
}

// Summary returns the final view for printing after the program exits.
// Returns empty string if the batch is not complete.
func (m *Model) Summary() string {
	if !m.complete {
		return ""
	}
	return m.View()
}
