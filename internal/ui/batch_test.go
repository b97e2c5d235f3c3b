package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/isfconv/internal/batch"
	"github.com/linuxmatters/isfconv/internal/isf"
)

func update(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	if next != m {
		t.Fatalf("Update() returned a different model")
	}
	return cmd
}

func TestModel_Progress(t *testing.T) {
	m := NewModel(3, nil)

	update(t, m, FileStarted{batch.Job{Index: 0, Input: "/data/a.isf"}})
	update(t, m, FileStarted{batch.Job{Index: 1, Input: "/data/b.isf"}})
	if view := m.View(); !strings.Contains(view, "a.isf, b.isf") {
		t.Errorf("View() does not list running files:\n%s", view)
	}

	update(t, m, FileDone{batch.Result{
		Job:     batch.Job{Index: 0, Input: "/data/a.isf"},
		Written: "/out/a.csv",
		Points:  100,
		Warnings: []isf.Warning{
			{Kind: isf.IntegrityWarning, Want: 200, Got: 198},
		},
	}})
	update(t, m, FileDone{batch.Result{
		Job: batch.Job{Index: 1, Input: "/data/b.isf"},
		Err: errors.New("isf: truncated payload"),
	}})

	if m.Done() != 2 {
		t.Errorf("Done() = %d, want 2", m.Done())
	}

	view := m.View()
	for _, want := range []string{
		"Converting 3 files",
		"2/3",
		"Points: 100",
		"Failed: 1",
		"a.isf → a.csv (100 points",
		"BYT_NR * NR_PT != CURVE data size (200 != 198)",
		"b.isf: isf: truncated payload",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Working on") {
		t.Errorf("View() lists running files after they finished:\n%s", view)
	}
	if m.Summary() != "" {
		t.Errorf("Summary() before completion = %q, want empty", m.Summary())
	}
}

func TestModel_Complete(t *testing.T) {
	m := NewModel(1, nil)
	update(t, m, FileDone{batch.Result{Job: batch.Job{Input: "x.isf"}, Written: "x.csv", Points: 4}})

	if cmd := update(t, m, BatchComplete{Elapsed: 1500 * time.Millisecond}); cmd == nil {
		t.Fatalf("BatchComplete returned no command, want a delayed quit")
	}
	summary := m.Summary()
	if !strings.Contains(summary, "1/1") || !strings.Contains(summary, "1.5s") {
		t.Errorf("Summary() = %q, want completed progress and elapsed time", summary)
	}

	cmd := update(t, m, progressQuitMsg{})
	if cmd == nil {
		t.Fatalf("progressQuitMsg returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("progressQuitMsg command = %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_Interrupt(t *testing.T) {
	cancelled := false
	m := NewModel(5, func() { cancelled = true })

	cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c command = %T, want tea.QuitMsg", cmd())
	}
	if !cancelled {
		t.Errorf("ctrl+c did not cancel the batch")
	}
	if !m.Interrupted() {
		t.Errorf("Interrupted() = false, want true")
	}
}

func TestModel_ListsRecentFiles(t *testing.T) {
	m := NewModel(20, nil)
	for i := 0; i < 20; i++ {
		name := string(rune('a'+i)) + ".isf"
		update(t, m, FileDone{batch.Result{Job: batch.Job{Index: i, Input: name}, Written: "out.csv"}})
	}

	view := m.View()
	if strings.Contains(view, " a.isf") {
		t.Errorf("View() shows the oldest file while running:\n%s", view)
	}
	if !strings.Contains(view, " t.isf") {
		t.Errorf("View() does not show the newest file:\n%s", view)
	}

	update(t, m, BatchComplete{})
	if summary := m.Summary(); !strings.Contains(summary, " a.isf") {
		t.Errorf("Summary() does not list every file:\n%s", summary)
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel(1, nil)
	update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if m.progressBar.Width != 10 {
		t.Errorf("progress bar width = %d, want 10", m.progressBar.Width)
	}
	update(t, m, tea.WindowSizeMsg{Width: 200, Height: 10})
	if m.progressBar.Width != 50 {
		t.Errorf("progress bar width = %d, want 50", m.progressBar.Width)
	}
}
