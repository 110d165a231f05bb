package tui

import (
	"errors"
	"strings"
	"testing"

	"e2fn/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelTracksProgress(t *testing.T) {
	m := NewModel(Config{SourceDir: "/photos", DestDir: "/photos.e2fs"})

	next, _ := m.Update(ProgressMsg{Current: 2, Total: 4, File: "b.jpg"})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "2/4 images") {
		t.Fatalf("expected counter in view:\n%s", view)
	}
	if !strings.Contains(view, "b.jpg") {
		t.Fatalf("expected current file in view:\n%s", view)
	}
}

func TestModelQuitsWhenDone(t *testing.T) {
	m := NewModel(Config{})
	next, cmd := m.Update(DoneMsg{Report: domain.Report{Copied: []domain.Rename{{Source: "a.jpg"}}}})
	m = next.(Model)

	if m.Phase != PhaseDone {
		t.Fatalf("expected done phase, got %v", m.Phase)
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestModelShowsError(t *testing.T) {
	m := NewModel(Config{})
	next, _ := m.Update(ErrorMsg{Err: errors.New("disk gone")})
	m = next.(Model)

	if m.Phase != PhaseError || !strings.Contains(m.View(), "disk gone") {
		t.Fatalf("expected error view, got:\n%s", m.View())
	}
}

func TestModelQuitCancelsRunningBatch(t *testing.T) {
	canceled := false
	m := NewModel(Config{Cancel: func() { canceled = true }})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	if !canceled {
		t.Fatalf("expected cancel to be called")
	}
	if !m.Quitting || cmd == nil {
		t.Fatalf("expected quitting model with quit command")
	}
}
