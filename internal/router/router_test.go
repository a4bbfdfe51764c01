package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wakey/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	alarms := &stubScreen{title: "Alarms"}
	r.Push(alarms)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "Alarms" {
		t.Errorf("expected active 'Alarms', got %q", r.Active().Title())
	}
	if !alarms.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	alarms := &stubScreen{title: "Alarms"}
	r.Push(alarms)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "Home" {
		t.Errorf("expected active 'Home', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	ring := &stubScreen{title: "Ring"}
	r.Replace(ring)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "Ring" {
		t.Errorf("expected active 'Ring', got %q", r.Active().Title())
	}
	if !ring.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	ring := &stubScreen{title: "Ring"}
	r.Update(ReplaceScreenMsg{Screen: ring})

	if r.Active().Title() != "Ring" {
		t.Errorf("expected active 'Ring', got %q", r.Active().Title())
	}
	if !ring.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	alarms := &stubScreen{title: "Alarms"}
	r.Push(alarms)

	history := &stubScreen{title: "Ring History"}
	r.Replace(history)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "Ring History" {
		t.Errorf("expected active 'Ring History', got %q", r.Active().Title())
	}
}
