package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/scatter"
)

func newExplorer(t *testing.T) Model {
	t.Helper()
	cache, err := scatter.NewCache(8)
	if err != nil {
		t.Fatal(err)
	}
	p, err := scatter.Alpha(79, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	return New(cache, p, scatter.DefaultOptions())
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the returned command, if any, back through
// Update the way the bubbletea runtime would.
func press(m Model, s string) Model {
	next, cmd := m.Update(key(s))
	m = next.(Model)
	if cmd != nil {
		if msg, ok := cmd().(resultMsg); ok {
			next, _ = m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func TestExplorerInitialCompute(t *testing.T) {
	m := newExplorer(t)
	next, _ := m.Update(m.Init()())
	m = next.(Model)

	if m.out == nil || m.err != nil {
		t.Fatalf("expected outcome, got err %v", m.err)
	}
	view := m.View()
	if !strings.Contains(view, "deflection (theory)") || !strings.Contains(view, "132.5") {
		t.Errorf("view missing deflection:\n%s", view)
	}
}

func TestExplorerAdjustsFields(t *testing.T) {
	m := newExplorer(t)
	m = press(m, "right")
	if !near(m.energy, 5.5) {
		t.Errorf("energy = %g, want 5.5", m.energy)
	}

	m = press(m, "down")
	m = press(m, "left")
	if m.target != 78 {
		t.Errorf("target = %d, want 78", m.target)
	}

	m = press(m, "down")
	m = press(m, "]")
	if !near(m.impact, 20) {
		t.Errorf("impact = %g, want 20", m.impact)
	}
	if m.out == nil || m.out.Params != m.params() {
		t.Error("outcome does not match the current fields")
	}

	m = press(m, "r")
	if !near(m.energy, 5) || m.target != 79 || !near(m.impact, 10) {
		t.Errorf("reset gave %g MeV, Z=%d, %g fm", m.energy, m.target, m.impact)
	}
}

func TestExplorerHeadOnNotice(t *testing.T) {
	m := newExplorer(t)
	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "0")

	if !m.out.Deflection.HeadOn {
		t.Fatal("expected head-on outcome")
	}
	if !strings.Contains(m.View(), "head-on") {
		t.Error("head-on notice missing from view")
	}
}

func TestExplorerClampsFields(t *testing.T) {
	m := newExplorer(t)
	m = press(m, "down")
	m = press(m, "down")
	for i := 0; i < 20; i++ {
		m = press(m, "left")
	}
	if m.impact != 0 {
		t.Errorf("impact = %g, want 0", m.impact)
	}
	if m.err != nil {
		t.Errorf("unexpected error %v", m.err)
	}
}

func TestExplorerDropsStaleResults(t *testing.T) {
	m := newExplorer(t)
	stale := m.compute()
	m.energy = 7
	next, _ := m.Update(stale())
	if next.(Model).out != nil {
		t.Error("stale result was applied")
	}
}

func TestExplorerQuits(t *testing.T) {
	m := newExplorer(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
