package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/scatter"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	fieldEnergy = iota
	fieldTarget
	fieldImpact
	numFields
)

var fieldNames = [numFields]string{"energy (MeV)", "target Z", "impact b (fm)"}

type resultMsg struct {
	params scatter.Parameters
	out    *scatter.Outcome
	err    error
}

// Model is the scattering explorer. Every change of a field recomputes
// through the shared cache, so revisiting a setting is free.
type Model struct {
	cache  *scatter.Cache
	opts   scatter.Options
	start  scatter.Parameters
	energy float64 // MeV
	target int
	impact float64 // fm
	cursor int

	out           *scatter.Outcome
	err           error
	width, height int
}

func New(cache *scatter.Cache, start scatter.Parameters, opts scatter.Options) Model {
	m := Model{cache: cache, opts: opts, start: start, width: 80, height: 24}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.energy = m.start.KineticEnergy / constants.MeV
	m.target = m.start.TargetCharge
	m.impact = m.start.ImpactParameter / constants.Femtometre
}

func (m Model) params() scatter.Parameters {
	return scatter.Parameters{
		ProjectileCharge: m.start.ProjectileCharge,
		TargetCharge:     m.target,
		ProjectileMass:   m.start.ProjectileMass,
		KineticEnergy:    m.energy * constants.MeV,
		ImpactParameter:  m.impact * constants.Femtometre,
	}
}

func (m Model) compute() tea.Cmd {
	p, cache, opts := m.params(), m.cache, m.opts
	return func() tea.Msg {
		out, err := cache.Compute(context.Background(), p, opts)
		return resultMsg{params: p, out: out, err: err}
	}
}

func (m Model) Init() tea.Cmd { return m.compute() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case resultMsg:
		// results for settings already left behind are dropped
		if msg.params == m.params() {
			m.out, m.err = msg.out, msg.err
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < numFields-1 {
			m.cursor++
		}
		return m, nil
	case "right", "l":
		m.adjust(1)
	case "left", "h":
		m.adjust(-1)
	case "]":
		m.scale(2)
	case "[":
		m.scale(0.5)
	case "0":
		if m.cursor == fieldImpact {
			m.impact = 0
		}
	case "r":
		m.reset()
	default:
		return m, nil
	}
	return m, m.compute()
}

func (m *Model) adjust(dir int) {
	switch m.cursor {
	case fieldEnergy:
		m.energy = math.Max(0.1, m.energy+0.5*float64(dir))
	case fieldTarget:
		m.target = max(1, m.target+dir)
	case fieldImpact:
		m.impact = math.Max(0, m.impact+float64(dir))
	}
}

func (m *Model) scale(f float64) {
	switch m.cursor {
	case fieldEnergy:
		m.energy = math.Max(0.1, m.energy*f)
	case fieldTarget:
		m.target = max(1, int(math.Round(float64(m.target)*f)))
	case fieldImpact:
		m.impact *= f
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(viz.Title.Render("rutherford scattering") + "\n\n")

	values := [numFields]string{
		fmt.Sprintf("%.2f", m.energy),
		fmt.Sprintf("%d", m.target),
		fmt.Sprintf("%.2f", m.impact),
	}
	for i, name := range fieldNames {
		line := fmt.Sprintf("%-14s %s", name, values[i])
		if i == m.cursor {
			b.WriteString(viz.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + viz.MetricLabel.Render(line) + "\n")
		}
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(viz.Warning.Render("error: "+m.err.Error()) + "\n")
	case m.out == nil:
		b.WriteString(viz.Subtle.Render("computing...") + "\n")
	default:
		b.WriteString(m.viewOutcome())
	}

	b.WriteString("\n" + viz.KeyHint.Render("up/down select  left/right adjust  [ ] halve/double  0 head-on  r reset  q quit"))
	return b.String()
}

func (m Model) viewOutcome() string {
	out := m.out
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(viz.MetricLabel.Render(fmt.Sprintf("%-22s", label)) + viz.MetricValue.Render(value) + "\n")
	}
	row("deflection (theory)", fmt.Sprintf("%.3f deg", out.Deflection.Degrees))
	if out.Deflection.HeadOn {
		b.WriteString(viz.Warning.Render("head-on: the projectile is reflected straight back") + "\n")
	}
	row("closest approach", fmt.Sprintf("%.2f fm", out.ClosestApproach/constants.Femtometre))
	if t := out.Trajectory; t != nil {
		row("integrator steps", fmt.Sprintf("%d (%d rejected)", t.Steps, t.Rejected))
		row("energy drift", fmt.Sprintf("%.2e", t.EnergyDrift))
	}

	w := max(20, min(m.width-4, 100))
	h := max(6, m.height-16)
	b.WriteString(viz.Panel.Render(strings.TrimRight(viz.TrajectoryCanvas(out.Trajectory, w, h), "\n")) + "\n")
	return b.String()
}

func Run(cache *scatter.Cache, start scatter.Parameters, opts scatter.Options) error {
	_, err := tea.NewProgram(New(cache, start, opts), tea.WithAltScreen()).Run()
	return err
}
