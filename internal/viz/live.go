// Package viz renders the live reactor dashboard: a bubbletea program
// that ticks the engine in real time and charts the plasma history.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tokasim/internal/reactor"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives one simulator interactively.
type Model struct {
	sim     *reactor.Simulator
	snap    reactor.Snapshot
	dt      float64
	maxTime float64
	fps     int

	running bool

	tempHistory []float64 // MK
	qHistory    []float64
}

// NewModel builds the dashboard around a freshly reset simulator.
func NewModel(sim *reactor.Simulator, dt, maxTime float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		sim:         sim,
		dt:          dt,
		maxTime:     maxTime,
		fps:         fps,
		running:     true,
		tempHistory: make([]float64, 0, historyCapacity),
		qHistory:    make([]float64, 0, historyCapacity),
	}
	m.snap = sim.Reset()
	m.record(m.snap)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.snap = m.sim.Reset()
			m.tempHistory = m.tempHistory[:0]
			m.qHistory = m.qHistory[:0]
			m.record(m.snap)
			m.running = true
		}
	case TickMsg:
		if m.running && !m.snap.Failed && m.snap.Time < m.maxTime {
			m.snap = m.sim.Step(m.dt, m.snap)
			m.record(m.snap)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) record(snap reactor.Snapshot) {
	m.tempHistory = appendCapped(m.tempHistory, snap.Plasma.Temperature/1e6)
	q := snap.Power.QFactor
	if math.IsInf(q, 0) {
		q = 0
	}
	m.qHistory = appendCapped(m.qHistory, q)
}

func appendCapped(series []float64, v float64) []float64 {
	series = append(series, v)
	if len(series) > historyCapacity {
		series = series[1:]
	}
	return series
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("TOKAMAK REACTOR") + "\n")
	s.WriteString(m.statusLine() + "\n")

	if len(m.tempHistory) > 1 {
		chart := asciigraph.Plot(m.tempHistory, asciigraph.Height(5), asciigraph.Width(50), asciigraph.Caption("Plasma temperature (MK)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.qHistory) > 1 {
		chart := asciigraph.Plot(m.qHistory, asciigraph.Height(5), asciigraph.Width(50), asciigraph.Caption("Q factor"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + m.readout())
	s.WriteString(m.diagnostics())
	s.WriteString(helpStyle.Render("\nSP:Pause  R:Reset  Q:Quit"))

	return panelStyle.Render(s.String())
}

func (m Model) statusLine() string {
	switch {
	case m.snap.Failed:
		return errStyle.Render(fmt.Sprintf("FAILED at t=%.1fs: %s", m.snap.Time, m.snap.FailureCause))
	case !m.snap.Operational:
		return warnStyle.Render(fmt.Sprintf("DEGRADED at t=%.1fs", m.snap.Time))
	case !m.running:
		return valueStyle.Render(fmt.Sprintf("PAUSED at t=%.1fs", m.snap.Time))
	case m.snap.Time >= m.maxTime:
		return okStyle.Render(fmt.Sprintf("COMPLETE at t=%.1fs", m.snap.Time))
	default:
		return okStyle.Render(fmt.Sprintf("OPERATIONAL t=%.1fs", m.snap.Time))
	}
}

func (m Model) readout() string {
	snap := m.snap
	lines := []struct {
		label, value string
	}{
		{"Temperature", fmt.Sprintf("%.1f MK", snap.Plasma.Temperature/1e6)},
		{"Density", fmt.Sprintf("%.2e m^-3", snap.Plasma.Density)},
		{"Confinement", fmt.Sprintf("%.3f s", snap.Plasma.ConfinementTime)},
		{"Fusion power", fmt.Sprintf("%.1f MW", snap.Power.FusionPower/1e6)},
		{"Q factor", formatQ(snap.Power.QFactor)},
		{"Safety factor", fmt.Sprintf("%.2f", snap.Magnetic.SafetyFactor)},
		{"Beta", fmt.Sprintf("%.4f", snap.Magnetic.Beta)},
		{"Breeding ratio", fmt.Sprintf("%.2f", snap.Neutronics.BreedingRatio)},
		{"Wall temp", fmt.Sprintf("%.0f K", snap.FirstWallTemp)},
		{"Damage", fmt.Sprintf("%.3f DPA", snap.MaterialDamage)},
		{"Tritium", fmt.Sprintf("%.2e atoms", snap.TritiumInventory)},
	}

	var s strings.Builder
	for _, line := range lines {
		s.WriteString(labelStyle.Render(line.label) + valueStyle.Render(line.value) + "\n")
	}
	return s.String()
}

func (m Model) diagnostics() string {
	var s strings.Builder
	for _, d := range m.snap.Diagnostics {
		switch d.Severity {
		case reactor.SeverityError:
			s.WriteString(errStyle.Render("✗ "+d.Message) + "\n")
		default:
			s.WriteString(warnStyle.Render("⚠ "+d.Message) + "\n")
		}
	}
	return s.String()
}

func formatQ(q float64) string {
	if math.IsInf(q, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", q)
}
