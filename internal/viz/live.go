// Package viz renders a running billiard simulation in the terminal.
// It advances the engine with Evolve, registering no callbacks, and
// reads state through the read accessors; nothing here edits balls or
// obstacles.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/billiards/internal/billiard"
	"github.com/san-kum/billiards/internal/geom"
	"github.com/san-kum/billiards/internal/metrics"
	"github.com/san-kum/billiards/internal/obstacle"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives a simulation from a bubbletea program: every tick
// advances the clock by a fixed frame and redraws.
type Model struct {
	sim      *billiard.Simulation
	name     string
	dt       float64
	running  bool
	finished bool
	endTime  float64

	canvas *Canvas
	// view window in world coordinates
	center geom.Vec
	scale  float64 // pixels per world unit

	energyHistory []float64
	err           error
}

// NewModel sets up a live view of the simulation. endTime <= 0 runs
// without a stopping point.
func NewModel(sim *billiard.Simulation, name string, endTime float64) Model {
	m := Model{
		sim:     sim,
		name:    name,
		dt:      1.0 / 30,
		running: true,
		endTime: endTime,
		canvas:  NewCanvas(canvasCols, canvasRows),
	}
	m.fitView()
	return m
}

// fitView frames all balls and obstacle anchor points with a margin.
func (m *Model) fitView() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p geom.Vec, pad float64) {
		minX = math.Min(minX, p.X-pad)
		minY = math.Min(minY, p.Y-pad)
		maxX = math.Max(maxX, p.X+pad)
		maxY = math.Max(maxY, p.Y+pad)
	}

	for i := 0; i < m.sim.Len(); i++ {
		grow(m.sim.Position(i), m.sim.Radius(i))
	}
	for _, obs := range m.sim.Obstacles() {
		switch o := obs.(type) {
		case *obstacle.Disk:
			grow(o.Center(), o.Radius())
		case *obstacle.InfiniteWall:
			grow(o.Start(), 0)
			grow(o.End(), 0)
		case *obstacle.LineSegment:
			grow(o.Start(), 0)
			grow(o.End(), 0)
		}
	}

	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}

	pw, ph := m.canvas.PixelSize()
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	m.scale = 0.9 * math.Min(float64(pw)/spanX, float64(ph)/spanY)
	m.center = geom.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}

// project maps world coordinates to canvas pixels (y grows upwards in
// the world, downwards on the canvas).
func (m *Model) project(p geom.Vec) (int, int) {
	pw, ph := m.canvas.PixelSize()
	x := float64(pw)/2 + (p.X-m.center.X)*m.scale
	y := float64(ph)/2 - (p.Y-m.center.Y)*m.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.scale *= 1.25
		case "-", "_":
			m.scale /= 1.25
		case "f":
			m.fitView()
		}
	case TickMsg:
		if m.running && !m.finished && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	target := m.sim.Time() + m.dt
	if m.endTime > 0 && target >= m.endTime {
		target = m.endTime
		m.finished = true
	}
	if _, _, err := m.sim.Evolve(target, nil, nil); err != nil {
		m.err = err
		return
	}

	m.energyHistory = append(m.energyHistory, metrics.KineticEnergy(m.sim))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, obs := range m.sim.Obstacles() {
		switch o := obs.(type) {
		case *obstacle.Disk:
			cx, cy := m.project(o.Center())
			m.canvas.Circle(cx, cy, int(math.Round(o.Radius()*m.scale)))
		case *obstacle.InfiniteWall:
			x0, y0 := m.project(o.Start())
			x1, y1 := m.project(o.End())
			m.canvas.Line(x0, y0, x1, y1)
		case *obstacle.LineSegment:
			x0, y0 := m.project(o.Start())
			x1, y1 := m.project(o.End())
			m.canvas.Line(x0, y0, x1, y1)
		}
	}

	for i := 0; i < m.sim.Len(); i++ {
		x, y := m.project(m.sim.Position(i))
		r := int(math.Round(m.sim.Radius(i) * m.scale))
		if r <= 0 {
			m.canvas.Set(x, y)
			continue
		}
		m.canvas.FillCircle(x, y, r)
	}
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = fmt.Sprintf("ERROR: %v", m.err)
	case m.finished:
		status = "FINISHED"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Balls") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Len())) + "\n")
	s.WriteString(labelStyle.Render("Ball-ball") + valueStyle.Render(fmt.Sprintf("%d", m.sim.BallBallCollisions())) + "\n")
	s.WriteString(labelStyle.Render("Ball-obst") + valueStyle.Render(fmt.Sprintf("%d", m.sim.BallObstacleCollisions())) + "\n")

	next := m.sim.NextCollision()
	if math.IsInf(next.Time, 1) {
		s.WriteString(labelStyle.Render("Next") + valueStyle.Render("none") + "\n")
	} else {
		s.WriteString(labelStyle.Render("Next") + valueStyle.Render(fmt.Sprintf("t=%.3f", next.Time)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause  +/-:Zoom  F:Fit  Q:Quit"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
