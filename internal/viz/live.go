package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/balls/internal/metrics"
	"github.com/san-kum/balls/internal/physics"
	"github.com/san-kum/balls/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	maxSpeed        = 16
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live terminal view of one simulation.
type Model struct {
	sim     *sim.Simulator
	initial physics.Population
	name    string
	dt, t   float64
	speed   int
	running bool

	canvas *Canvas
	theme  Theme
	styles Styles

	pool     *sim.FramePool
	history  [][]float64
	times    []float64
	energy   []float64
	playHead int
	showHelp bool
}

// NewModel takes ownership of s; the population it holds at this point is
// what reset returns to.
func NewModel(s *sim.Simulator, name string, dt float64) Model {
	pop := s.Population()
	return Model{
		sim:      s,
		initial:  pop.Clone(),
		name:     name,
		dt:       dt,
		speed:    1,
		running:  true,
		canvas:   NewCanvas(width, height),
		theme:    Themes[0],
		styles:   NewStyles(Themes[0]),
		pool:     sim.NewFramePool(len(pop)),
		history:  make([][]float64, 0, historyCapacity),
		times:    make([]float64, 0, historyCapacity),
		energy:   make([]float64, 0, historyCapacity),
		playHead: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				for range m.speed {
					m.step()
				}
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Step(m.dt)
	m.t += m.dt

	pop := m.sim.Population()
	m.record(pop.Positions(m.pool.Get()), metrics.Kinetic(pop))
}

func (m *Model) record(frame []float64, energy float64) {
	if len(m.history) == historyCapacity {
		m.pool.Put(m.history[0])
		m.history = append(m.history[:0], m.history[1:]...)
		m.times = append(m.times[:0], m.times[1:]...)
		m.energy = append(m.energy[:0], m.energy[1:]...)
		if m.playHead > 0 {
			m.playHead--
		}
	}
	m.history = append(m.history, frame)
	m.times = append(m.times, m.t)
	m.energy = append(m.energy, energy)
}

// scrub moves the replay head through recorded frames. Moving past the
// newest frame returns to live.
func (m *Model) scrub(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.playHead == -1 {
		if dir > 0 {
			return
		}
		m.playHead = len(m.history) - 1
		return
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	pop := m.sim.Population()
	copy(pop, m.initial)
	for _, f := range m.history {
		m.pool.Put(f)
	}
	m.history = m.history[:0]
	m.times = m.times[:0]
	m.energy = m.energy[:0]
	m.t = 0
	m.playHead = -1
}

// Time is the simulated time of the live population.
func (m Model) Time() float64 { return m.t }

func (m Model) Running() bool { return m.running }

func (m Model) Speed() int { return m.speed }

func (m Model) History() int { return len(m.history) }

// shown returns the frame on screen and its time: the history entry under
// the play head during replay, the live population otherwise.
func (m Model) shown() ([]float64, float64, bool) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead], m.times[m.playHead], true
	}
	return m.sim.Population().Positions(nil), m.t, false
}

// Overlaps counts overlapping pairs in the frame on screen.
func (m Model) Overlaps() (int, float64) {
	frame, _, _ := m.shown()
	return physics.Overlaps(physics.FromFrame(frame, m.sim.Population().Radii()))
}

func (m Model) View() string {
	pop := m.sim.Population()
	boundary := m.sim.Boundary()
	radii := pop.Radii()

	frame, t, replay := m.shown()
	status := m.styles.Good.Render("RUNNING")
	if replay {
		status = m.styles.Warn.Render(fmt.Sprintf("REPLAY (%.1fs)", t-m.t))
	}
	if !m.running {
		status = m.styles.Warn.Render("PAUSED")
	}

	DrawScene(m.canvas, boundary, frame, radii)
	canvasView := m.styles.Canvas.Render(m.canvas.String())

	inside := 0
	for i := 0; 2*i+1 < len(frame); i++ {
		dx, dy := frame[2*i]-boundary.Center.X, frame[2*i+1]-boundary.Center.Y
		if dx*dx+dy*dy <= (boundary.Radius)*(boundary.Radius) {
			inside++
		}
	}
	pairs, depth := m.Overlaps()

	var s strings.Builder
	s.WriteString(m.styles.Header.Render(GradientText(strings.ToUpper(m.name), string(m.theme.Primary), string(m.theme.Accent))) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(m.styles.Graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", t))
	row("Speed", fmt.Sprintf("%dx", m.speed))
	row("Entities", fmt.Sprintf("%d", len(pop)))
	row("Gravity", m.sim.Resolver().Gravity.String())
	row("Overlaps", fmt.Sprintf("%d (max %.3f)", pairs, depth))
	if len(pop) > 0 {
		fraction := float64(inside) / float64(len(pop))
		row("Inside", m.styles.ProgressBar(fraction, 16))
	}
	if len(m.energy) > 0 {
		row("Energy", Sparkline(m.energy, 24))
	}

	s.WriteString(m.styles.Help.Render("SP:Pause R:Reset Q:Quit\n+/-:Speed T:Theme ?:Help\n[ ]:Time-Travel"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.Stats.Render(s.String()))

	if m.showHelp {
		return `
  Space  pause/resume
  R      reset to the spawned population
  + -    double/halve ticks per frame
  [ ]    rewind/forward through the last frames
  T      cycle themes
  Q Esc  quit
` + "\n" + mainView
	}
	return mainView
}

// Run opens the live view and blocks until it is closed.
func Run(s *sim.Simulator, name string, dt float64) error {
	p := tea.NewProgram(NewModel(s, name, dt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
