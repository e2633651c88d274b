package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/metrics"
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	thrustStep      = 0.1
)

type TickMsg time.Time

// LiveModel steps a simulator once per tick and draws what its observer
// sees.
type LiveModel struct {
	sim         *sim.Simulator
	grid        probe.Grid
	arrow       probe.Arrow
	dt          float64
	canvas      *Canvas
	viewport    Viewport
	camera      *Camera
	perspective bool
	running     bool
	showHelp    bool
	theme       Theme
	frame       sim.Frame
	stepped     bool
	history     []float64
	err         error
}

func NewLiveModel(s *sim.Simulator, grid probe.Grid, dt float64) LiveModel {
	return LiveModel{
		sim:      s,
		grid:     grid,
		arrow:    probe.DefaultArrow(),
		dt:       dt,
		canvas:   NewCanvas(width, height),
		viewport: Viewport{Scale: DefaultScale},
		camera:   NewCamera(),
		running:  true,
		theme:    Themes[0],
		history:  make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) WithTheme(name string) LiveModel {
	m.theme = GetTheme(name)
	return m
}

func (m LiveModel) Err() error { return m.err }

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w, h := max(20, msg.Width-52), max(8, msg.Height-4)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m LiveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	viewer := m.sim.Viewer()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.restart(m.sim.Restart())
	case "n":
		m.restart(m.sim.SetPreset(nextPreset(m.sim.Scene().Preset)))
	case "]":
		_, err := m.sim.SetC(m.sim.C() * 1.1)
		m.err = err
	case "[":
		_, err := m.sim.SetC(m.sim.C() / 1.1)
		m.err = err
	case "+", "=":
		m.viewport = m.viewport.ZoomIn()
		m.camera.ZoomIn()
	case "-", "_":
		m.viewport = m.viewport.ZoomOut()
		m.camera.ZoomOut()
	case "m":
		m.perspective = !m.perspective
	case "left":
		m.camera.Rotate(-0.1, 0)
	case "right":
		m.camera.Rotate(0.1, 0)
	case "up":
		m.camera.Rotate(0, 0.1)
	case "down":
		m.camera.Rotate(0, -0.1)
	case "w":
		viewer.Thrust = viewer.Thrust.Add(spacetime.Vec3(0, thrustStep, 0))
	case "s":
		viewer.Thrust = viewer.Thrust.Add(spacetime.Vec3(0, -thrustStep, 0))
	case "a":
		viewer.Thrust = viewer.Thrust.Add(spacetime.Vec3(-thrustStep, 0, 0))
	case "d":
		viewer.Thrust = viewer.Thrust.Add(spacetime.Vec3(thrustStep, 0, 0))
	case "e":
		viewer.Thrust = viewer.Thrust.Add(spacetime.Vec3(0, 0, thrustStep))
	case "x":
		viewer.Thrust = viewer.Thrust.Add(spacetime.Vec3(0, 0, -thrustStep))
	case "0":
		viewer.Thrust = spacetime.Vector3{}
	case "t":
		m.theme = NextTheme(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *LiveModel) restart(err error) {
	m.err = err
	m.stepped = false
	m.history = m.history[:0]
}

func nextPreset(p chargeset.Preset) chargeset.Preset {
	all := chargeset.ListPresets()
	for i, q := range all {
		if q == p {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m *LiveModel) step() {
	f, err := m.sim.Step(m.dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.frame = f
	m.stepped = true
	m.history = append(m.history, metrics.ObserverField(f).Magnitude())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *LiveModel) draw() {
	m.canvas.Clear()
	pic := Capture(m.sim, m.grid, m.arrow)
	if m.perspective {
		DrawPerspective(m.canvas, m.camera, pic)
	} else {
		DrawSlice(m.canvas, m.viewport, pic)
	}
}

func (m LiveModel) status() string {
	switch {
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(m.theme.Error).Render("ERROR")
	case !m.running:
		return lipgloss.NewStyle().Foreground(m.theme.Warning).Render("PAUSED")
	}
	return "RUNNING"
}

func (m LiveModel) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(m.theme.Field).Render(m.canvas.String())

	var s strings.Builder
	preset := m.sim.Scene().Preset
	s.WriteString(GradientText(strings.ToUpper(string(preset)), m.theme.Title, m.theme.Text) + "\n")
	s.WriteString(Subtle.Render(preset.Description()) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("|E| at observer"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.history, 30) + "\n\n")
	}

	viewer := m.sim.Viewer()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("c", fmt.Sprintf("%.3f", m.sim.C()))
	row("ct", fmt.Sprintf("%.2f", viewer.Position().CT))
	row("gamma", fmt.Sprintf("%.3f", viewer.Phase.Gamma()))
	row("thrust", viewer.Thrust.String())
	if m.stepped {
		row("frame", fmt.Sprintf("%d", m.frame.Index))
		row("substeps", fmt.Sprintf("%d", m.frame.SubSteps))
		row("sources", fmt.Sprintf("%d", len(m.frame.Sources)))
	}
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(40) + "\n")
	pos := lipgloss.NewStyle().Foreground(m.theme.Positive)
	neg := lipgloss.NewStyle().Foreground(m.theme.Negative)
	for _, src := range m.sim.Sources() {
		style := pos
		if src.Q < 0 {
			style = neg
		}
		s.WriteString(style.Render(fmt.Sprintf("q=%+.2f gamma=%.3f", src.Q, src.Velocity.Gamma())) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset N:Next Q:Quit\n[ ]:c  WASDEX:Thrust  M:3D  ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart preset           ║
║  N        - Next preset              ║
║  [ / ]    - Lower / raise c          ║
║  W A S D  - Thrust in the x-y plane  ║
║  E / X    - Thrust along z           ║
║  0        - Cut thrust               ║
║  + / -    - Zoom                     ║
║  M        - Toggle 3D view           ║
║  Arrows   - Orbit 3D camera          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func RunLive(m LiveModel) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if lm, ok := final.(LiveModel); ok {
		return lm.Err()
	}
	return nil
}
