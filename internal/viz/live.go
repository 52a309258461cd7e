package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/forcebox/internal/control"
	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/experiment"
	"github.com/san-kum/forcebox/internal/metrics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailLength     = 60
)

type TickMsg time.Time

// Builder creates a fresh scene; the live view calls it again on reset.
type Builder func() (*experiment.Scene, error)

type Options struct {
	// Dt fixes the step size. Zero steps by wall-clock time.
	Dt         float64
	HoldWindow time.Duration
	FPS        int
}

// param addresses one tunable value of one force.
type param struct {
	force dynamo.Configurable
	owner string
	key   string
}

// Model steps a scene from keyboard input and draws it on a braille canvas.
type Model struct {
	build        Builder
	opts         Options
	scene        *experiment.Scene
	holds        *control.HoldTracker
	canvas       *Canvas
	view         Viewport
	running      bool
	debug        bool
	showHelp     bool
	trails       [][]struct{ x, y int }
	speedHistory []float64
	energy       []float64
	params       []param
	selected     int
	err          error
}

// NewModel builds the first scene and prepares the canvas.
func NewModel(build Builder, opts Options) (Model, error) {
	if opts.HoldWindow <= 0 {
		opts.HoldWindow = control.DefaultHoldWindow
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	m := Model{
		build:        build,
		opts:         opts,
		canvas:       NewCanvas(width, height),
		running:      true,
		debug:        true,
		speedHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) load() error {
	scene, err := m.build()
	if err != nil {
		return err
	}
	m.scene = scene
	m.holds = control.NewHoldTracker(m.opts.HoldWindow, nil)
	m.view = NewViewport(m.canvas, scene.Screen.Width, scene.Screen.Height)
	m.trails = make([][]struct{ x, y int }, len(scene.Shapes))
	m.speedHistory = m.speedHistory[:0]
	m.energy = m.energy[:0]
	m.params = collectParams(scene)
	if m.selected >= len(m.params) {
		m.selected = 0
	}
	m.err = nil
	return nil
}

func collectParams(scene *experiment.Scene) []param {
	var out []param
	for _, f := range scene.Tunables() {
		c := f.(dynamo.Configurable)
		keys := make([]string, 0)
		for k := range c.GetParams() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, param{force: c, owner: f.Name(), key: k})
		}
	}
	return out
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Scene returns the scene currently being simulated.
func (m Model) Scene() *experiment.Scene { return m.scene }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				m.scene.Controller.Resync()
			}
		case "ctrl+r":
			if err := m.load(); err != nil {
				m.err = err
			}
		case "tab":
			m.cycleParam()
		case "+", "=":
			m.adjustParam(1.1)
		case "-", "_":
			m.adjustParam(0.9)
		case "?":
			m.showHelp = !m.showHelp
		case "ctrl+d":
			m.debug = !m.debug
		default:
			for _, b := range ButtonsForKey(msg.String()) {
				m.holds.Press(b)
			}
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.params) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.params)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.params) == 0 {
		return
	}
	p := m.params[m.selected]
	val := p.force.GetParams()[p.key]
	newVal := val * factor
	if val == 0 {
		newVal = factor - 1
	}
	if err := p.force.SetParam(p.key, newVal); err != nil {
		m.err = err
	}
}

// step advances the physics simulation.
func (m *Model) step() {
	ctrl := m.scene.Controller
	var err error
	if m.opts.Dt > 0 {
		err = ctrl.StepDt(m.opts.Dt, m.holds.Func())
	} else {
		err = ctrl.Step(m.holds.Func())
	}
	if err != nil {
		m.err = err
		return
	}

	f := ctrl.Snapshot()
	m.energy = append(m.energy, metrics.Kinetic(f))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
	speeds := metrics.Speeds(f)
	if len(speeds) > 0 {
		m.speedHistory = append(m.speedHistory, speeds[0])
		if len(m.speedHistory) > historyCapacity {
			m.speedHistory = m.speedHistory[1:]
		}
	}
}

// draw renders every shape with a short trail of its center.
func (m *Model) draw() {
	m.canvas.Clear()
	m.view.Border(m.canvas)
	for i, sh := range m.scene.Shapes {
		x, y := sh.Body.Position()
		m.view.FillBox(m.canvas, x, y, sh.Width, sh.Height)

		cx, cy := m.view.Project(x+sh.Width/2, y+sh.Height/2)
		m.trails[i] = append(m.trails[i], struct{ x, y int }{cx, cy})
		if len(m.trails[i]) > trailLength {
			m.trails[i] = m.trails[i][1:]
		}
		for _, pt := range m.trails[i] {
			m.canvas.Set(pt.x, pt.y)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	ctrl := m.scene.Controller
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scene.Name)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	if len(m.energy) > 0 {
		s.WriteString(labelStyle.Render("Energy") + SparklineChart(m.energy, 30) + "\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", ctrl.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", ctrl.Steps())) + "\n")
	s.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.4f", ctrl.LastDt())) + "\n")

	var held []string
	for _, b := range m.holds.HeldButtons() {
		held = append(held, string(b))
	}
	s.WriteString(labelStyle.Render("Held") + valueStyle.Render(strings.Join(held, " ")) + "\n")

	if m.debug {
		s.WriteString("\n" + m.DebugText())
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.params) > 0 {
		for i, p := range m.params {
			line := fmt.Sprintf("%-14s %-10s %.2f", p.owner, p.key, p.force.GetParams()[p.key])
			if i == m.selected {
				s.WriteString(activeParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause ^R:Reset Esc:Quit\nTab:Param +/-:Tune ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpText(m.scene.Buttons()) + "\n\n" + mainView
	}
	return mainView
}

// DebugText lists the transient forces of the last step as "name: detail"
// followed by each body.
func (m Model) DebugText() string {
	var s strings.Builder
	for _, d := range m.scene.Controller.ActedTransientForces() {
		s.WriteString(d.String() + "\n")
	}
	for _, sh := range m.scene.Shapes {
		s.WriteString(sh.Body.String() + "\n")
	}
	return s.String()
}

func helpText(buttons []dynamo.Button) string {
	names := make([]string, len(buttons))
	for i, b := range buttons {
		names[i] = string(b)
	}
	return `KEYBOARD SHORTCUTS
  Space    - Pause/Resume simulation
  Ctrl+R   - Reset scene
  Esc      - Quit
  Tab      - Cycle parameters
  + / -    - Tune parameter (±10%)
  Ctrl+D   - Toggle debug overlay
  Shift    - Capital letters hold the shift button
  Bound    - ` + strings.Join(names, " ")
}
