package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/metrics"
	"github.com/NotAF0e/Gravitonic/internal/physics"
	"github.com/NotAF0e/Gravitonic/internal/sim"
)

const (
	defaultCols     = 100
	defaultRows     = 30
	statsWidth      = 45
	historyCapacity = 300

	// canvasStyle padding places the canvas this far from the top-left cell.
	canvasLeft = 2
	canvasTop  = 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model renders a runner's store and turns keys and mouse input into
// gravity toggles and spawns. Frames advance on TickMsg only.
type Model struct {
	runner         *sim.Runner
	name           string
	maxBodies      int
	worldW, worldH float64
	canvas         *Canvas
	view           viewport
	fps            int
	running        bool
	showHelp       bool
	theme          int
	pointerDown    bool
	pointer        r2.Vec
	energy         *metrics.KineticEnergy
	countHistory   []float64
	energyHistory  []float64
	contactHistory []float64
	lastTick       time.Time
	frameTime      time.Duration
	measuredFPS    float64
	err            error
}

func NewModel(runner *sim.Runner, cfg *config.Config, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	w, h := cfg.Extent()
	return Model{
		runner:         runner,
		name:           cfg.Name,
		maxBodies:      cfg.Spawn.MaxBodies,
		worldW:         w,
		worldH:         h,
		canvas:         NewCanvas(defaultCols, defaultRows),
		view:           newViewport(w, h, defaultCols, defaultRows),
		fps:            fps,
		running:        true,
		energy:         metrics.NewKineticEnergy(cfg.Dt),
		countHistory:   make([]float64, 0, historyCapacity),
		energyHistory:  make([]float64, 0, historyCapacity),
		contactHistory: make([]float64, 0, historyCapacity),
	}
}

// WithTheme selects the starting theme by name.
func (m Model) WithTheme(name string) Model {
	m.theme = ThemeIndex(name)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "g":
			m.runner.ToggleCenterGravity()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if d := now.Sub(m.lastTick); d > 0 {
				m.measuredFPS = float64(time.Second) / float64(d)
			}
		}
		m.lastTick = now
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// handleMouse tracks the left button. While it is held a body is spawned at
// the pointer every frame; dragging moves the spawn point.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pointerDown = true
	case tea.MouseActionMotion:
		if !m.pointerDown {
			return
		}
	case tea.MouseActionRelease:
		m.pointerDown = false
		return
	}
	m.pointer = m.view.cellToWorld(msg.X-canvasLeft, msg.Y-canvasTop)
}

// resize fits the canvas to the terminal, leaving room for the stats panel.
func (m *Model) resize(width, height int) {
	cols := width - statsWidth - 2*canvasLeft - 2
	rows := height - 2*canvasTop - 1
	if cols < 10 || rows < 5 {
		return
	}
	m.canvas = NewCanvas(cols, rows)
	m.view = newViewport(m.worldW, m.worldH, cols, rows)
}

// step advances one frame and samples the panel series.
func (m *Model) step() {
	if m.pointerDown {
		if err := m.runner.SpawnAround(m.pointer, 1, 0); err != nil {
			m.err = err
			return
		}
	}

	start := time.Now()
	if err := m.runner.Next(); err != nil {
		m.err = err
		return
	}
	m.frameTime = time.Since(start)

	store := m.runner.Store()
	m.energy.Observe(store, m.runner.Frame())
	m.countHistory = appendCapped(m.countHistory, float64(store.Len()))
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Last())
	m.contactHistory = appendCapped(m.contactHistory, float64(m.runner.Contacts()))
}

func appendCapped(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > historyCapacity {
		values = values[1:]
	}
	return values
}

// draw paints the arena outline and every body.
func (m *Model) draw() {
	m.canvas.Clear()

	switch b := m.runner.Settings().Bounds.(type) {
	case physics.Circle:
		x, y := m.view.toCanvas(b.Center)
		m.canvas.DrawCircle(x, y, m.view.length(b.Radius))
	case physics.Rect:
		x0, y0 := m.view.toCanvas(r2.Vec{})
		x1, y1 := m.view.toCanvas(r2.Vec{X: b.Width, Y: b.Height})
		x1, y1 = x1-1, y1-1
		m.canvas.DrawLine(x0, y0, x1, y0)
		m.canvas.DrawLine(x1, y0, x1, y1)
		m.canvas.DrawLine(x1, y1, x0, y1)
		m.canvas.DrawLine(x0, y1, x0, y0)
	}

	m.runner.Store().Each(func(b *physics.Body) {
		x, y := m.view.toCanvas(b.Current)
		m.canvas.FillCircle(x, y, m.view.length(b.Radius))
	})
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	theme := Themes[m.theme]
	st := newPanelStyles(theme)
	m.draw()
	canvasView := canvasStyle.Render(lipgloss.NewStyle().Foreground(theme.Bodies).Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(GradientText("GRAVITONIC "+strings.ToUpper(m.name), theme.Title, theme.Accent) + "\n\n")

	switch {
	case m.err != nil:
		s.WriteString(st.halted.Render("HALTED") + "\n" + st.subtle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(st.running.Render(AnimatedSpinner(m.runner.Frame())+" RUNNING") + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	store := m.runner.Store()
	settings := m.runner.Settings()
	s.WriteString(st.label.Render("NUMBER OF OBJECTS") + st.value.Render(fmt.Sprintf("%d", store.Len())) + "\n")
	if m.maxBodies > 0 {
		s.WriteString(st.label.Render("CAPACITY") + ProgressBar(float64(store.Len())/float64(m.maxBodies), 20) + "\n")
	}
	s.WriteString(st.label.Render("FRAME") + st.value.Render(fmt.Sprintf("%d", m.runner.Frame())) + "\n")
	s.WriteString(st.label.Render("FPS") + st.value.Render(fmt.Sprintf("%.0f", m.measuredFPS)) + "\n")
	s.WriteString(st.label.Render("STEP TIME") + st.value.Render(fmt.Sprintf("%.2fms", float64(m.frameTime.Microseconds())/1000)) + "\n")
	s.WriteString(st.label.Render("GRAVITY") + st.value.Render(settings.GravityModel().Name()) + "\n")
	s.WriteString(st.label.Render("ARENA") + st.value.Render(fmt.Sprint(settings.Bounds)) + "\n")
	s.WriteString(st.label.Render("CONTACTS") + SparklineChart(m.contactHistory, 20) + "\n")

	if len(m.countHistory) > 1 {
		chart := asciigraph.Plot(m.countHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Objects"))
		s.WriteString(graphStyle.Foreground(theme.ChartLine).Render(chart) + "\n")
	}
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Foreground(theme.ChartLine).Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30, st.subtle) + "\n" + st.hint.Render("SP:Pause G:Gravity Q:Quit\nT:Theme  ?:Help  Mouse:Spawn")))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  G        - Toggle centre gravity    ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
║  Mouse    - Hold left button to spawn║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive runs a model full screen with mouse reporting enabled.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
