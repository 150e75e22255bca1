package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"github.com/NotAF0e/Gravitonic/internal/config"
	"github.com/NotAF0e/Gravitonic/internal/sim"
)

var presetInfo = map[string]string{
	"original": "screen box, earth gravity",
	"arena":    "circular arena",
	"vortex":   "centre gravity swirl",
	"rain":     "capped downpour",
}

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// Menu picks a preset and then hands every message to the live model.
type Menu struct {
	cursor  int
	presets []string
	started bool
	live    Model
	log     logr.Logger
	fps     int
	theme   string
	err     error
	// last window size seen before start
	width, height int
}

func NewMenu(log logr.Logger, fps int, theme string) *Menu {
	return &Menu{
		presets: config.ListPresets(),
		log:     log,
		fps:     fps,
		theme:   theme,
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.started {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	var key tea.KeyMsg
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		key = msg
	default:
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

// start builds a runner for the selected preset. Interactive runs spawn from
// the mouse only, so the emitter is switched off.
func (m Menu) start() (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(m.presets[m.cursor])
	cfg.Spawn.Rate = 0
	runner, err := sim.New(cfg, sim.WithLogger(m.log))
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(runner, cfg, m.fps).WithTheme(m.theme)
	if m.width > 0 {
		m.live.resize(m.width, m.height)
	}
	m.started = true
	return m, m.live.Init()
}

func (m Menu) View() string {
	if m.started {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("GRAVITONIC") + "\n    " + menuSub.Render("verlet particle toy") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSub.Render(" navigate  ") + menuKey.Render("enter") + menuSub.Render(" start  ") + menuKey.Render("q") + menuSub.Render(" quit") + "\n")
	return b.String()
}

func RunMenu(log logr.Logger, fps int, theme string) error {
	_, err := tea.NewProgram(NewMenu(log, fps, theme), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
