package viz

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/billiards/internal/config"
	"github.com/san-kum/billiards/internal/sim"
)

var presetInfo = map[string]string{
	"classic":      "ten balls, default felt",
	"power":        "ten times the push",
	"frictionless": "nothing slows down",
	"crowded":      "forty small balls",
	"single":       "one ball, no friction",
}

const (
	stateMenu = iota
	stateSim
)

// App is the preset menu. Selecting an entry racks a table and hands the
// screen to its live [Model].
type App struct {
	state, cursor int
	presets       []string
	live          Model
	logger        *log.Logger
	width, height int
	err           error
}

func NewApp(logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{presets: config.ListPresets(), logger: logger, width: defaultCols, height: defaultRows}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return a.menuKey(key)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter":
		return a.start()
	}
	return a, nil
}

func (a App) start() (App, tea.Cmd) {
	cfg, err := config.GetPreset(a.presets[a.cursor])
	if err != nil {
		a.err = err
		return a, nil
	}
	s, err := sim.FromConfig(cfg)
	if err != nil {
		a.err = err
		return a, nil
	}
	s.SetLogger(a.logger)
	a.logger.Info("racked table", "preset", a.presets[a.cursor], "balls", cfg.BallCount, "seed", s.Seed())

	a.live = NewModel(s, cfg, a.logger)
	a.live.resize(a.width, a.height)
	a.state = stateSim
	return a, a.live.Init()
}

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + TitleStyle.Render("BILLIARDS") + "\n    " + Subtle.Render("elastic collisions on felt") + "\n    " + Subtle.Render("──────────────────────────") + "\n\n")
	for i, name := range a.presets {
		desc := presetInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", TitleStyle.Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-14s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-14s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + StatusSteering.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + Hints("j/k", "navigate", "enter", "rack", "q", "quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu and then the chosen table.
func RunInteractive(logger *log.Logger) error {
	_, err := tea.NewProgram(NewApp(logger), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
