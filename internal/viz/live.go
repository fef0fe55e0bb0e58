package viz

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/billiards/internal/config"
	"github.com/san-kum/billiards/internal/control"
	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/metrics"
	"github.com/san-kum/billiards/internal/sim"
)

const (
	defaultCols   = 80
	defaultRows   = 24
	headerLines   = 1
	chromeLines   = 3
	energySamples = 120
)

type TickMsg time.Time

// Model is the live table. It owns nothing but the simulator handle and the
// drawing buffers.
type Model struct {
	cfg    *config.Config
	sim    *sim.Simulator
	logger *log.Logger

	canvas *Canvas
	frame  []dynamo.Snapshot
	scale  float64 // sub-pixels per surface unit

	running bool
	pressed bool
	dragged bool
	pressAt [2]int
	aim     dynamo.Vec2

	picker int
	notice string
	energy []float64
}

// NewModel wraps s for display. cfg supplies the frame rate and is used to
// re-rack the table.
func NewModel(s *sim.Simulator, cfg *config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		cfg:     cfg,
		sim:     s,
		logger:  logger,
		running: true,
		picker:  -1,
		energy:  make([]float64, 0, energySamples),
	}
	m.resize(defaultCols, defaultRows)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	fps := max(m.cfg.FPS, 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "n":
		if !m.running {
			m.step()
			m.draw()
		}
	case "r":
		m.reset()
	case "t":
		NextTheme()
	case "esc":
		m.picker = -1
	default:
		if m.picker >= 0 && len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.recolor(key)
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := m.surfacePoint(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pressed = true
		m.dragged = false
		m.pressAt = [2]int{msg.X, msg.Y}
		m.aim = dynamo.Vec2{X: x, Y: y}
		m.sim.PointerDown(x, y)
	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		if msg.X != m.pressAt[0] || msg.Y != m.pressAt[1] {
			m.dragged = true
		}
		m.aim = dynamo.Vec2{X: x, Y: y}
		m.sim.PointerMove(x, y)
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.sim.PointerUp()
		if m.dragged {
			return
		}
		if i, ok := m.sim.PointerClick(x, y); ok {
			m.picker = i
			m.notice = ""
		} else {
			m.picker = -1
		}
	}
}

// recolor applies palette entry key (1-9, then 0 for the tenth) to the
// body under the picker.
func (m *Model) recolor(key string) {
	n, _ := strconv.Atoi(key)
	idx := (n + 9) % 10
	palette := m.sim.Table().Palette()
	if idx >= len(palette) {
		return
	}
	if err := m.sim.SetBodyColor(m.picker, palette[idx]); err != nil {
		m.logger.Warn("recolor failed", "body", m.picker, "err", err)
		m.notice = err.Error()
		return
	}
	m.logger.Debug("recolored", "body", m.picker, "color", palette[idx])
	m.picker = -1
}

func (m *Model) step() {
	m.sim.Tick()
	if len(m.energy) == energySamples {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:energySamples-1]
	}
	m.energy = append(m.energy, metrics.Kinetic(m.sim.Table().Bodies()))
}

func (m *Model) reset() {
	s, err := sim.FromConfig(m.cfg)
	if err != nil {
		m.logger.Error("re-rack failed", "err", err)
		m.notice = err.Error()
		return
	}
	s.SetLogger(m.logger)
	m.sim = s
	m.picker = -1
	m.pressed = false
	m.energy = m.energy[:0]
	m.logger.Debug("re-racked", "seed", s.Seed())
	m.draw()
}

// resize fits the table into the terminal keeping its aspect ratio. A
// braille sub-pixel is roughly square, so one scale serves both axes.
func (m *Model) resize(w, h int) {
	w = max(w, 1)
	h = max(h-chromeLines, 1)
	tw, th := m.sim.Table().Width, m.sim.Table().Height
	m.scale = min(float64(w*2)/tw, float64(h*4)/th)
	cols := max(int(tw*m.scale/2), 1)
	rows := max(int(th*m.scale/4), 1)
	m.canvas = NewCanvas(cols, rows)
	m.draw()
}

// surfacePoint maps a terminal cell to surface coordinates at the cell's
// center.
func (m *Model) surfacePoint(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) * 2 / m.scale
	y := (float64(row-headerLines) + 0.5) * 4 / m.scale
	return x, y
}

// cellAt is the inverse of surfacePoint.
func (m *Model) cellAt(x, y float64) (int, int) {
	return int(x * m.scale / 2), int(y*m.scale/4) + headerLines
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.frame = m.sim.Snapshot(m.frame)
	for _, b := range m.frame {
		r := b.Radius * m.scale
		m.canvas.FillCircle(b.X*m.scale, b.Y*m.scale, r, r, b.Color)
	}

	p := m.sim.Pointer()
	if p.State() != control.Steering {
		return
	}
	if i, ok := p.Selected(); ok {
		if b := m.sim.Table().Body(i); b != nil {
			m.canvas.DrawLine(
				int(b.Pos.X*m.scale), int(b.Pos.Y*m.scale),
				int(m.aim.X*m.scale), int(m.aim.Y*m.scale),
				string(CurrentTheme.Aim),
			)
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("BILLIARDS"))
	b.WriteString(Subtle.Render(fmt.Sprintf("  %.0fx%.0f  seed %d  theme %s",
		m.sim.Table().Width, m.sim.Table().Height, m.sim.Seed(), CurrentTheme.Name)))
	b.WriteByte('\n')

	b.WriteString(m.canvas.Render(CurrentTheme.Felt))
	b.WriteByte('\n')

	if m.picker >= 0 {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("ball %d ", m.picker)))
		for i, c := range m.sim.Table().Palette() {
			if i >= 10 {
				break
			}
			b.WriteString(Swatch(strconv.Itoa((i+1)%10), c) + " ")
		}
		b.WriteString(Hints("esc", "cancel"))
	} else {
		b.WriteString(Hints("drag", "steer", "click", "color", "space", "pause", "n", "step", "r", "rack", "t", "theme", "q", "quit"))
	}
	b.WriteByte('\n')

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.sim.Pointer().State() == control.Steering:
		status = StatusSteering.Render("STEERING")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	ke := 0.0
	if len(m.energy) > 0 {
		ke = m.energy[len(m.energy)-1]
	}
	b.WriteString(status)
	b.WriteString(MetricLabel.Render("  tick ") + MetricValue.Render(strconv.Itoa(m.sim.Ticks())))
	b.WriteString(MetricLabel.Render("  balls ") + MetricValue.Render(strconv.Itoa(m.sim.Table().Len())))
	b.WriteString(MetricLabel.Render("  KE ") + MetricValue.Render(fmt.Sprintf("%.1f", ke)) + " ")
	b.WriteString(SparklineChart(m.energy, 30))
	if m.notice != "" {
		b.WriteString("  " + StatusPaused.Render(m.notice))
	}

	return b.String()
}

// Run starts the live table for cfg in the alternate screen with mouse
// motion reporting enabled.
func Run(cfg *config.Config, logger *log.Logger) error {
	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	if logger != nil {
		s.SetLogger(logger)
	}
	p := tea.NewProgram(NewModel(s, cfg, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
