// Package automation replays scripted pointer input against a table and
// sweeps configuration parameters.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/billiards/internal/config"
	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/metrics"
	"github.com/san-kum/billiards/internal/sim"
)

var (
	ErrUnknownAction = errors.New("automation: unknown action")
	ErrUnknownParam  = errors.New("automation: unknown parameter")
	ErrEventOrder    = errors.New("automation: events out of order")
)

// Pointer actions a scenario can issue.
const (
	ActionDown  = "down"
	ActionMove  = "move"
	ActionUp    = "up"
	ActionClick = "click"
	ActionColor = "color"
)

// Scenario is a scripted sequence of pointer input.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Ticks       int     `yaml:"ticks"`
	Events      []Event `yaml:"events"`
}

// Event fires once Tick ticks have run; tick 0 fires before the first.
// Color recolors Ball, or the body from the last click when Ball is unset.
type Event struct {
	Tick   int     `yaml:"tick"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Ball   *int    `yaml:"ball,omitempty"`
	Color  string  `yaml:"color,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, scenario.Validate()
}

func (sc *Scenario) Validate() error {
	if sc.Ticks < 0 {
		return fmt.Errorf("%w: ticks must be non-negative, got %d", dynamo.ErrParameterBounds, sc.Ticks)
	}
	last := 0
	for i, ev := range sc.Events {
		switch ev.Action {
		case ActionDown, ActionMove, ActionUp, ActionClick, ActionColor:
		default:
			return fmt.Errorf("event %d: %w: %q", i, ErrUnknownAction, ev.Action)
		}
		if ev.Tick < last {
			return fmt.Errorf("event %d: %w: tick %d after %d", i, ErrEventOrder, ev.Tick, last)
		}
		last = ev.Tick
	}
	return nil
}

// player feeds scenario events to the simulator between ticks.
type player struct {
	sim     *sim.Simulator
	events  []Event
	base    int
	next    int
	clicked int
	errs    []error
}

func (p *player) OnTick(tick int, bodies []dynamo.Body) {
	p.fire(tick - p.base)
}

// fire issues every pending event due by tick, counted from the start of
// the scenario.
func (p *player) fire(tick int) {
	for ; p.next < len(p.events) && p.events[p.next].Tick <= tick; p.next++ {
		ev := p.events[p.next]
		switch ev.Action {
		case ActionDown:
			p.sim.PointerDown(ev.X, ev.Y)
		case ActionMove:
			p.sim.PointerMove(ev.X, ev.Y)
		case ActionUp:
			p.sim.PointerUp()
		case ActionClick:
			p.clicked = -1
			if i, ok := p.sim.PointerClick(ev.X, ev.Y); ok {
				p.clicked = i
			}
		case ActionColor:
			ball := p.clicked
			if ev.Ball != nil {
				ball = *ev.Ball
			}
			if err := p.sim.SetBodyColor(ball, ev.Color); err != nil {
				p.errs = append(p.errs, fmt.Errorf("tick %d: %w", ev.Tick, err))
			}
		}
	}
}

// Play runs sc against s, firing each event between ticks. Event ticks
// count from the simulator's current tick, so a scenario can be played on a
// table that has already run. Recolor failures do not stop the run; they
// are joined into the returned error.
func Play(ctx context.Context, s *sim.Simulator, sc *Scenario) (*dynamo.Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	p := &player{sim: s, events: sc.Events, base: s.Ticks(), clicked: -1}
	p.fire(0)
	s.AddObserver(p)
	defer s.RemoveObserver(p)

	result, err := s.Run(ctx, dynamo.Config{Ticks: sc.Ticks, ValidateState: true})
	if err != nil {
		return result, err
	}
	return result, errors.Join(p.errs...)
}

// ParameterSweep runs one table per value of Param between Min and Max.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
	Ticks int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Value       float64
	Ticks       int
	Steering    float64
	EnergyDecay float64
	MaxOverlap  float64
	Final       float64
}

var setters = map[string]func(*config.Config, float64){
	"friction":    func(c *config.Config, v float64) { c.Friction = v },
	"restitution": func(c *config.Config, v float64) { c.Restitution = v },
	"push_force":  func(c *config.Config, v float64) { c.PushForce = v },
	"max_radius":  func(c *config.Config, v float64) { c.MaxRadius = v },
	"ball_count":  func(c *config.Config, v float64) { c.BallCount = int(v) },
}

// RunSweep executes a parameter sweep. Every run uses base's seed, so the
// racks match and only the swept parameter differs. Ball 0 is pushed
// toward the table center on the first tick so the runs carry energy.
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep) ([]SweepResult, error) {
	set, ok := setters[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, sweep.Param)
	}
	steps := max(sweep.Steps, 1)
	step := 0.0
	if steps > 1 {
		step = (sweep.Max - sweep.Min) / float64(steps-1)
	}

	results := make([]SweepResult, 0, steps)
	for i := 0; i < steps; i++ {
		value := sweep.Min + float64(i)*step

		cfg := base.Clone()
		set(cfg, value)
		s, err := sim.FromConfig(cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}

		decay, overlap := metrics.NewEnergyDecay(), metrics.NewOverlap()
		s.AddMetric(decay)
		s.AddMetric(overlap)

		if b := s.Table().Body(0); b != nil {
			s.PointerDown(b.Pos.X, b.Pos.Y)
			s.PointerMove(cfg.Width/2, cfg.Height/2)
			s.PointerUp()
		}
		steering := metrics.Kinetic(s.Table().Bodies())

		result, err := s.Run(ctx, dynamo.Config{Ticks: sweep.Ticks, ValidateState: true})
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			Value:       value,
			Ticks:       result.Ticks,
			Steering:    steering,
			EnergyDecay: result.Metrics[decay.Name()],
			MaxOverlap:  result.Metrics[overlap.Name()],
			Final:       metrics.Kinetic(s.Table().Bodies()),
		})
	}

	return results, nil
}

// SweepParams lists the parameters RunSweep accepts.
func SweepParams() []string {
	return []string{"ball_count", "friction", "max_radius", "push_force", "restitution"}
}
