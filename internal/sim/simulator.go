package sim

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/billiards/internal/config"
	"github.com/san-kum/billiards/internal/control"
	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/integrators"
	"github.com/san-kum/billiards/internal/physics"
)

// Simulator owns the body store for a run and advances it one tick at a
// time. It is the only handle the presentation layer holds: input arrives
// through the Pointer* methods, frames leave through Snapshot.
type Simulator struct {
	table      *physics.Table
	integrator dynamo.Integrator
	pointer    *control.Pointer
	resolvers  []dynamo.Resolver
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	tick       int
	seed       int64
	logger     *log.Logger
}

// New assembles a simulator. Resolvers run in the given order after the
// integrator on every tick.
func New(table *physics.Table, integrator dynamo.Integrator, pointer *control.Pointer, resolvers ...dynamo.Resolver) *Simulator {
	return &Simulator{
		table:      table,
		integrator: integrator,
		pointer:    pointer,
		resolvers:  resolvers,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     log.New(io.Discard),
	}
}

// FromConfig validates cfg and builds a populated table with the standard
// tick pipeline: friction and motion, walls, then ball-ball contacts. A
// zero seed is replaced with a time based one.
func FromConfig(cfg *config.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	bodies := physics.Scatter(rnd, cfg.Width, cfg.Height, cfg.BallCount, cfg.MinRadius, cfg.MaxRadius, cfg.Colors)
	table := physics.NewTable(cfg.Width, cfg.Height, bodies)
	table.SetPalette(cfg.Colors)

	s := New(table,
		integrators.NewDampedEuler(cfg.Friction),
		control.NewPointer(cfg.PushForce),
		physics.NewWalls(cfg.Width, cfg.Height, cfg.Restitution),
		physics.NewPairwise(),
	)
	s.seed = seed
	return s, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *log.Logger)       { s.logger = l }

// RemoveObserver detaches o. Observers not registered are ignored.
func (s *Simulator) RemoveObserver(o dynamo.Observer) {
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Simulator) Table() *physics.Table     { return s.table }
func (s *Simulator) Pointer() *control.Pointer { return s.pointer }
func (s *Simulator) Ticks() int                { return s.tick }
func (s *Simulator) Seed() int64               { return s.seed }

// Tick advances the table by one step.
func (s *Simulator) Tick() {
	bodies := s.table.Bodies()
	s.integrator.Step(bodies)
	for _, r := range s.resolvers {
		r.Resolve(bodies)
	}
	s.tick++
}

// Snapshot appends the current frame to dst.
func (s *Simulator) Snapshot(dst []dynamo.Snapshot) []dynamo.Snapshot {
	return s.table.Snapshot(dst)
}

func (s *Simulator) PointerDown(x, y float64) {
	s.pointer.Handle(s.table, control.Event{Kind: control.Down, Pos: dynamo.Vec2{X: x, Y: y}})
}

func (s *Simulator) PointerMove(x, y float64) {
	s.pointer.Handle(s.table, control.Event{Kind: control.Move, Pos: dynamo.Vec2{X: x, Y: y}})
}

func (s *Simulator) PointerUp() {
	s.pointer.Handle(s.table, control.Event{Kind: control.Up})
}

// PointerClick hit-tests a press and release at the same point. It returns
// the body the collaborator should offer a color choice for.
func (s *Simulator) PointerClick(x, y float64) (int, bool) {
	i := s.table.HitTest(dynamo.Vec2{X: x, Y: y})
	return i, i >= 0
}

func (s *Simulator) SetBodyColor(i int, color string) error {
	return s.table.SetColor(i, color)
}

// Run advances cfg.Ticks ticks, feeding metrics and observers after each
// one. It stops early on context cancellation or, with ValidateState, on
// the first NaN/Inf body.
func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	result := &dynamo.Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run starting", "ticks", cfg.Ticks, "bodies", s.table.Len(), "seed", s.seed)

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Tick()
		bodies := s.table.Bodies()

		if cfg.ValidateState {
			if idx := firstInvalid(bodies); idx >= 0 {
				err := &dynamo.SimulationError{Tick: s.tick, Body: idx, Wrapped: dynamo.ErrUnstable}
				s.logger.Warn("stopping on unstable state", "tick", s.tick, "body", idx)
				result.Errors = append(result.Errors, err)
				break
			}
		}

		for _, m := range s.metrics {
			m.Observe(s.tick, bodies)
		}
		for _, obs := range s.observers {
			obs.OnTick(s.tick, bodies)
		}
		result.Ticks++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.Snapshot(nil)

	s.logger.Debug("run finished", "ticks", result.Ticks, "errors", len(result.Errors))
	return result, nil
}

// RunWithCallback ticks until callback returns false, the tick budget is
// spent, or ctx is done. The callback sees the table before each tick.
func (s *Simulator) RunWithCallback(ctx context.Context, ticks int, callback func(tick int, bodies []dynamo.Body) bool) error {
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.tick, s.table.Bodies()) {
			return nil
		}
		s.Tick()
	}
	return nil
}

func firstInvalid(bodies []dynamo.Body) int {
	for i := range bodies {
		if !bodies[i].IsValid() {
			return i
		}
	}
	return -1
}
