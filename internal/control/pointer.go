package control

import "github.com/san-kum/billiards/internal/dynamo"

type State int

const (
	Idle State = iota
	Armed
	Steering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Steering:
		return "steering"
	}
	return "unknown"
}

type EventKind int

const (
	Down EventKind = iota
	Move
	Up
)

// Event is a pointer event in surface coordinates.
type Event struct {
	Kind EventKind
	Pos  dynamo.Vec2
}

// Store is the part of the body store the controller needs.
type Store interface {
	HitTest(p dynamo.Vec2) int
	Body(i int) *dynamo.Body
}

type Pointer struct {
	Force    float64
	state    State
	selected int
}

func NewPointer(force float64) *Pointer {
	return &Pointer{Force: force, selected: -1}
}

func (p *Pointer) State() State { return p.state }

// Selected returns the index of the body being steered.
func (p *Pointer) Selected() (int, bool) {
	return p.selected, p.state == Steering
}

// transition is the pure state table. hit reports whether a Down event
// landed on a body and is ignored for other events.
func transition(s State, kind EventKind, hit bool) State {
	switch kind {
	case Down:
		if s != Idle {
			return s
		}
		if hit {
			return Steering
		}
		return Armed
	case Up:
		return Idle
	}
	return s
}

// Handle applies one event: it advances the state machine and performs the
// transition's side effect on the store.
func (p *Pointer) Handle(store Store, ev Event) {
	hit := -1
	if ev.Kind == Down && p.state == Idle {
		hit = store.HitTest(ev.Pos)
	}

	next := transition(p.state, ev.Kind, hit >= 0)

	switch {
	case p.state == Idle && next == Steering:
		p.selected = hit
	case next == Idle:
		p.selected = -1
	case next == Steering && ev.Kind == Move:
		p.steer(store, ev.Pos)
	}
	p.state = next
}

func (p *Pointer) steer(store Store, target dynamo.Vec2) {
	b := store.Body(p.selected)
	if b == nil {
		return
	}
	b.Vel = dynamo.FromAngle(b.Pos.Angle(target), p.Force)
}

// Reset drops any selection without touching body velocities.
func (p *Pointer) Reset() {
	p.state = Idle
	p.selected = -1
}
