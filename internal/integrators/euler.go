package integrators

import "github.com/san-kum/billiards/internal/dynamo"

// DampedEuler applies exponential friction decay to each body's velocity and
// then advances its position by one tick of that velocity.
type DampedEuler struct {
	Friction float64
}

func NewDampedEuler(friction float64) *DampedEuler {
	return &DampedEuler{Friction: friction}
}

func (e *DampedEuler) Step(bodies []dynamo.Body) {
	for i := range bodies {
		b := &bodies[i]
		b.Vel.X *= e.Friction
		b.Vel.Y *= e.Friction
		b.Pos.X += b.Vel.X
		b.Pos.Y += b.Vel.Y
	}
}
