package metrics

import (
	"math"

	"github.com/san-kum/billiards/internal/dynamo"
	"github.com/san-kum/billiards/internal/physics"
)

// Overlap tracks the worst residual ball-ball penetration seen at the end
// of any tick.
type Overlap struct {
	name  string
	worst float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "max_overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(tick int, bodies []dynamo.Body) {
	o.worst = math.Max(o.worst, physics.Overlap(bodies))
}

func (o *Overlap) Value() float64 { return o.worst }
func (o *Overlap) Reset()         { o.worst = 0 }

// Containment tracks the deepest wall penetration seen at the end of any
// tick.
type Containment struct {
	name  string
	walls *physics.Walls
	worst float64
}

func NewContainment(walls *physics.Walls) *Containment {
	return &Containment{name: "max_wall_penetration", walls: walls}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(tick int, bodies []dynamo.Body) {
	for i := range bodies {
		c.worst = math.Max(c.worst, c.walls.Penetration(&bodies[i]))
	}
}

func (c *Containment) Value() float64 { return c.worst }
func (c *Containment) Reset()         { c.worst = 0 }

// Defaults returns a fresh set of the standard metrics for a surface.
func Defaults(width, height float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(),
		NewEnergyDecay(),
		NewOverlap(),
		NewContainment(physics.NewWalls(width, height, 0)),
	}
}
