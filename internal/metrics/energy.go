package metrics

import "github.com/san-kum/billiards/internal/dynamo"

// Kinetic returns the total kinetic energy of bodies with radius as mass.
func Kinetic(bodies []dynamo.Body) float64 {
	e := 0.0
	for i := range bodies {
		v := bodies[i].Vel
		e += 0.5 * bodies[i].Radius * v.Dot(v)
	}
	return e
}

// Momentum returns the radius-weighted momentum of bodies.
func Momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Vel.Scale(bodies[i].Radius))
	}
	return p
}

// Energy is the mean kinetic energy over all observed ticks.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(tick int, bodies []dynamo.Body) {
	e.totalEnergy += Kinetic(bodies)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDecay is the fraction of the first observed kinetic energy that has
// been lost by the latest tick.
type EnergyDecay struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyDecay() *EnergyDecay {
	return &EnergyDecay{name: "energy_decay"}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(tick int, bodies []dynamo.Body) {
	energy := Kinetic(bodies)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyDecay) Value() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return 1 - e.currentEnergy/e.initialEnergy
}

func (e *EnergyDecay) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
