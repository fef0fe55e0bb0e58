// Package dynamo provides the core value types shared by the billiards
// simulation.
//
// The package defines the body model and the collaborator interfaces the
// stepper is assembled from:
//
//   - [Vec2]: 2D vector in surface coordinates (origin top-left)
//   - [Body]: circular rigid body with position, velocity, radius, color
//   - [Snapshot]: read-only per-frame view of a body for renderers
//   - [Integrator]: advances every body by one tick of motion
//   - [Resolver]: detects and resolves one class of collisions in place
//
// # Example
//
//	table := physics.NewTable(700, 500, bodies)
//	s := sim.New(table, integrators.NewDampedEuler(0.995), control.NewPointer(6),
//		physics.NewWalls(700, 500, 0.9), physics.NewPairwise())
//	s.Tick()
//
// # Thread Safety
//
// Bodies are mutated in place and are NOT safe for concurrent use. A
// simulation is driven by exactly one goroutine; run independent
// simulations in parallel with [sim.Ensemble].
package dynamo
