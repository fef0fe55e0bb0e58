// Package physics provides the body store and collision resolvers for the
// billiards table.
//
//   - [Table]: owns the fixed array of bodies for a run (the body store)
//   - [Walls]: reflects bodies off the four surface edges
//   - [Pairwise]: elastic ball-ball response with overlap separation
//
// Both resolvers implement [dynamo.Resolver] and mutate bodies in place.
// Radius stands in for mass; there is no separate mass attribute.
//
// # Ordering
//
// Pairs are visited in ascending index order (i, j > i). A body may collide
// with several partners in one tick; each resolution sees the velocities and
// positions left by the previous one, so the result is order-dependent and
// not energy-exact for multi-body contacts.
package physics
