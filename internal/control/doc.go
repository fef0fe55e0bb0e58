// Package control maps pointer input onto the body store.
//
// [Pointer] is a three-state machine:
//
//	Idle     --down on a body-->  Steering
//	Idle     --down on empty-->   Armed
//	Steering --up-->              Idle
//	Armed    --up-->              Idle
//
// While Steering, every move event overwrites the selected body's velocity
// with a vector of magnitude Force aimed at the pointer. Releasing the
// pointer leaves the last velocity in place.
package control
