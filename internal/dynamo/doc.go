// Package dynamo provides the primitives shared by the solver and its tooling.
//
// The package defines the arithmetic substrate and error vocabulary:
//
//   - [Vec2]: 2D float64 vector with the usual arithmetic
//   - [RGBA]: render-only color carried by entities and boundaries
//   - Sentinel errors and [SimulationError] for headless runs
//
// # Example
//
//	a := dynamo.Vec2{X: 3, Y: 4}
//	n, ok := a.Normalize() // (0.6, 0.8), true
//
// Values are plain structs passed by value; nothing in this package holds
// shared state.
package dynamo
