// Package physics implements the particle solver.
//
// The solver is made of four parts:
//
//   - [Motion]: position-only Verlet state of one body
//   - [Entity]: a body of fixed radius carrying a [Motion]
//   - [Constraint]: the circular boundary bodies are kept inside
//   - [Resolver]: the per-tick pipeline over a [Population]
//
// # Tick
//
// One call to [Resolver.Update] runs four full passes in order: gravity,
// boundary, pairwise collisions, integration. Collisions are resolved in a
// single in-place pass over pairs (i, j), i < j, in ascending order, so a
// later pair sees positions already corrected by earlier ones.
//
//	pop := physics.Spawn(spawn, rand.New(rand.NewSource(seed)))
//	resolver := physics.NewResolver(dynamo.V(0, 10))
//	resolver.Update(pop, boundary, dt)
//
// The solver never fails: zero-length separation axes fall back to
// [dynamo.UnitX] and populations with fewer than two entities skip the
// collision pass.
package physics
