// Package physics implements the position-based core of the particle toy.
//
// A [Store] holds circular bodies whose velocity is implicit in the
// difference between their current and previous positions. Each frame the
// [Solver] runs a fixed number of sub-steps, and every sub-step applies, in
// order:
//
//   - [Gravity]: either [Uniform] (accumulates acceleration) or
//     [CenterSeeking] (nudges position directly)
//   - [Boundary]: [Circle] or [Rect] positional clamp
//   - [ResolveCollisions]: all-pairs overlap correction
//   - [Integrate]: Verlet position update, clears acceleration
//
// # Example
//
//	store := physics.NewStore()
//	store.Spawn(physics.SpawnRequest{Position: r2.Vec{X: 960, Y: 200}, Radius: 10})
//	solver := physics.NewSolver(store)
//	_ = solver.Advance(1.0/60/8, 8, settings)
//
// # Thread Safety
//
// Nothing in this package locks. A Store must only be mutated (including
// spawning) between Advance calls, by a single goroutine.
package physics
