// Package swarm provides the particle-attractor simulation model.
//
// The package defines the state and the per-frame contract of a swarm of
// point particles pulled toward a moving target:
//
//   - [Particle]: position and velocity of one point
//   - [Store]: fixed-length, index-stable collection of particles
//   - [Attractor]: the moving target, written by pointer input
//   - [Integrator]: advances every particle one step
//   - [Presenter]: draws one batch of points per frame
//   - [Driver]: owns the above and runs one tick at a time
//
// # Example
//
//	store := swarm.NewStore(2000, bounds, rand.New(rand.NewSource(1)))
//	d := swarm.NewDriver(store, swarm.NewAttractor(400, 300), integ, params, presenter)
//	d.PointerMoved(mx, my)
//	d.Tick(dt)
//
// # Thread Safety
//
// A Driver and everything it owns are meant to be used from a single
// goroutine. Independent simulations may run concurrently.
package swarm
