// Package dynamo provides the batched integration engine for forcebox.
//
// The package owns the simulation data model and the per-step pipeline:
//
//   - [Body]: identity and initial conditions of one simulated object
//   - [State]: lockstep arrays holding the live kinematic state of all bodies
//   - [Force]: policy that adds to the acceleration arrays each step
//   - [InputRouter]: source of transient forces activated by held buttons
//   - [Controller]: owns the state, the forces and the routers and advances
//     everything by one step at a time
//
// # Example
//
//	ctrl := dynamo.NewController(dynamo.DefaultConfig(), nil)
//	box := dynamo.NewBody(20, 20, 0, 0, 1)
//	if err := ctrl.Register(box); err != nil {
//	    return err
//	}
//	ctrl.AddForce(physics.NewGravity(-9.8))
//	for frame := 0; frame < 60; frame++ {
//	    _ = ctrl.StepDt(1.0/60, held)
//	    x, y := box.Position()
//	    draw(x, y)
//	}
//
// # Step ordering
//
// Each step resolves velocity signs, polls routers, applies continuous then
// transient forces, integrates velocity, truncates near-zero velocity
// components and only then integrates position (semi-implicit Euler).
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. A host must serialize every call
// into Step and must not read state while a step is in progress.
package dynamo
