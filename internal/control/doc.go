// Package control maps user input to forces.
//
// A [Router] implements [dynamo.InputRouter]: it owns an ordered list of
// [Binding] values, each pairing a [Trigger] (one button, or any of several)
// with a force, and it is scoped to exactly one body. Every step the
// controller polls the router with the host's held predicate and applies the
// returned forces once.
//
// Hosts that cannot observe key-down state use a [HoldTracker]; headless runs
// replay a [Script] of timed holds.
//
//	up := physics.NewControlForce(0, -70)
//	brake := physics.NewBrakeForce(140)
//	r, err := control.NewRouter(box,
//	    control.Bind(control.Key("w"), up),
//	    control.Bind(control.AnyOf("lshift", "rshift"), brake),
//	)
//	if err != nil {
//	    return err
//	}
//	ctrl.AddRouter(r)
package control
