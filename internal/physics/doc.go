// Package physics provides the forces that act on a [dynamo.Controller].
//
// Each force implements [dynamo.Force], adding to the acceleration arrays of
// the shared [dynamo.State]:
//
//   - [ConstantField]: uniform acceleration such as gravity
//   - [Drag]: quadratic air resistance against the direction of motion
//   - [ControlForce]: fixed push, usually bound to a button
//   - [BrakeForce]: constant deceleration that snaps slow bodies to rest
//
// [ControlForce] and [BrakeForce] implement [dynamo.Gated]; an input router
// narrows their mask to the single body it controls. Every force implements
// [dynamo.Configurable] for live tuning and [dynamo.Describer] for debug
// overlays.
//
//	ctrl.AddForce(physics.NewGravity(physics.DefaultGravity))
//	ctrl.AddForce(physics.NewDrag(physics.DefaultRho))
package physics
