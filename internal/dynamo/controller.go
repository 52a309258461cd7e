package dynamo

import (
	"fmt"
	"math"
	"time"
)

// Controller owns the state arrays of all registered bodies together with
// the continuous forces and input routers acting on them.
type Controller struct {
	cfg   Config
	clock Clock

	bodies  []*Body
	state   *State
	forces  []Force
	routers []InputRouter

	pending []Force
	acted   []Force

	last    time.Time
	lastDt  float64
	elapsed float64
	steps   int
}

// NewController creates an empty controller. A nil clock selects SystemClock.
// The first self-timed step measures dt against the construction time.
func NewController(cfg Config, clock Clock) *Controller {
	if clock == nil {
		clock = SystemClock
	}
	if cfg.Truncate < 0 || math.IsNaN(cfg.Truncate) {
		cfg.Truncate = DefaultTruncate
	}
	return &Controller{
		cfg:   cfg,
		clock: clock,
		state: newState(0, cfg.Truncate),
		last:  clock.Now(),
	}
}

// Register assigns slots to bodies in order and loads their initial
// conditions. It may be called again to replace the body set until the
// first step or the first router binding.
func (c *Controller) Register(bodies ...*Body) error {
	if c.steps > 0 {
		return fmt.Errorf("%w: cannot register bodies after stepping has begun", ErrConfiguration)
	}
	if len(c.routers) > 0 {
		return fmt.Errorf("%w: cannot register bodies after routers are bound", ErrConfiguration)
	}
	seen := make(map[*Body]bool, len(bodies))
	for i, b := range bodies {
		if b == nil {
			return fmt.Errorf("%w: body %d is nil", ErrConfiguration, i)
		}
		if seen[b] {
			return fmt.Errorf("%w: body %d registered twice", ErrConfiguration, i)
		}
		seen[b] = true
		if b.owner != nil && b.owner != c {
			return fmt.Errorf("%w: body %d belongs to another controller", ErrConfiguration, i)
		}
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("%w: body %d has non-positive mass %g", ErrConfiguration, i, b.Mass)
		}
		for _, v := range []float64{b.X0, b.Y0, b.VX0, b.VY0} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: body %d has a non-finite initial condition", ErrConfiguration, i)
			}
		}
	}

	for _, b := range c.bodies {
		b.detach()
	}

	n := len(bodies)
	s := newState(n, c.cfg.Truncate)
	for i, b := range bodies {
		b.attach(c, i)
		s.Mass[i] = b.Mass
		s.X[i] = b.X0
		s.Y[i] = b.Y0
		s.VX[i] = b.VX0
		s.VY[i] = b.VY0
	}
	s.resolveSigns()

	c.bodies = append([]*Body(nil), bodies...)
	c.state = s
	return nil
}

// AddForce registers a continuous force, applied every step in
// registration order.
func (c *Controller) AddForce(f Force) {
	if f == nil {
		return
	}
	c.forces = append(c.forces, f)
}

// AddRouter registers an input router. The router's body must be registered
// with this controller.
func (c *Controller) AddRouter(r InputRouter) error {
	if r == nil {
		return fmt.Errorf("%w: nil router", ErrBinding)
	}
	b := r.Body()
	if b == nil || b.owner != c || b.slot < 0 || b.slot >= c.state.Len() {
		return fmt.Errorf("%w: router body is not registered with this controller", ErrBinding)
	}
	c.routers = append(c.routers, r)
	return nil
}

// Step advances the simulation by the wall-clock time elapsed since the
// previous step.
func (c *Controller) Step(held HeldFunc) error {
	now := c.clock.Now()
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return c.step(dt, held)
}

// Resync restarts the wall-clock measurement, so the next Step does not
// include time spent paused.
func (c *Controller) Resync() {
	c.last = c.clock.Now()
}

// StepDt advances the simulation by a fixed dt in seconds.
func (c *Controller) StepDt(dt float64, held HeldFunc) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %g", ErrTimestep, dt)
	}
	c.last = c.clock.Now()
	return c.step(dt, held)
}

func (c *Controller) step(dt float64, held HeldFunc) error {
	if c.state.Len() == 0 {
		return fmt.Errorf("%w: no bodies registered", ErrConfiguration)
	}
	if held == nil {
		held = func(Button) bool { return false }
	}
	s := c.state

	c.acted = nil
	s.resolveSigns()

	for _, r := range c.routers {
		c.pending = append(c.pending, r.Poll(held)...)
	}

	for _, f := range c.forces {
		f.Act(s)
	}
	for _, f := range c.pending {
		f.Act(s)
	}
	c.acted = c.pending
	c.pending = nil

	s.integrateVelocity(dt)
	s.truncate()
	s.integratePosition(dt)
	s.clearAccelerations()

	c.lastDt = dt
	c.elapsed += dt
	c.steps++
	return nil
}

func (c *Controller) Len() int { return c.state.Len() }

// Bodies returns the registered bodies in slot order.
func (c *Controller) Bodies() []*Body { return append([]*Body(nil), c.bodies...) }

func (c *Controller) Forces() []Force { return append([]Force(nil), c.forces...) }

func (c *Controller) Routers() []InputRouter { return append([]InputRouter(nil), c.routers...) }

// Steps returns the number of completed steps.
func (c *Controller) Steps() int { return c.steps }

// Elapsed returns the simulated time accumulated over all steps.
func (c *Controller) Elapsed() float64 { return c.elapsed }

// LastDt returns the dt used by the most recent step.
func (c *Controller) LastDt() float64 { return c.lastDt }

func (c *Controller) Truncate() float64 { return c.cfg.Truncate }

func (c *Controller) checkSlot(slot int) error {
	if slot < 0 || slot >= c.state.Len() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSlotRange, slot, c.state.Len())
	}
	return nil
}

func (c *Controller) Position(slot int) (x, y float64, err error) {
	if err = c.checkSlot(slot); err != nil {
		return 0, 0, err
	}
	return c.state.X[slot], c.state.Y[slot], nil
}

func (c *Controller) Velocity(slot int) (vx, vy float64, err error) {
	if err = c.checkSlot(slot); err != nil {
		return 0, 0, err
	}
	return c.state.VX[slot], c.state.VY[slot], nil
}

// LastAcceleration returns the acceleration applied to slot during the
// last completed step.
func (c *Controller) LastAcceleration(slot int) (ax, ay float64, err error) {
	if err = c.checkSlot(slot); err != nil {
		return 0, 0, err
	}
	return c.state.PrevAX[slot], c.state.PrevAY[slot], nil
}

// Signs returns the velocity signs resolved at the start of the last step.
func (c *Controller) Signs(slot int) (sx, sy float64, err error) {
	if err = c.checkSlot(slot); err != nil {
		return 0, 0, err
	}
	return c.state.SignVX[slot], c.state.SignVY[slot], nil
}

// ActedTransientForces describes the transient forces applied during the
// last step, in application order.
func (c *Controller) ActedTransientForces() []ForceDescriptor {
	out := make([]ForceDescriptor, len(c.acted))
	for i, f := range c.acted {
		out[i] = Describe(f)
	}
	return out
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Frame {
	return c.state.frame(c.elapsed)
}
