package dynamo

import "fmt"

// Body is the identity and initial-condition record of one simulated object.
// Live state is read through the owning controller at the body's slot.
type Body struct {
	X0, Y0   float64
	VX0, VY0 float64
	Mass     float64

	slot  int
	owner *Controller
}

func NewBody(x, y, vx, vy, mass float64) *Body {
	return &Body{X0: x, Y0: y, VX0: vx, VY0: vy, Mass: mass, slot: -1}
}

// Slot returns the index assigned at registration, or -1.
func (b *Body) Slot() int { return b.slot }

// Controller returns the owning controller, or nil before registration.
func (b *Body) Controller() *Controller { return b.owner }

func (b *Body) Registered() bool { return b.owner != nil }

func (b *Body) attach(c *Controller, slot int) {
	b.owner = c
	b.slot = slot
}

func (b *Body) detach() {
	b.owner = nil
	b.slot = -1
}

// Position returns the live position, or the initial one when unregistered.
func (b *Body) Position() (x, y float64) {
	if b.owner == nil {
		return b.X0, b.Y0
	}
	x, y, _ = b.owner.Position(b.slot)
	return x, y
}

// Velocity returns the live velocity, or the initial one when unregistered.
func (b *Body) Velocity() (vx, vy float64) {
	if b.owner == nil {
		return b.VX0, b.VY0
	}
	vx, vy, _ = b.owner.Velocity(b.slot)
	return vx, vy
}

// Acceleration returns the acceleration applied during the last step.
func (b *Body) Acceleration() (ax, ay float64) {
	if b.owner == nil {
		return 0, 0
	}
	ax, ay, _ = b.owner.LastAcceleration(b.slot)
	return ax, ay
}

func (b *Body) String() string {
	x, y := b.Position()
	vx, vy := b.Velocity()
	ax, ay := b.Acceleration()
	return fmt.Sprintf("(x: %06.2f, vx: %06.2f, ax: %06.2f),\n(y: %06.2f, vy: %06.2f, ay: %06.2f)",
		x, vx, ax, y, vy, ay)
}
