package dynamo

import (
	"fmt"
	"math"
	"time"
)

// Button names a logical input the host can report as held.
type Button string

// HeldFunc reports whether a logical button is currently held.
type HeldFunc func(b Button) bool

// Force adds its contribution to the acceleration arrays of s.
// Implementations may read velocity and mass but must not write position.
type Force interface {
	Name() string
	Act(s *State)
}

// Gated is implemented by forces that can be restricted to a subset of bodies.
type Gated interface {
	Force
	Mask() Mask
	SetMask(m Mask)
}

// Describer is implemented by forces that can report their current parameters.
type Describer interface {
	Describe() string
}

// InputRouter activates transient forces for the body it is scoped to.
type InputRouter interface {
	Body() *Body
	Poll(held HeldFunc) []Force
}

// Clock is the monotonic time source used to measure dt.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock; time.Time carries the monotonic reading.
var SystemClock Clock = systemClock{}

// Mask gates a force per body. A nil mask selects every body.
type Mask []float64

// Weight returns the gate value for slot i.
func (m Mask) Weight(i int) float64 {
	if m == nil {
		return 1
	}
	if i < 0 || i >= len(m) {
		return 0
	}
	return m[i]
}

// IsolatedMask returns a mask of length n selecting only slot.
func IsolatedMask(n, slot int) Mask {
	m := make(Mask, n)
	if slot >= 0 && slot < n {
		m[slot] = 1
	}
	return m
}

// ForceDescriptor is the read-only view of a force used by debug overlays.
type ForceDescriptor struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

func (d ForceDescriptor) String() string {
	if d.Detail == "" {
		return d.Name
	}
	return fmt.Sprintf("%s: %s", d.Name, d.Detail)
}

// Describe builds the descriptor of f.
func Describe(f Force) ForceDescriptor {
	d := ForceDescriptor{Name: f.Name()}
	if ds, ok := f.(Describer); ok {
		d.Detail = ds.Describe()
	}
	return d
}

// Config holds controller tuning.
type Config struct {
	// Truncate is the speed below which a velocity component snaps to zero.
	Truncate float64
}

const DefaultTruncate = 0.1

func DefaultConfig() Config {
	return Config{Truncate: DefaultTruncate}
}

// Frame is a copy of the kinematic state taken between steps.
type Frame struct {
	Time   float64
	Mass   []float64
	X, Y   []float64
	VX, VY []float64
	AX, AY []float64
}

func (f Frame) Len() int { return len(f.X) }

// IsValid reports whether every position and velocity is finite.
func (f Frame) IsValid() bool {
	for i := range f.X {
		for _, v := range [...]float64{f.X[i], f.Y[i], f.VX[i], f.VY[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Configurable is implemented by forces whose parameters can be tuned live.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
