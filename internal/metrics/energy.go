package metrics

import (
	"github.com/san-kum/forcebox/internal/dynamo"
)

// KineticEnergy averages the total kinetic energy of all bodies over the
// observed frames.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
	last        float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f dynamo.Frame) {
	e.last = Kinetic(f)
	e.totalEnergy += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// Last returns the energy of the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
	e.last = 0
}

// Kinetic returns the summed kinetic energy of a frame.
func Kinetic(f dynamo.Frame) float64 {
	total := 0.0
	for i := 0; i < f.Len(); i++ {
		v := velocity(f, i)
		total += 0.5 * f.Mass[i] * v.Dot(v)
	}
	return total
}

// PeakSpeed tracks the highest speed reached by any body.
type PeakSpeed struct {
	name string
	max  float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f dynamo.Frame) {
	for i := 0; i < f.Len(); i++ {
		if s := velocity(f, i).Len(); s > p.max {
			p.max = s
		}
	}
}

func (p *PeakSpeed) Value() float64 { return p.max }

func (p *PeakSpeed) Reset() { p.max = 0 }

// Speeds returns the speed of each body in f.
func Speeds(f dynamo.Frame) []float64 {
	out := make([]float64, f.Len())
	for i := range out {
		out[i] = velocity(f, i).Len()
	}
	return out
}
