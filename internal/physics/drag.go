package physics

import (
	"fmt"

	"github.com/san-kum/forcebox/internal/dynamo"
)

const DefaultRho = 1.5

// Drag opposes motion with a magnitude quadratic in speed, per axis:
// a = rho * v^2 / 2 / mass.
type Drag struct {
	Rho float64

	// last deceleration computed for slot 0, kept for Describe
	lastX, lastY float64
}

func NewDrag(rho float64) *Drag {
	return &Drag{Rho: rho}
}

func (d *Drag) Name() string { return "air_resistance" }

func (d *Drag) drag(v float64) float64 {
	return d.Rho * v * v / 2
}

func (d *Drag) Act(s *dynamo.State) {
	for i := range s.VX {
		ax := d.drag(s.VX[i]) / s.Mass[i]
		ay := d.drag(s.VY[i]) / s.Mass[i]
		s.AX[i] += -s.SignVX[i] * ax
		s.AY[i] += -s.SignVY[i] * ay
		if i == 0 {
			d.lastX, d.lastY = ax, ay
		}
	}
}

func (d *Drag) Describe() string {
	return fmt.Sprintf("x: %.2f, y: %.2f", d.lastX, d.lastY)
}

func (d *Drag) GetParams() map[string]float64 {
	return map[string]float64{"rho": d.Rho}
}

func (d *Drag) SetParam(name string, value float64) error {
	if name != "rho" {
		return fmt.Errorf("unknown param: %s", name)
	}
	d.Rho = value
	return nil
}
