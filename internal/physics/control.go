package physics

import (
	"fmt"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// ControlForce pushes the bodies selected by its mask with a fixed force.
type ControlForce struct {
	FX, FY float64
	mask   dynamo.Mask
}

func NewControlForce(fx, fy float64) *ControlForce {
	return &ControlForce{FX: fx, FY: fy}
}

func (c *ControlForce) Name() string { return "control_force" }

func (c *ControlForce) Mask() dynamo.Mask { return c.mask }

func (c *ControlForce) SetMask(m dynamo.Mask) { c.mask = m }

func (c *ControlForce) Act(s *dynamo.State) {
	for i := range s.AX {
		w := c.mask.Weight(i)
		if w == 0 {
			continue
		}
		s.AX[i] += w * (c.FX / s.Mass[i])
		s.AY[i] += w * (c.FY / s.Mass[i])
	}
}

func (c *ControlForce) Describe() string {
	return fmt.Sprintf("x: %.1f, y: %.1f", c.FX, c.FY)
}

func (c *ControlForce) GetParams() map[string]float64 {
	return map[string]float64{
		"fx": c.FX,
		"fy": c.FY,
	}
}

func (c *ControlForce) SetParam(name string, value float64) error {
	switch name {
	case "fx":
		c.FX = value
	case "fy":
		c.FY = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
