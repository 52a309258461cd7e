package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/forcebox/internal/dynamo"
)

const DefaultBrakeMultiplier = 3

// BrakeForce decelerates the bodies selected by its mask with a constant
// force against their current motion. The same value acts on both axes.
//
// A selected body moving slower than Multiplier*Truncate on an axis counts
// as stopped there: it gets no brake contribution on that axis and its
// velocity on that axis is set to exactly zero during Act. The snap applies
// only to bodies the mask selects; other bodies keep their velocity.
type BrakeForce struct {
	Value      float64
	Multiplier float64
	mask       dynamo.Mask
}

func NewBrakeForce(value float64) *BrakeForce {
	return &BrakeForce{Value: value, Multiplier: DefaultBrakeMultiplier}
}

func (b *BrakeForce) Name() string { return "brake_force" }

func (b *BrakeForce) Mask() dynamo.Mask { return b.mask }

func (b *BrakeForce) SetMask(m dynamo.Mask) { b.mask = m }

func (b *BrakeForce) Act(s *dynamo.State) {
	guard := b.Multiplier * s.Truncate
	for i := range s.VX {
		w := b.mask.Weight(i)
		if w == 0 {
			continue
		}
		acc := b.Value / s.Mass[i]

		if math.Abs(s.VX[i]) < guard {
			s.VX[i] = 0
		} else {
			s.AX[i] += w * (-s.SignVX[i] * acc)
		}

		if math.Abs(s.VY[i]) < guard {
			s.VY[i] = 0
		} else {
			s.AY[i] += w * (-s.SignVY[i] * acc)
		}
	}
}

func (b *BrakeForce) Describe() string {
	return fmt.Sprintf("%.1f", b.Value)
}

func (b *BrakeForce) GetParams() map[string]float64 {
	return map[string]float64{
		"value":      b.Value,
		"multiplier": b.Multiplier,
	}
}

func (b *BrakeForce) SetParam(name string, value float64) error {
	switch name {
	case "value":
		b.Value = value
	case "multiplier":
		b.Multiplier = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
