package physics

import (
	"fmt"

	"github.com/san-kum/forcebox/internal/dynamo"
)

const DefaultGravity = -9.8

// ConstantField adds the same acceleration to every body regardless of mass.
type ConstantField struct {
	Label  string
	AX, AY float64
}

func NewConstantField(label string, ax, ay float64) *ConstantField {
	return &ConstantField{Label: label, AX: ax, AY: ay}
}

// NewGravity returns a vertical field of magnitude g (signed).
func NewGravity(g float64) *ConstantField {
	return NewConstantField("gravity", 0, g)
}

func (f *ConstantField) Name() string { return f.Label }

func (f *ConstantField) Act(s *dynamo.State) {
	for i := range s.AY {
		s.AX[i] += f.AX
		s.AY[i] += f.AY
	}
}

func (f *ConstantField) Describe() string {
	if f.AX == 0 {
		return fmt.Sprintf("%.2f", f.AY)
	}
	return fmt.Sprintf("x: %.2f, y: %.2f", f.AX, f.AY)
}

func (f *ConstantField) GetParams() map[string]float64 {
	return map[string]float64{
		"ax": f.AX,
		"ay": f.AY,
	}
}

func (f *ConstantField) SetParam(name string, value float64) error {
	switch name {
	case "ax":
		f.AX = value
	case "ay":
		f.AY = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
