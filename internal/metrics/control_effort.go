package metrics

import (
	"github.com/san-kum/forcebox/internal/dynamo"
)

// ControlEffort averages the magnitude of the per-step acceleration over all
// bodies and frames.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(f dynamo.Frame) {
	for i := 0; i < f.Len(); i++ {
		c.sum += acceleration(f, i).Len()
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
