package sim

import (
	"fmt"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// Input reports which buttons are held at simulated time t.
type Input interface {
	HeldAt(t float64) dynamo.HeldFunc
}

type Metric interface {
	Name() string
	Observe(f dynamo.Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f dynamo.Frame, acted []dynamo.ForceDescriptor)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10,
		ValidateState: true,
	}
}

type Result struct {
	Frames     []dynamo.Frame
	Times      []float64
	Acted      [][]dynamo.ForceDescriptor
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Final returns the last recorded frame.
func (r *Result) Final() dynamo.Frame {
	return r.Frames[len(r.Frames)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
