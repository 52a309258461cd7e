package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// Simulator drives a controller with a fixed timestep and a scripted input.
type Simulator struct {
	ctrl      *dynamo.Controller
	metrics   []Metric
	observers []Observer
}

func New(ctrl *dynamo.Controller) *Simulator {
	return &Simulator{
		ctrl:      ctrl,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Controller() *dynamo.Controller { return s.ctrl }

func (s *Simulator) Run(ctx context.Context, cfg Config, input Input) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &Result{
		Frames:  make([]dynamo.Frame, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Acted:   make([][]dynamo.ForceDescriptor, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	first := s.ctrl.Snapshot()
	result.Frames = append(result.Frames, first)
	result.Times = append(result.Times, first.Time)
	result.Acted = append(result.Acted, nil)
	for _, m := range s.metrics {
		m.Observe(first)
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.ctrl.StepDt(cfg.Dt, held(input, s.ctrl.Elapsed())); err != nil {
			return result, err
		}

		f := s.ctrl.Snapshot()
		acted := s.ctrl.ActedTransientForces()

		if cfg.ValidateState && !f.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: f.Time, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnStep(f, acted)
		}

		result.StepsTaken++
		result.Frames = append(result.Frames, f)
		result.Times = append(result.Times, f.Time)
		result.Acted = append(result.Acted, acted)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until the duration is reached or callback returns
// false, without recording frames.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, input Input, callback func(dynamo.Frame, []dynamo.ForceDescriptor) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for t := 0.0; t < cfg.Duration-1e-9; t += cfg.Dt {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.ctrl.StepDt(cfg.Dt, held(input, s.ctrl.Elapsed())); err != nil {
			return err
		}

		f := s.ctrl.Snapshot()
		if cfg.ValidateState && !f.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f", f.Time)
		}
		if !callback(f, s.ctrl.ActedTransientForces()) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.ctrl == nil {
		return fmt.Errorf("%w: nil controller", dynamo.ErrConfiguration)
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func held(input Input, t float64) dynamo.HeldFunc {
	if input == nil {
		return nil
	}
	return input.HeldAt(t)
}
