package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/forcebox/internal/config"
	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/metrics"
	"github.com/san-kum/forcebox/internal/physics"
	"github.com/san-kum/forcebox/internal/sim"
)

type ForceFactory func(fc config.ForceConfig) dynamo.Force

type Registry struct {
	forces map[string]ForceFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		forces: make(map[string]ForceFactory),
	}

	r.forces[config.KindGravity] = func(fc config.ForceConfig) dynamo.Force {
		g := fc.Value
		if g == 0 {
			g = physics.DefaultGravity
		}
		return physics.NewGravity(g)
	}
	r.forces[config.KindField] = func(fc config.ForceConfig) dynamo.Force {
		return physics.NewConstantField("field", fc.X, fc.Y)
	}
	r.forces[config.KindDrag] = func(fc config.ForceConfig) dynamo.Force {
		rho := fc.Value
		if rho == 0 {
			rho = physics.DefaultRho
		}
		return physics.NewDrag(rho)
	}
	r.forces[config.KindControl] = func(fc config.ForceConfig) dynamo.Force {
		return physics.NewControlForce(fc.X, fc.Y)
	}
	r.forces[config.KindBrake] = func(fc config.ForceConfig) dynamo.Force {
		b := physics.NewBrakeForce(fc.Value)
		if fc.Multiplier > 0 {
			b.Multiplier = fc.Multiplier
		}
		return b
	}

	return r
}

func (r *Registry) GetForce(fc config.ForceConfig) (dynamo.Force, error) {
	fn, ok := r.forces[fc.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown force: %s", fc.Kind)
	}
	return fn(fc), nil
}

func (r *Registry) ListForces() []string {
	names := make([]string, 0, len(r.forces))
	for name := range r.forces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewPeakSpeed(),
		metrics.NewPathLength(0),
		metrics.NewRest(),
		metrics.NewControlEffort(),
	}
}
