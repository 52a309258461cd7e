package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/forcebox/internal/config"
	"github.com/san-kum/forcebox/internal/control"
	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/sim"
)

// Shape is a body plus how it is drawn.
type Shape struct {
	Body          *dynamo.Body
	Width, Height float64
	Color         string
}

// Scene is a fully wired controller built from a config.
type Scene struct {
	Name       string
	Screen     config.ScreenConfig
	Controller *dynamo.Controller
	Shapes     []Shape
	Routers    []*control.Router
	Script     *control.Script
}

// Build validates cfg and wires bodies, continuous forces and routers into
// a fresh controller. A nil clock selects the wall clock.
func Build(cfg *config.Config, reg *Registry, clock dynamo.Clock) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrConfiguration, err)
	}
	if reg == nil {
		reg = NewRegistry()
	}

	ctrl := dynamo.NewController(dynamo.Config{Truncate: cfg.Truncate}, clock)
	scene := &Scene{
		Name:       cfg.Name,
		Screen:     cfg.Screen,
		Controller: ctrl,
		Shapes:     make([]Shape, len(cfg.Bodies)),
	}

	bodies := make([]*dynamo.Body, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		bodies[i] = dynamo.NewBody(b.X, b.Y, b.VX, b.VY, b.Mass)
		scene.Shapes[i] = Shape{Body: bodies[i], Width: b.Width, Height: b.Height, Color: b.Color}
	}
	if err := ctrl.Register(bodies...); err != nil {
		return nil, err
	}

	for _, fc := range cfg.Forces {
		f, err := reg.GetForce(fc)
		if err != nil {
			return nil, err
		}
		ctrl.AddForce(f)
	}

	for i, rc := range cfg.Controls {
		bindings := make([]control.Binding, 0, len(rc.Bindings))
		for _, bc := range rc.Bindings {
			f, err := reg.GetForce(bc.Force)
			if err != nil {
				return nil, err
			}
			buttons := make([]dynamo.Button, len(bc.Keys))
			for j, k := range bc.Keys {
				buttons[j] = dynamo.Button(k)
			}
			bindings = append(bindings, control.Bind(control.AnyOf(buttons...), f))
		}
		r, err := control.NewRouter(bodies[rc.Body], bindings...)
		if err != nil {
			return nil, fmt.Errorf("control %d: %w", i, err)
		}
		if err := ctrl.AddRouter(r); err != nil {
			return nil, fmt.Errorf("control %d: %w", i, err)
		}
		scene.Routers = append(scene.Routers, r)
	}

	holds := make([]control.Hold, len(cfg.Script))
	for i, h := range cfg.Script {
		holds[i] = control.Hold{Button: dynamo.Button(h.Key), From: h.From, To: h.To}
	}
	scene.Script = control.NewScript(holds...)

	return scene, nil
}

// Buttons lists every button some router listens to, in binding order.
func (s *Scene) Buttons() []dynamo.Button {
	seen := make(map[dynamo.Button]bool)
	var out []dynamo.Button
	for _, r := range s.Routers {
		for _, b := range r.Bindings() {
			for _, btn := range b.Trigger.Buttons() {
				if !seen[btn] {
					seen[btn] = true
					out = append(out, btn)
				}
			}
		}
	}
	return out
}

// Tunables returns every force in the scene whose parameters can be
// changed live, continuous forces first.
func (s *Scene) Tunables() []dynamo.Force {
	var out []dynamo.Force
	seen := make(map[dynamo.Force]bool)
	add := func(f dynamo.Force) {
		if _, ok := f.(dynamo.Configurable); ok && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range s.Controller.Forces() {
		add(f)
	}
	for _, r := range s.Routers {
		for _, b := range r.Bindings() {
			add(b.Force)
		}
	}
	return out
}

// Experiment runs a scene headless with its script as input.
type Experiment struct {
	cfg       *config.Config
	scene     *Scene
	simulator *sim.Simulator
}

func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	scene, err := Build(cfg, reg, nil)
	if err != nil {
		return nil, err
	}
	s := sim.New(scene.Controller)
	for _, m := range reg.DefaultMetrics() {
		s.AddMetric(m)
	}
	return &Experiment{cfg: cfg, scene: scene, simulator: s}, nil
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.FixedDt(),
		Duration:      e.cfg.Duration,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.SimConfig(), e.scene.Script)
}

func (e *Experiment) Scene() *Scene { return e.scene }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Sweep runs one experiment per value, assigning it to param of the force
// at index forceIdx of base.Forces. Runs execute concurrently.
func Sweep(ctx context.Context, base *config.Config, reg *Registry, forceIdx int, param string, values []float64) ([]*sim.Result, error) {
	if forceIdx < 0 || forceIdx >= len(base.Forces) {
		return nil, fmt.Errorf("force index %d out of range", forceIdx)
	}
	if reg == nil {
		reg = NewRegistry()
	}

	cfgs := make([]*config.Config, len(values))
	for i, v := range values {
		cfgs[i] = base.Clone()
		if err := cfgs[i].Forces[forceIdx].SetParam(param, v); err != nil {
			return nil, err
		}
	}

	factory := func(idx int) (*sim.Simulator, sim.Input, error) {
		e, err := New(cfgs[idx], reg)
		if err != nil {
			return nil, nil, err
		}
		return e.simulator, e.scene.Script, nil
	}

	simCfg := sim.Config{Dt: base.FixedDt(), Duration: base.Duration, ValidateState: true}
	return sim.NewEnsemble(factory, len(values)).Run(ctx, simCfg)
}
