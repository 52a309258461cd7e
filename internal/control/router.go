package control

import (
	"fmt"
	"strings"

	"github.com/san-kum/forcebox/internal/dynamo"
)

// Trigger is either a single button or an ordered set of buttons where any
// one held activates the binding.
type Trigger struct {
	buttons []dynamo.Button
}

// Key triggers on a single button.
func Key(b dynamo.Button) Trigger {
	return Trigger{buttons: []dynamo.Button{b}}
}

// AnyOf triggers when any of the buttons is held, checked in order.
func AnyOf(buttons ...dynamo.Button) Trigger {
	return Trigger{buttons: append([]dynamo.Button(nil), buttons...)}
}

func (t Trigger) Buttons() []dynamo.Button {
	return append([]dynamo.Button(nil), t.buttons...)
}

// Chord reports whether the trigger lists more than one button.
func (t Trigger) Chord() bool { return len(t.buttons) > 1 }

// Held reports whether any button of t is held, stopping at the first one.
func (t Trigger) Held(held dynamo.HeldFunc) bool {
	for _, b := range t.buttons {
		if held(b) {
			return true
		}
	}
	return false
}

func (t Trigger) String() string {
	parts := make([]string, len(t.buttons))
	for i, b := range t.buttons {
		parts[i] = string(b)
	}
	return strings.Join(parts, "|")
}

// Binding maps a trigger to the force it activates.
type Binding struct {
	Trigger Trigger
	Force   dynamo.Force
}

func Bind(t Trigger, f dynamo.Force) Binding {
	return Binding{Trigger: t, Force: f}
}

// Router activates the forces of its bindings for a single body.
type Router struct {
	body     *dynamo.Body
	bindings []Binding
}

// NewRouter scopes bindings to body. Every gated force bound here has its
// mask narrowed to the body's slot, so it never moves another body.
func NewRouter(body *dynamo.Body, bindings ...Binding) (*Router, error) {
	if body == nil || !body.Registered() {
		return nil, fmt.Errorf("%w: router body is not registered", dynamo.ErrBinding)
	}
	for i, b := range bindings {
		if b.Force == nil {
			return nil, fmt.Errorf("%w: binding %d has no force", dynamo.ErrBinding, i)
		}
		if len(b.Trigger.buttons) == 0 {
			return nil, fmt.Errorf("%w: binding %d has no buttons", dynamo.ErrBinding, i)
		}
	}

	n := body.Controller().Len()
	for _, b := range bindings {
		if g, ok := b.Force.(dynamo.Gated); ok {
			g.SetMask(dynamo.IsolatedMask(n, body.Slot()))
		}
	}

	return &Router{
		body:     body,
		bindings: append([]Binding(nil), bindings...),
	}, nil
}

func (r *Router) Body() *dynamo.Body { return r.body }

func (r *Router) Bindings() []Binding { return append([]Binding(nil), r.bindings...) }

// Poll returns the forces whose trigger is held, at most once per binding,
// in binding order.
func (r *Router) Poll(held dynamo.HeldFunc) []dynamo.Force {
	if held == nil {
		return nil
	}
	var active []dynamo.Force
	for _, b := range r.bindings {
		if b.Trigger.Held(held) {
			active = append(active, b.Force)
		}
	}
	return active
}
