package dynamo

import "math"

// State holds the live kinematic arrays of every registered body.
// All slices share one length, indexed by body slot.
type State struct {
	Mass   []float64
	X, Y   []float64
	VX, VY []float64

	// SignVX and SignVY hold +1 for strictly positive velocity and -1
	// otherwise, including exactly zero.
	SignVX, SignVY []float64

	// AX and AY accumulate the current step's acceleration.
	AX, AY []float64

	// PrevAX and PrevAY keep the acceleration of the last completed step.
	PrevAX, PrevAY []float64

	Truncate float64
}

func newState(n int, truncate float64) *State {
	return &State{
		Mass:     make([]float64, n),
		X:        make([]float64, n),
		Y:        make([]float64, n),
		VX:       make([]float64, n),
		VY:       make([]float64, n),
		SignVX:   make([]float64, n),
		SignVY:   make([]float64, n),
		AX:       make([]float64, n),
		AY:       make([]float64, n),
		PrevAX:   make([]float64, n),
		PrevAY:   make([]float64, n),
		Truncate: truncate,
	}
}

func (s *State) Len() int { return len(s.Mass) }

// IsValid reports whether every position and velocity is finite.
func (s *State) IsValid() bool {
	for _, arr := range [][]float64{s.X, s.Y, s.VX, s.VY} {
		for _, v := range arr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

func (s *State) resolveSigns() {
	for i := range s.VX {
		s.SignVX[i] = sign(s.VX[i])
		s.SignVY[i] = sign(s.VY[i])
	}
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

func (s *State) integrateVelocity(dt float64) {
	for i := range s.VX {
		s.VX[i] += dt * s.AX[i]
		s.VY[i] += dt * s.AY[i]
	}
}

func (s *State) truncate() {
	for i := range s.VX {
		if math.Abs(s.VX[i]) < s.Truncate {
			s.VX[i] = 0
		}
		if math.Abs(s.VY[i]) < s.Truncate {
			s.VY[i] = 0
		}
	}
}

func (s *State) integratePosition(dt float64) {
	for i := range s.X {
		s.X[i] += dt * s.VX[i]
		s.Y[i] += dt * s.VY[i]
	}
}

func (s *State) clearAccelerations() {
	copy(s.PrevAX, s.AX)
	copy(s.PrevAY, s.AY)
	for i := range s.AX {
		s.AX[i] = 0
		s.AY[i] = 0
	}
}

func (s *State) frame(t float64) Frame {
	return Frame{
		Time: t,
		Mass: clone(s.Mass),
		X:    clone(s.X),
		Y:    clone(s.Y),
		VX:   clone(s.VX),
		VY:   clone(s.VY),
		AX:   clone(s.PrevAX),
		AY:   clone(s.PrevAY),
	}
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
