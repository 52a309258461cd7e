package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/physics"
)

// newState builds a state for bodies with the given masses and velocities,
// signs resolved as the controller would.
func newState(mass, vx, vy []float64) *dynamo.State {
	n := len(mass)
	s := &dynamo.State{
		Mass:     append([]float64(nil), mass...),
		X:        make([]float64, n),
		Y:        make([]float64, n),
		VX:       append([]float64(nil), vx...),
		VY:       append([]float64(nil), vy...),
		SignVX:   make([]float64, n),
		SignVY:   make([]float64, n),
		AX:       make([]float64, n),
		AY:       make([]float64, n),
		PrevAX:   make([]float64, n),
		PrevAY:   make([]float64, n),
		Truncate: dynamo.DefaultTruncate,
	}
	for i := 0; i < n; i++ {
		s.SignVX[i], s.SignVY[i] = -1, -1
		if s.VX[i] > 0 {
			s.SignVX[i] = 1
		}
		if s.VY[i] > 0 {
			s.SignVY[i] = 1
		}
	}
	return s
}

var _ = Describe("ConstantField", func() {
	It("adds the same value to every body regardless of mass", func() {
		s := newState([]float64{1, 5}, []float64{0, 0}, []float64{0, 0})
		physics.NewGravity(-9.8).Act(s)
		Expect(s.AY).To(Equal([]float64{-9.8, -9.8}))
		Expect(s.AX).To(Equal([]float64{0, 0}))
	})

	It("ignores a mask-like selection and stays global", func() {
		s := newState([]float64{1, 1, 1}, []float64{0, 0, 0}, []float64{0, 0, 0})
		physics.NewConstantField("wind", 2, 0).Act(s)
		Expect(s.AX).To(Equal([]float64{2, 2, 2}))
	})
})

var _ = Describe("Drag", func() {
	It("opposes motion quadratically per axis", func() {
		s := newState([]float64{1, 2}, []float64{10, -4}, []float64{0, 2})
		physics.NewDrag(1.5).Act(s)

		Expect(s.AX[0]).To(BeNumerically("~", -75, 1e-12))
		Expect(s.AY[0]).To(BeNumerically("~", 0, 1e-12))
		// 1.5*16/2/2 = 6, pushing back towards +x
		Expect(s.AX[1]).To(BeNumerically("~", 6, 1e-12))
		// 1.5*4/2/2 = 1.5, opposing +y
		Expect(s.AY[1]).To(BeNumerically("~", -1.5, 1e-12))
	})

	It("never writes velocity", func() {
		s := newState([]float64{1}, []float64{3}, []float64{-3})
		physics.NewDrag(1.5).Act(s)
		Expect(s.VX[0]).To(Equal(3.0))
		Expect(s.VY[0]).To(Equal(-3.0))
	})

	It("describes the last deceleration of the first body", func() {
		d := physics.NewDrag(1.5)
		d.Act(newState([]float64{1}, []float64{10}, []float64{0}))
		Expect(d.Describe()).To(Equal("x: 75.00, y: 0.00"))
	})
})

var _ = Describe("ControlForce", func() {
	It("acts only where the mask selects", func() {
		s := newState([]float64{1, 2, 4}, []float64{0, 0, 0}, []float64{0, 0, 0})
		f := physics.NewControlForce(8, -4)
		f.SetMask(dynamo.IsolatedMask(3, 1))
		f.Act(s)

		Expect(s.AX).To(Equal([]float64{0, 4, 0}))
		Expect(s.AY).To(Equal([]float64{0, -2, 0}))
	})

	It("acts on every body with no mask", func() {
		s := newState([]float64{1, 2}, []float64{0, 0}, []float64{0, 0})
		physics.NewControlForce(8, 0).Act(s)
		Expect(s.AX).To(Equal([]float64{8, 4}))
	})

	It("adds nothing under a zero mask", func() {
		s := newState([]float64{1}, []float64{0}, []float64{0})
		f := physics.NewControlForce(8, 8)
		f.SetMask(dynamo.Mask{0})
		f.Act(s)
		Expect(s.AX[0]).To(Equal(0.0))
		Expect(s.AY[0]).To(Equal(0.0))
	})
})

var _ = Describe("BrakeForce", func() {
	It("decelerates against motion above the stopped guard", func() {
		s := newState([]float64{2}, []float64{5}, []float64{-5})
		physics.NewBrakeForce(140).Act(s)

		Expect(s.AX[0]).To(BeNumerically("~", -70, 1e-12))
		Expect(s.AY[0]).To(BeNumerically("~", 70, 1e-12))
		Expect(s.VX[0]).To(Equal(5.0))
	})

	It("snaps slow axes to rest without braking them", func() {
		s := newState([]float64{1}, []float64{0.2}, []float64{6})
		physics.NewBrakeForce(140).Act(s)

		Expect(s.VX[0]).To(Equal(0.0))
		Expect(s.AX[0]).To(Equal(0.0))
		Expect(s.VY[0]).To(Equal(6.0))
		Expect(s.AY[0]).To(BeNumerically("~", -140, 1e-12))
	})

	It("scales the guard with the multiplier", func() {
		s := newState([]float64{1}, []float64{0.2}, []float64{0})
		b := physics.NewBrakeForce(10)
		b.Multiplier = 1
		b.Act(s)

		Expect(s.VX[0]).To(Equal(0.2))
		Expect(s.AX[0]).To(BeNumerically("~", -10, 1e-12))
	})

	It("leaves unselected bodies untouched", func() {
		s := newState([]float64{1, 1}, []float64{0.1, 0.1}, []float64{5, 5})
		b := physics.NewBrakeForce(140)
		b.SetMask(dynamo.IsolatedMask(2, 0))
		b.Act(s)

		Expect(s.VX).To(Equal([]float64{0, 0.1}))
		Expect(s.AY).To(Equal([]float64{-140, 0}))
	})
})

var _ = Describe("Configurable forces", func() {
	It("round-trips parameters", func() {
		forces := []dynamo.Configurable{
			physics.NewGravity(-9.8),
			physics.NewDrag(1.5),
			physics.NewControlForce(1, 2),
			physics.NewBrakeForce(3),
		}
		for _, f := range forces {
			for name := range f.GetParams() {
				Expect(f.SetParam(name, 42)).To(Succeed())
				Expect(f.GetParams()[name]).To(Equal(42.0))
			}
			Expect(f.SetParam("bogus", 1)).NotTo(Succeed())
		}
	})
})
