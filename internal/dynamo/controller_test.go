package dynamo_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/forcebox/internal/control"
	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/physics"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// recordingForce logs its name each time it acts.
type recordingForce struct {
	name string
	log  *[]string
}

func (r *recordingForce) Name() string { return r.name }
func (r *recordingForce) Act(s *dynamo.State) {
	*r.log = append(*r.log, r.name)
}

func holding(buttons ...dynamo.Button) dynamo.HeldFunc {
	return func(b dynamo.Button) bool {
		for _, h := range buttons {
			if h == b {
				return true
			}
		}
		return false
	}
}

var _ = Describe("Controller", func() {
	var (
		clock *fakeClock
		ctrl  *dynamo.Controller
	)

	BeforeEach(func() {
		clock = &fakeClock{t: time.Unix(1000, 0)}
		ctrl = dynamo.NewController(dynamo.DefaultConfig(), clock)
	})

	Describe("Register", func() {
		It("loads initial conditions into the arrays", func() {
			a := dynamo.NewBody(20, 30, 1.5, -2, 1)
			b := dynamo.NewBody(-4, 8, 0, 3, 2.5)
			Expect(ctrl.Register(a, b)).To(Succeed())

			Expect(ctrl.Len()).To(Equal(2))
			Expect(a.Slot()).To(Equal(0))
			Expect(b.Slot()).To(Equal(1))
			Expect(b.Controller()).To(BeIdenticalTo(ctrl))

			x, y, err := ctrl.Position(1)
			Expect(err).NotTo(HaveOccurred())
			Expect([]float64{x, y}).To(Equal([]float64{-4, 8}))

			vx, vy, err := ctrl.Velocity(0)
			Expect(err).NotTo(HaveOccurred())
			Expect([]float64{vx, vy}).To(Equal([]float64{1.5, -2}))

			for slot := 0; slot < 2; slot++ {
				ax, ay, err := ctrl.LastAcceleration(slot)
				Expect(err).NotTo(HaveOccurred())
				Expect(ax).To(BeZero())
				Expect(ay).To(BeZero())
			}
		})

		It("rejects non-positive mass", func() {
			err := ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1), dynamo.NewBody(0, 0, 0, 0, 0))
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, -2))).To(MatchError(dynamo.ErrConfiguration))
		})

		It("refuses to step without bodies", func() {
			Expect(ctrl.StepDt(0.1, nil)).To(MatchError(dynamo.ErrConfiguration))
			Expect(ctrl.Steps()).To(Equal(0))
		})

		It("refuses re-registration once stepping has begun", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1))).To(Succeed())
			Expect(ctrl.StepDt(0.1, nil)).To(Succeed())
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1))).To(MatchError(dynamo.ErrConfiguration))
		})

		It("replaces the body set before stepping and detaches dropped bodies", func() {
			old := dynamo.NewBody(1, 1, 0, 0, 1)
			Expect(ctrl.Register(old)).To(Succeed())

			fresh := dynamo.NewBody(5, 5, 0, 0, 1)
			Expect(ctrl.Register(fresh)).To(Succeed())
			Expect(old.Registered()).To(BeFalse())
			Expect(old.Slot()).To(Equal(-1))
			Expect(fresh.Slot()).To(Equal(0))
		})

		It("refuses a body owned by another controller", func() {
			b := dynamo.NewBody(0, 0, 0, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())

			other := dynamo.NewController(dynamo.DefaultConfig(), clock)
			Expect(other.Register(b)).To(MatchError(dynamo.ErrConfiguration))
		})

		It("refuses re-registration once routers are bound", func() {
			b := dynamo.NewBody(0, 0, 0, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())
			r, err := control.NewRouter(b, control.Bind(control.Key("d"), physics.NewControlForce(1, 0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.AddRouter(r)).To(Succeed())

			Expect(ctrl.Register(b)).To(MatchError(dynamo.ErrConfiguration))
		})
	})

	Describe("read-back", func() {
		It("bounds-checks slots", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1))).To(Succeed())
			_, _, err := ctrl.Position(1)
			Expect(err).To(MatchError(dynamo.ErrSlotRange))
			_, _, err = ctrl.Velocity(-1)
			Expect(err).To(MatchError(dynamo.ErrSlotRange))
		})

		It("reads an unregistered body's initial conditions", func() {
			b := dynamo.NewBody(3, 4, 5, 6, 1)
			x, y := b.Position()
			vx, vy := b.Velocity()
			Expect([]float64{x, y, vx, vy}).To(Equal([]float64{3, 4, 5, 6}))
		})
	})

	Describe("Step", func() {
		It("integrates a constant field linearly in time", func() {
			b := dynamo.NewBody(0, 0, 0, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())
			g, dt, k := -10.0, 0.1, 5
			ctrl.AddForce(physics.NewGravity(g))

			for i := 0; i < k; i++ {
				Expect(ctrl.StepDt(dt, nil)).To(Succeed())
			}

			_, vy := b.Velocity()
			Expect(vy).To(BeNumerically("~", g*float64(k)*dt, 1e-9))
			_, ay := b.Acceleration()
			Expect(ay).To(BeNumerically("~", g, 1e-12))
			Expect(ctrl.Elapsed()).To(BeNumerically("~", float64(k)*dt, 1e-12))
		})

		It("maps zero velocity to a negative sign", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1), dynamo.NewBody(0, 0, 2, -2, 1))).To(Succeed())
			Expect(ctrl.StepDt(0.1, nil)).To(Succeed())

			sx, sy, err := ctrl.Signs(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(sx).To(Equal(-1.0))
			Expect(sy).To(Equal(-1.0))

			sx, sy, _ = ctrl.Signs(1)
			Expect(sx).To(Equal(1.0))
			Expect(sy).To(Equal(-1.0))
		})

		It("keeps truncated velocity at exactly zero", func() {
			b := dynamo.NewBody(7, 0, 0.05, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())

			for i := 0; i < 10; i++ {
				Expect(ctrl.StepDt(0.1, nil)).To(Succeed())
				vx, _ := b.Velocity()
				Expect(vx).To(Equal(0.0))
				x, _ := b.Position()
				Expect(x).To(Equal(7.0))
			}
		})

		It("updates position from the freshly integrated velocity", func() {
			b := dynamo.NewBody(0, 0, 10, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())
			ctrl.AddForce(physics.NewDrag(1.5))

			Expect(ctrl.StepDt(0.1, nil)).To(Succeed())

			ax, _ := b.Acceleration()
			Expect(ax).To(BeNumerically("~", -75, 1e-9))
			vx, vy := b.Velocity()
			Expect(vx).To(BeNumerically("~", 2.5, 1e-9))
			Expect(vy).To(Equal(0.0))
			x, _ := b.Position()
			Expect(x).To(BeNumerically("~", 0.25, 1e-9))
		})

		It("slows a body by quadratic drag end to end", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 10, 0, 1))).To(Succeed())
			ctrl.AddForce(physics.NewDrag(1.5))

			Expect(ctrl.StepDt(0.1, nil)).To(Succeed())

			vx, vy, err := ctrl.Velocity(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(vx).To(BeNumerically("~", 2.5, 1e-9))
			Expect(vy).To(Equal(0.0))
			ax, ay, err := ctrl.LastAcceleration(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(ax).To(BeNumerically("~", -75, 1e-9))
			Expect(ay).To(Equal(0.0))
		})

		It("snaps a slow braking body before truncation", func() {
			b := dynamo.NewBody(0, 0, 0.25, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())
			r, err := control.NewRouter(b, control.Bind(control.AnyOf("lshift", "rshift"), physics.NewBrakeForce(140)))
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.AddRouter(r)).To(Succeed())

			Expect(ctrl.StepDt(0.1, holding("rshift"))).To(Succeed())
			vx, _ := b.Velocity()
			Expect(vx).To(Equal(0.0))
			ax, _ := b.Acceleration()
			Expect(ax).To(Equal(0.0))
		})

		It("isolates routers that use separate force instances", func() {
			a := dynamo.NewBody(0, 0, 0, 0, 1)
			b := dynamo.NewBody(0, 0, 0, 0, 2)
			Expect(ctrl.Register(a, b)).To(Succeed())

			ra, err := control.NewRouter(a, control.Bind(control.Key("d"), physics.NewControlForce(70, 0)))
			Expect(err).NotTo(HaveOccurred())
			rb, err := control.NewRouter(b, control.Bind(control.Key("l"), physics.NewControlForce(70, 0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.AddRouter(ra)).To(Succeed())
			Expect(ctrl.AddRouter(rb)).To(Succeed())

			Expect(ctrl.StepDt(0.1, holding("d"))).To(Succeed())

			ax, _ := a.Acceleration()
			Expect(ax).To(BeNumerically("~", 70, 1e-12))
			bx, by := b.Acceleration()
			Expect(bx).To(Equal(0.0))
			Expect(by).To(Equal(0.0))
		})

		It("applies continuous forces before transient ones and forgets transients", func() {
			b := dynamo.NewBody(0, 0, 0, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())
			var log []string
			ctrl.AddForce(&recordingForce{name: "first", log: &log})
			ctrl.AddForce(&recordingForce{name: "second", log: &log})
			r, err := control.NewRouter(b,
				control.Bind(control.Key("a"), &recordingForce{name: "pushed", log: &log}),
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.AddRouter(r)).To(Succeed())

			Expect(ctrl.StepDt(0.1, holding("a"))).To(Succeed())
			Expect(log).To(Equal([]string{"first", "second", "pushed"}))
			Expect(ctrl.ActedTransientForces()).To(Equal([]dynamo.ForceDescriptor{{Name: "pushed"}}))

			Expect(ctrl.StepDt(0.1, nil)).To(Succeed())
			Expect(log).To(Equal([]string{"first", "second", "pushed", "first", "second"}))
			Expect(ctrl.ActedTransientForces()).To(BeEmpty())
		})

		It("describes acted forces for overlays", func() {
			b := dynamo.NewBody(0, 0, 0, 0, 1)
			Expect(ctrl.Register(b)).To(Succeed())
			r, err := control.NewRouter(b, control.Bind(control.Key("d"), physics.NewControlForce(70, 0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.AddRouter(r)).To(Succeed())

			Expect(ctrl.StepDt(0.1, holding("d"))).To(Succeed())
			acted := ctrl.ActedTransientForces()
			Expect(acted).To(HaveLen(1))
			Expect(acted[0].String()).To(Equal("control_force: x: 70.0, y: 0.0"))
		})

		It("measures dt from the clock, starting at construction", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 1, 0, 1))).To(Succeed())

			clock.Advance(250 * time.Millisecond)
			Expect(ctrl.Step(nil)).To(Succeed())
			Expect(ctrl.LastDt()).To(BeNumerically("~", 0.25, 1e-9))

			clock.Advance(100 * time.Millisecond)
			Expect(ctrl.Step(nil)).To(Succeed())
			Expect(ctrl.LastDt()).To(BeNumerically("~", 0.1, 1e-9))
			Expect(ctrl.Steps()).To(Equal(2))
		})

		It("skips paused time after Resync", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 1, 0, 1))).To(Succeed())

			clock.Advance(5 * time.Second)
			ctrl.Resync()
			clock.Advance(50 * time.Millisecond)
			Expect(ctrl.Step(nil)).To(Succeed())
			Expect(ctrl.LastDt()).To(BeNumerically("~", 0.05, 1e-9))
		})

		It("rejects an invalid fixed timestep", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1))).To(Succeed())
			Expect(ctrl.StepDt(-0.1, nil)).To(MatchError(dynamo.ErrTimestep))
		})
	})

	Describe("AddRouter", func() {
		It("refuses a router whose body belongs elsewhere", func() {
			b := dynamo.NewBody(0, 0, 0, 0, 1)
			other := dynamo.NewController(dynamo.DefaultConfig(), clock)
			Expect(other.Register(b)).To(Succeed())
			r, err := control.NewRouter(b, control.Bind(control.Key("w"), physics.NewControlForce(0, -1)))
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.Register(dynamo.NewBody(0, 0, 0, 0, 1))).To(Succeed())
			Expect(ctrl.AddRouter(r)).To(MatchError(dynamo.ErrBinding))
		})
	})

	Describe("Snapshot", func() {
		It("copies state so later steps do not mutate it", func() {
			Expect(ctrl.Register(dynamo.NewBody(0, 0, 1, 0, 1))).To(Succeed())
			f := ctrl.Snapshot()
			Expect(ctrl.StepDt(1, nil)).To(Succeed())
			Expect(f.X[0]).To(Equal(0.0))
			Expect(ctrl.Snapshot().X[0]).To(Equal(1.0))
		})
	})
})
