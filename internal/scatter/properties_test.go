package scatter_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/scatter"
)

func alpha(targetZ int, energyMeV, impactFm float64) scatter.Parameters {
	p, err := scatter.Alpha(targetZ, energyMeV, impactFm)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Deflection", func() {
	It("reflects a head-on projectile by exactly 180 degrees", func() {
		for _, energy := range []float64{0.5, 5, 50} {
			for _, z := range []int{13, 79} {
				r := scatter.Deflection(alpha(z, energy, 0))
				Expect(r.Degrees).To(Equal(180.0))
				Expect(r.Angle).To(Equal(math.Pi))
				Expect(r.HeadOn).To(BeTrue())
			}
		}
	})

	It("decreases strictly with impact parameter", func() {
		prev := 180.0
		for _, b := range []float64{0.01, 0.1, 1, 5, 10, 20, 50, 100, 1000} {
			r := scatter.Deflection(alpha(79, 5, b))
			Expect(r.HeadOn).To(BeFalse())
			Expect(r.Degrees).To(BeNumerically("<", prev), "b=%g fm", b)
			prev = r.Degrees
		}
	})

	It("approaches 0 for distant passes and 180 for near misses", func() {
		Expect(scatter.Deflection(alpha(79, 5, 1e7)).Degrees).To(BeNumerically("<", 1e-3))
		Expect(scatter.Deflection(alpha(79, 5, 1e-6)).Degrees).To(BeNumerically(">", 179.99))
	})

	It("decreases strictly with kinetic energy at fixed impact parameter", func() {
		prev := 180.0
		for _, e := range []float64{1, 2, 5, 10, 20, 100} {
			d := scatter.Deflection(alpha(79, e, 10)).Degrees
			Expect(d).To(BeNumerically("<", prev), "E=%g MeV", e)
			prev = d
		}
	})

	It("scatters a 5 MeV alpha on gold at 10 fm through about 132.5 degrees", func() {
		Expect(scatter.Deflection(alpha(79, 5, 10)).Degrees).To(BeNumerically("~", 132.55, 0.05))
	})
})

var _ = Describe("Integrate", func() {
	ctx := context.Background()

	Describe("an alpha particle on gold at 5 MeV", func() {
		var traj *scatter.Trajectory

		BeforeEach(func() {
			var err error
			traj, err = scatter.Integrate(ctx, alpha(79, 5, 10), scatter.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts 20 impact parameters upstream on the impact line", func() {
			first := traj.States[0]
			Expect(first[0]).To(BeNumerically("~", -2e-13, 1e-25))
			Expect(first[1]).To(Equal(traj.Params.ImpactParameter))
			Expect(first[2]).To(BeNumerically("~", traj.Params.InitialSpeed(), 1e-6))
			Expect(first[3]).To(BeZero())
		})

		It("returns time-ordered samples spanning the horizon", func() {
			Expect(traj.Len()).To(BeNumerically(">", 100))
			Expect(traj.Times).To(HaveLen(traj.Len()))
			Expect(traj.Times[0]).To(BeZero())
			for i := 1; i < len(traj.Times); i++ {
				Expect(traj.Times[i]).To(BeNumerically(">", traj.Times[i-1]))
			}
			Expect(traj.Times[len(traj.Times)-1]).To(BeNumerically("~", traj.Params.Horizon(), traj.Params.Horizon()*1e-12))
		})

		It("conserves total energy between the first and last sample", func() {
			e0 := traj.Energy(0)
			e1 := traj.Energy(traj.Len() - 1)
			Expect(math.Abs(e1-e0) / e0).To(BeNumerically("<", 1e-4))
			Expect(traj.EnergyDrift).To(BeNumerically("<", 1e-4))
		})

		It("conserves angular momentum", func() {
			l0 := traj.AngularMomentum(0)
			l1 := traj.AngularMomentum(traj.Len() - 1)
			Expect(math.Abs(l1-l0) / math.Abs(l0)).To(BeNumerically("<", 1e-4))
		})

		It("leaves on a line with the impact parameter it arrived with", func() {
			in := traj.AsymptoticImpact(0)
			out := traj.AsymptoticImpact(traj.Len() - 1)
			Expect(math.Abs(out-in) / in).To(BeNumerically("<", 1e-4))
		})

		It("is turned back towards the source", func() {
			last := traj.States[traj.Len()-1]
			Expect(last[2]).To(BeNumerically("<", 0))
			Expect(last[1]).To(BeNumerically(">", traj.Params.ImpactParameter))
		})

		It("approaches no closer than the collision diameter allows", func() {
			Expect(traj.MinRadius).To(BeNumerically(">", traj.Params.CollisionDiameter()/2))
			Expect(traj.MinRadius).To(BeNumerically("<", scatter.ClosestApproach(traj.Params)))
		})
	})

	It("reflects a head-on projectile back along the axis", func() {
		traj, err := scatter.Integrate(ctx, alpha(79, 5, 0), scatter.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		first := traj.States[0]
		Expect(first[0]).To(Equal(-scatter.HeadOnStart))
		Expect(first[1]).To(BeZero())

		last := traj.States[traj.Len()-1]
		Expect(last[1]).To(BeZero())
		Expect(last[2]).To(BeNumerically("<", 0))
		// the finite start adds K/StartDistance of potential energy, so the
		// turning point sits inside the collision diameter
		d := traj.Params.CollisionDiameter()
		Expect(traj.MinRadius).To(BeNumerically("<", d))
		Expect(traj.MinRadius).To(BeNumerically(">", 0.75*d))
		Expect(d / constants.Femtometre).To(BeNumerically("~", 45.5, 0.1))
	})

	It("works with integrators without an embedded error estimate", func() {
		opts := scatter.DefaultOptions()
		opts.Integrator = "rk4"
		traj, err := scatter.Integrate(ctx, alpha(79, 5, 20), opts)
		Expect(err).NotTo(HaveOccurred())
		e0 := traj.Energy(0)
		Expect(math.Abs(traj.Energy(traj.Len()-1)-e0) / e0).To(BeNumerically("<", 1e-4))
	})

	It("rejects an unknown integrator", func() {
		opts := scatter.DefaultOptions()
		opts.Integrator = "bogus"
		_, err := scatter.Integrate(ctx, alpha(79, 5, 10), opts)
		Expect(err).To(HaveOccurred())
	})

	It("rejects invalid parameters", func() {
		_, err := scatter.Integrate(ctx, scatter.Parameters{}, scatter.DefaultOptions())
		Expect(err).To(MatchError(scatter.ErrInvalidParameters))
	})

	It("stops when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := scatter.Integrate(cancelled, alpha(79, 5, 10), scatter.DefaultOptions())
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Compute", func() {
	It("pairs the trajectory with the closed-form angle", func() {
		p := alpha(79, 5, 10)
		out, err := scatter.Compute(context.Background(), p, scatter.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Params).To(Equal(p))
		Expect(out.Deflection).To(Equal(scatter.Deflection(p)))
		Expect(out.Trajectory).NotTo(BeNil())

		m := out.Metrics()
		Expect(m).To(HaveKeyWithValue("deflection_deg", out.Deflection.Degrees))
		Expect(m["start_distance_fm"]).To(BeNumerically("~", 200, 1e-9))
		Expect(m).To(HaveKey("energy_drift"))
		Expect(m["steps"]).To(BeNumerically(">", 0))
	})

	It("agrees with the exit heading of a long integration", func() {
		// b = 100 fm leaves the interaction region well inside the horizon
		p := alpha(79, 5, 100)
		out, err := scatter.Compute(context.Background(), p, scatter.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		heading := out.Trajectory.ExitHeading() * 180 / math.Pi
		Expect(heading).To(BeNumerically("~", out.Deflection.Degrees, 3))
	})
})
