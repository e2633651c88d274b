package chargeset_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
)

func pair(q1, q2 float64) *chargeset.EomSet {
	return chargeset.NewEomSet(
		chargeset.NewEomCharge(q1, 1, spacetime.Vec4(5, 0, 0, 0), spacetime.Vector3{}),
		chargeset.NewEomCharge(q2, 1, spacetime.Vec4(-5, 0, 0, 0), spacetime.Vector3{}),
	)
}

func monotonic(set *chargeset.EomSet) bool {
	for _, ch := range set.Charges() {
		samples := ch.Line.Samples()
		for i := 1; i < len(samples); i++ {
			if samples[i].CT <= samples[i-1].CT {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Presets", func() {
	It("parses names and aliases", func() {
		p, err := chargeset.ParsePreset("line_oscillate")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(chargeset.PresetLineOscillate))

		p, err = chargeset.ParsePreset(" Dipole2 ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(chargeset.PresetDipole2))

		_, err = chargeset.ParsePreset("quadrupole")
		Expect(err).To(MatchError(dynamo.ErrUnknownPreset))
	})

	It("lists every preset with a description", func() {
		presets := chargeset.ListPresets()
		Expect(presets).To(HaveLen(8))
		for _, p := range presets {
			Expect(p.Description()).NotTo(BeEmpty())
		}
	})

	DescribeTable("builds a visible scene",
		func(p chargeset.Preset, c float64, want int) {
			set, err := chargeset.Build(p, c, chargeset.Options{Rand: rand.New(rand.NewSource(7))})
			Expect(err).NotTo(HaveOccurred())
			obs := spacetime.FromCTV(0, p.ObserverStart())
			Expect(set.Iter(c, obs)).To(HaveLen(want))
			Expect(set.Info(c, obs)).To(HaveLen(2 * want))
		},
		Entry("static", chargeset.PresetStatic, 1.0, 1),
		Entry("eom", chargeset.PresetEom, 1.0, 2),
		Entry("line_o", chargeset.PresetLineOscillate, 1.0, 1),
		Entry("o_eom", chargeset.PresetLineOscillateEom, 1.0, 2),
		Entry("dipole", chargeset.PresetDipole, 1.0, 2),
		Entry("dipole2", chargeset.PresetDipole2, 3.0, 2),
		Entry("random", chargeset.PresetRandom, 1.0, 10),
		Entry("circle", chargeset.PresetCircle, 2.0, 7),
	)

	It("rejects a non-positive speed of light", func() {
		_, err := chargeset.Build(chargeset.PresetStatic, 0, chargeset.Options{})
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("is reproducible for a fixed seed", func() {
		obs := spacetime.Vec4(0, 0, 30, 0)
		a, err := chargeset.Build(chargeset.PresetRandom, 1, chargeset.Options{Count: 4, Rand: rand.New(rand.NewSource(3))})
		Expect(err).NotTo(HaveOccurred())
		b, err := chargeset.Build(chargeset.PresetRandom, 1, chargeset.Options{Count: 4, Rand: rand.New(rand.NewSource(3))})
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Iter(1, obs)).To(Equal(b.Iter(1, obs)))
	})

	It("hides charges before they appear", func() {
		appear := -5.0
		set, err := chargeset.Build(chargeset.PresetStatic, 1, chargeset.Options{AppearAt: &appear})
		Expect(err).NotTo(HaveOccurred())
		Expect(set.Iter(1, spacetime.Vec4(0, 0, 20, 0))).To(BeEmpty())
		Expect(set.Iter(1, spacetime.Vec4(0, 0, 20, 16))).To(HaveLen(1))
	})
})

var _ = Describe("StaticSet", func() {
	It("sees a static charge at its retarded time", func() {
		set := chargeset.NewStaticSet(chargeset.Fixed{Q: 2, Line: worldline.NewStatic(spacetime.Vector3{})})
		srcs := set.Iter(1, spacetime.Vec4(0, 0, 20, 3))
		Expect(srcs).To(HaveLen(1))
		Expect(srcs[0].Q).To(Equal(2.0))
		Expect(srcs[0].Position.CT).To(BeNumerically("~", -17, 1e-12))
		Expect(set.Tick(1, spacetime.Vec4(0, 0, 0, 100))).To(Succeed())
	})

	It("sums to a Coulomb field", func() {
		set := chargeset.NewStaticSet(chargeset.Fixed{Q: 2, Line: worldline.NewStatic(spacetime.Vec3(3, 4, 5))})
		x := spacetime.Vec4(0, 0, 0, 10)
		e := chargeset.Field(1, x, set.Iter(1, x)).ElectricField(1)
		l := spacetime.Vec3(3, 4, 5)
		want := l.Normalized().Scale(-2 / l.Magnitude2())
		Expect(e.X).To(BeNumerically("~", want.X, 1e-12))
		Expect(e.Y).To(BeNumerically("~", want.Y, 1e-12))
		Expect(e.Z).To(BeNumerically("~", want.Z, 1e-12))
	})
})

var _ = Describe("EomSet", func() {
	It("repels opposite charges", func() {
		set := pair(1, -1)
		Expect(set.Tick(1, spacetime.Vec4(0, 0, 0, 20))).To(Succeed())

		plus, minus := set.Charges()[0], set.Charges()[1]
		Expect(plus.Phase.Velocity.X).To(BeNumerically(">", 0))
		Expect(minus.Phase.Velocity.X).To(BeNumerically("<", 0))
		Expect(plus.Phase.Position.X).To(BeNumerically(">", 5))
		Expect(plus.Phase.Position.X).To(BeNumerically("~", -minus.Phase.Position.X, 1e-9))
	})

	It("attracts like charges", func() {
		set := pair(1, 1)
		Expect(set.Tick(1, spacetime.Vec4(0, 0, 0, 20))).To(Succeed())
		Expect(set.Charges()[0].Phase.Velocity.X).To(BeNumerically("<", 0))
		Expect(set.Charges()[1].Phase.Velocity.X).To(BeNumerically(">", 0))
	})

	It("contracts the field with the four-velocity through the metric", func() {
		set := pair(1, -1)
		plus, minus := set.Charges()[0], set.Charges()[1]
		x := plus.Phase.Position
		r, ok := minus.Line.PastIntersection(1, x)
		Expect(ok).To(BeTrue())
		fs := chargeset.Field(1, x, []chargeset.Source{{Q: minus.Charge, Retarded: r}})

		// only the +1 charge is inside the cone, so it takes exactly one step
		Expect(set.Tick(1, spacetime.Vec4(5, 0, 0, 0.01))).To(Succeed())
		Expect(set.Steps()).To(Equal(1))
		uu := spacetime.Eta().MulVec4(spacetime.Vec4(0, 0, 0, 1))
		want := fs.MulVec4(uu).X * 0.01
		Expect(want).To(BeNumerically(">", 0))
		Expect(plus.Phase.Velocity.X).To(BeNumerically("~", want, 1e-12))
	})

	It("leaves the phase untouched when the history rejects a step", func() {
		ch := chargeset.NewEomCharge(1, 1, spacetime.Vector4{}, spacetime.Vector3{})
		Expect(ch.Line.Push(spacetime.Vec4(0, 0, 0, 1))).To(Succeed())
		before := ch.Phase

		set := chargeset.NewEomSet(ch)
		err := set.Tick(1, spacetime.Vec4(0, 0, 0, 5))
		Expect(errors.Is(err, dynamo.ErrNonMonotonic)).To(BeTrue())
		Expect(ch.Phase).To(Equal(before))
	})

	It("stops once no charge is behind the target", func() {
		set := pair(1, -1)
		until := spacetime.Vec4(0, 0, 0, 20)
		Expect(set.Tick(1, until)).To(Succeed())
		for _, ch := range set.Charges() {
			p := ch.Phase.Position
			behind := p.CT < until.CT && p.Sub(until).LorentzNorm2() < 0
			Expect(behind).To(BeFalse())
			last, ok := ch.Line.Last()
			Expect(ok).To(BeTrue())
			Expect(last).To(Equal(p))
		}

		steps := set.Steps()
		Expect(set.Tick(1, until)).To(Succeed())
		Expect(set.Steps()).To(Equal(steps))
	})

	It("advances the least advanced charge and keeps histories ordered", func() {
		set, err := chargeset.Build(chargeset.PresetRandom, 1, chargeset.Options{
			Count:  5,
			Charge: 0.1,
			Rand:   rand.New(rand.NewSource(11)),
		})
		Expect(err).NotTo(HaveOccurred())
		eom := chargeset.Dynamics(set)
		Expect(eom).NotTo(BeNil())

		violations := 0
		eom.OnStep = func(i int, charges []*chargeset.EomCharge) {
			for _, other := range charges {
				if other.Phase.Position.CT < charges[i].Phase.Position.CT {
					violations++
				}
			}
		}
		for _, ct := range []float64{-25, -20, -18, -15} {
			Expect(set.Tick(1, spacetime.Vec4(0, 0, 0, ct))).To(Succeed())
			Expect(monotonic(eom)).To(BeTrue())
		}
		Expect(eom.Steps()).To(BeNumerically(">", 0))
		Expect(violations).To(BeZero())
	})

	It("uses the step fraction", func() {
		coarse := pair(1, -1)
		coarse.StepFraction = 0.1
		fine := pair(1, -1)
		Expect(coarse.Tick(1, spacetime.Vec4(0, 0, 0, 20))).To(Succeed())
		Expect(fine.Tick(1, spacetime.Vec4(0, 0, 0, 20))).To(Succeed())
		Expect(fine.Steps()).To(BeNumerically(">", 5*coarse.Steps()))
	})

	It("rescales velocities when c changes", func() {
		set := chargeset.NewEomSet(chargeset.NewEomCharge(1, 1, spacetime.Vector4{}, spacetime.Vec3(0.4, 0, 0)))
		set.ChangeC(1, 2)
		Expect(set.Charges()[0].Phase.Velocity.X).To(BeNumerically("~", 0.2, 1e-15))
	})
})

var _ = Describe("Composite", func() {
	It("drives the dynamic charge with the fixed ones", func() {
		set, err := chargeset.Build(chargeset.PresetCircle, 1, chargeset.Options{Count: 4, Speed: 1e-9})
		Expect(err).NotTo(HaveOccurred())
		Expect(set.Tick(1, spacetime.Vec4(0, 0, 0, -20))).To(Succeed())

		// the central charge pushes each ring charge outwards
		for _, ch := range chargeset.Dynamics(set).Charges() {
			r := ch.Phase.Position.Spatial()
			Expect(ch.Phase.Velocity.Dot(r)).To(BeNumerically(">", 0))
		}
	})

	It("reports both parts", func() {
		set, err := chargeset.Build(chargeset.PresetLineOscillateEom, 1, chargeset.Options{})
		Expect(err).NotTo(HaveOccurred())
		obs := spacetime.Vec4(0, 0, 20, 0)
		Expect(set.Tick(1, obs)).To(Succeed())
		srcs := set.Iter(1, obs)
		Expect(srcs).To(HaveLen(2))
		Expect(srcs[0].Q).To(Equal(3.5))
		Expect(srcs[1].Q).To(Equal(-3.5))
		Expect(math.IsNaN(srcs[1].Position.X)).To(BeFalse())
	})
})
