package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

const dt = 0.016

func entityAt(x, y, radius float64) physics.Entity {
	return physics.NewEntity(radius, dynamo.White, physics.NewMotion(x, y))
}

func expectFinite(pop physics.Population) {
	for i := range pop {
		p := pop[i].Position()
		ExpectWithOffset(1, p.IsValid()).To(BeTrue(), "entity %d at %v", i, p)
	}
}

var _ = Describe("Resolver", func() {
	var (
		resolver *physics.Resolver
		large    physics.Constraint
	)

	BeforeEach(func() {
		resolver = physics.NewResolver(dynamo.Vec2{})
		large = physics.Constraint{Center: dynamo.Vec2{}, Radius: 1000, Offset: 0, Color: dynamo.Gray}
	})

	Describe("gravity pass", func() {
		It("adds gravity to every entity's accumulator", func() {
			resolver.Gravity = dynamo.V(0, 10)
			pop := physics.Population{entityAt(0, 0, 5), entityAt(50, 0, 5)}

			resolver.ApplyGravity(pop)

			for i := range pop {
				Expect(pop[i].Motion.Acceleration).To(Equal(dynamo.V(0, 10)))
			}
		})
	})

	Describe("boundary pass", func() {
		It("keeps every entity within radius minus offset", func() {
			boundary := physics.Constraint{Center: dynamo.V(800, 450), Radius: 400, Offset: 25}
			rng := rand.New(rand.NewSource(7))
			pop := physics.Spawn(physics.SpawnConfig{
				Min: dynamo.V(-500, -500), Size: dynamo.V(2600, 1900),
				Radius: 10, Count: 200,
			}, rng)

			resolver.ApplyConstraint(pop, boundary)

			for i := range pop {
				Expect(boundary.Contains(pop[i].Position(), 1e-9)).To(BeTrue(), "entity %d at %v", i, pop[i].Position())
			}
		})
	})

	Describe("collision pass", func() {
		It("separates an overlapping pair to the sum of radii around a fixed midpoint", func() {
			pop := physics.Population{entityAt(3, 4, 10), entityAt(9, 12, 6)}
			mid := pop[0].Position().Add(pop[1].Position()).Scale(0.5)

			resolver.ApplyCollisions(pop)

			Expect(pop[0].Position().Dist(pop[1].Position())).To(BeNumerically("~", 16, 1e-9))
			newMid := pop[0].Position().Add(pop[1].Position()).Scale(0.5)
			Expect(newMid.X).To(BeNumerically("~", mid.X, 1e-9))
			Expect(newMid.Y).To(BeNumerically("~", mid.Y, 1e-9))
		})

		It("moves the pair along the line between their centers", func() {
			pop := physics.Population{entityAt(0, 0, 10), entityAt(0, 10, 10)}

			resolver.ApplyCollisions(pop)

			Expect(pop[0].Position()).To(Equal(dynamo.V(0, -5)))
			Expect(pop[1].Position()).To(Equal(dynamo.V(0, 15)))
		})

		It("leaves non-overlapping pairs alone", func() {
			pop := physics.Population{entityAt(0, 0, 10), entityAt(20, 0, 10), entityAt(100, 100, 10)}
			before := pop.Clone()

			resolver.ApplyCollisions(pop)

			Expect(pop).To(Equal(before))
		})

		It("is a no-op for empty and singleton populations", func() {
			Expect(func() { resolver.ApplyCollisions(nil) }).NotTo(Panic())
			Expect(func() { resolver.ApplyCollisions(physics.Population{}) }).NotTo(Panic())

			single := physics.Population{entityAt(1, 2, 10)}
			Expect(func() { resolver.Update(single, large, dt) }).NotTo(Panic())
			Expect(single[0].Position()).To(Equal(dynamo.V(1, 2)))
		})

		It("uses the sum of individual radii", func() {
			pop := physics.Population{entityAt(0, 0, 4), entityAt(10, 0, 8)}

			resolver.ApplyCollisions(pop)

			Expect(pop[0].Position().X).To(BeNumerically("~", -1, 1e-12))
			Expect(pop[1].Position().X).To(BeNumerically("~", 11, 1e-12))
		})

		It("processes pairs in ascending order, reading earlier corrections", func() {
			// 0 and 1 overlap; the shift of 1 then creates an overlap with 2
			pop := physics.Population{entityAt(0, 0, 5), entityAt(8, 0, 5), entityAt(18.5, 0, 5)}

			resolver.ApplyCollisions(pop)

			Expect(pop[0].Position().X).To(BeNumerically("~", -1, 1e-12))
			Expect(pop[1].Position().X).To(BeNumerically("~", 8.75, 1e-12))
			Expect(pop[2].Position().X).To(BeNumerically("~", 18.75, 1e-12))
		})

		It("separates coincident entities along the fallback axis", func() {
			pop := physics.Population{entityAt(5, 5, 10), entityAt(5, 5, 10)}

			resolver.ApplyCollisions(pop)

			Expect(pop[0].Position()).To(Equal(dynamo.V(15, 5)))
			Expect(pop[1].Position()).To(Equal(dynamo.V(-5, 5)))
		})

		It("does not re-check the boundary after separating", func() {
			tight := physics.Constraint{Radius: 20, Offset: 0}
			pop := physics.Population{entityAt(18, 0, 10), entityAt(8, 0, 10)}

			resolver.ApplyConstraint(pop, tight)
			resolver.ApplyCollisions(pop)

			Expect(tight.Contains(pop[0].Position(), 0)).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("never produces NaN for coincident entities", func() {
			resolver.Gravity = dynamo.V(0, 10)
			pop := physics.Population{entityAt(0, 0, 10), entityAt(0, 0, 10), entityAt(0, 0, 10)}

			for i := 0; i < 10; i++ {
				resolver.Update(pop, large, dt)
			}

			expectFinite(pop)
		})

		It("pushes two overlapping entities apart along x", func() {
			pop := physics.Population{entityAt(0, 0, 10), entityAt(15, 0, 10)}

			resolver.Update(pop, large, dt)

			Expect(pop[0].Position().Dist(pop[1].Position())).To(BeNumerically(">=", 20))
			Expect(pop[0].Position().X).To(BeNumerically("~", -2.5, 1e-2))
			Expect(pop[1].Position().X).To(BeNumerically("~", 17.5, 1e-2))
			Expect(pop[0].Position().Y).To(BeZero())
			Expect(pop[1].Position().Y).To(BeZero())
		})

		It("holds a falling entity inside the boundary in steady state", func() {
			resolver.Gravity = dynamo.V(0, 10)
			boundary := physics.Constraint{Center: dynamo.V(0, 0), Radius: 100, Offset: 25}
			pop := physics.Population{entityAt(0, 0, 10)}

			for i := 0; i < 50; i++ {
				resolver.Update(pop, boundary, dt)
			}

			for i := 0; i < 200; i++ {
				resolver.ApplyGravity(pop)
				resolver.ApplyConstraint(pop, boundary)
				d := pop[0].Position().Sub(boundary.Center).Len()
				Expect(d).To(BeNumerically("<=", 75+1e-9))
				Expect(d).To(BeNumerically("~", 75, 1e-6))
				resolver.ApplyCollisions(pop)
				resolver.Integrate(pop, dt)

				// one integration step can carry it past the limit by at most |g| plus drift
				after := pop[0].Position().Sub(boundary.Center).Len()
				Expect(after).To(BeNumerically("<=", 75+10+1e-2))
			}
		})

		It("keeps a dense population finite and inside the boundary", func() {
			resolver.Gravity = dynamo.V(0, 10)
			boundary := physics.Constraint{Center: dynamo.V(800, 450), Radius: 400, Offset: 25}
			pop := physics.Spawn(physics.SpawnConfig{
				Min: dynamo.V(600, 300), Size: dynamo.V(200, 200),
				Radius: 25, Count: 100,
			}, rand.New(rand.NewSource(1)))

			for i := 0; i < 300; i++ {
				resolver.Update(pop, boundary, dt)
			}

			expectFinite(pop)
			resolver.ApplyConstraint(pop, boundary)
			for i := range pop {
				Expect(boundary.Contains(pop[i].Position(), 1e-9)).To(BeTrue())
			}
		})
	})
})

var _ = Describe("Overlaps", func() {
	It("counts pairs and reports the deepest penetration", func() {
		pop := physics.Population{entityAt(0, 0, 10), entityAt(15, 0, 10), entityAt(100, 0, 10), entityAt(108, 0, 10)}

		pairs, depth := physics.Overlaps(pop)

		Expect(pairs).To(Equal(2))
		Expect(depth).To(BeNumerically("~", 12, 1e-12))
	})

	It("measures a population rebuilt from a recorded frame", func() {
		pop := physics.FromFrame([]float64{0, 0, 15, 0, 100, 0}, []float64{10, 10, 10})

		Expect(pop).To(HaveLen(3))
		Expect(pop[1].Position()).To(Equal(dynamo.V(15, 0)))
		Expect(pop[1].Motion.Velocity()).To(Equal(dynamo.Vec2{}))

		pairs, depth := physics.Overlaps(pop)
		Expect(pairs).To(Equal(1))
		Expect(depth).To(BeNumerically("~", 5, 1e-12))
	})
})

var _ = Describe("Spawn", func() {
	It("places entities at rest inside the spawn rectangle", func() {
		cfg := physics.SpawnConfig{Min: dynamo.V(600, 300), Size: dynamo.V(200, 200), Radius: 25, Color: dynamo.White, Count: 100}
		pop := physics.Spawn(cfg, rand.New(rand.NewSource(42)))

		Expect(pop).To(HaveLen(100))
		for i := range pop {
			p := pop[i].Position()
			Expect(p.X).To(And(BeNumerically(">=", 600), BeNumerically("<", 800)))
			Expect(p.Y).To(And(BeNumerically(">=", 300), BeNumerically("<", 500)))
			Expect(pop[i].Motion.Velocity().IsZero()).To(BeTrue())
			Expect(pop[i].Radius()).To(Equal(25.0))
		}
	})

	It("is reproducible for a fixed seed", func() {
		cfg := physics.SpawnConfig{Size: dynamo.V(10, 10), Radius: 1, Count: 20}
		a := physics.Spawn(cfg, rand.New(rand.NewSource(3)))
		b := physics.Spawn(cfg, rand.New(rand.NewSource(3)))
		Expect(a).To(Equal(b))
	})
})
