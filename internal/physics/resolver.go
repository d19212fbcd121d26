package physics

import "github.com/san-kum/balls/internal/dynamo"

// Resolver runs the per-tick pipeline. It holds no state besides gravity.
type Resolver struct {
	Gravity dynamo.Vec2
}

func NewResolver(gravity dynamo.Vec2) *Resolver {
	return &Resolver{Gravity: gravity}
}

// Update advances pop by one tick of length dt. Each phase completes over
// the whole population before the next starts.
func (r *Resolver) Update(pop Population, c Constraint, dt float64) {
	r.ApplyGravity(pop)
	r.ApplyConstraint(pop, c)
	r.ApplyCollisions(pop)
	r.Integrate(pop, dt)
}

func (r *Resolver) ApplyGravity(pop Population) {
	for i := range pop {
		pop[i].Motion.Accelerate(r.Gravity)
	}
}

func (r *Resolver) ApplyConstraint(pop Population, c Constraint) {
	for i := range pop {
		c.Clamp(&pop[i].Motion)
	}
}

// ApplyCollisions separates every overlapping pair once, in ascending
// (i, j) order, splitting the correction equally between the two bodies.
// The boundary is not re-checked afterwards.
func (r *Resolver) ApplyCollisions(pop Population) {
	n := len(pop)
	if n < 2 {
		return
	}

	for i := 0; i < n-1; i++ {
		a := &pop[i]
		for j := i + 1; j < n; j++ {
			b := &pop[j]
			separate(a, b)
		}
	}
}

func separate(a, b *Entity) {
	axis := a.Motion.Position.Sub(b.Motion.Position)
	minDist := a.radius + b.radius

	distance := axis.Len()
	if distance >= minDist {
		return
	}

	n, ok := axis.Normalize()
	if !ok {
		n = dynamo.UnitX
	}
	half := n.Scale(0.5 * (minDist - distance))

	a.Motion.Position = a.Motion.Position.Add(half)
	b.Motion.Position = b.Motion.Position.Sub(half)
}

func (r *Resolver) Integrate(pop Population, dt float64) {
	for i := range pop {
		pop[i].Motion.Integrate(dt)
	}
}

// Overlaps counts overlapping pairs and reports the deepest penetration.
func Overlaps(pop Population) (pairs int, maxDepth float64) {
	for i := 0; i < len(pop)-1; i++ {
		for j := i + 1; j < len(pop); j++ {
			depth := pop[i].radius + pop[j].radius - pop[i].Motion.Position.Dist(pop[j].Motion.Position)
			if depth > 0 {
				pairs++
				if depth > maxDepth {
					maxDepth = depth
				}
			}
		}
	}
	return pairs, maxDepth
}
