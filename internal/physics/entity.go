package physics

import "github.com/san-kum/balls/internal/dynamo"

// Entity is a circular body. Its radius is fixed at construction.
type Entity struct {
	radius float64
	Color  dynamo.RGBA
	Motion Motion
}

func NewEntity(radius float64, color dynamo.RGBA, motion Motion) Entity {
	return Entity{radius: radius, Color: color, Motion: motion}
}

func (e *Entity) Radius() float64       { return e.radius }
func (e *Entity) Position() dynamo.Vec2 { return e.Motion.Position }

// Population is the index-addressed set of simulated entities. Its order
// is stable for the lifetime of a simulation.
type Population []Entity

// Clone returns a deep copy, used to snapshot and reset runs.
func (p Population) Clone() Population {
	c := make(Population, len(p))
	copy(c, p)
	return c
}

// Positions appends every entity position to dst as x0, y0, x1, y1, ...
func (p Population) Positions(dst []float64) []float64 {
	for i := range p {
		dst = append(dst, p[i].Motion.Position.X, p[i].Motion.Position.Y)
	}
	return dst
}

// FromFrame rebuilds a stationary population from a flat x0, y0, x1, y1,
// ... frame, one entity per radius. Missing coordinates stay at zero.
func FromFrame(frame, radii []float64) Population {
	pop := make(Population, len(radii))
	for i, r := range radii {
		var x, y float64
		if 2*i+1 < len(frame) {
			x, y = frame[2*i], frame[2*i+1]
		}
		pop[i] = NewEntity(r, dynamo.White, NewMotion(x, y))
	}
	return pop
}

func (p Population) Radii() []float64 {
	r := make([]float64, len(p))
	for i := range p {
		r[i] = p[i].radius
	}
	return r
}

// Valid reports the index of the first entity holding a NaN or Inf
// position, or -1 when all positions are finite.
func (p Population) Valid() int {
	for i := range p {
		if !p[i].Motion.Position.IsValid() {
			return i
		}
	}
	return -1
}
