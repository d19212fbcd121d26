package viz

import (
	"math"

	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
)

// Viewport maps world coordinates onto canvas sub-pixels so that the whole
// boundary is visible with its aspect ratio kept.
type Viewport struct {
	scale   float64
	originX float64
	originY float64
	offsetX int
	offsetY int
}

func NewViewport(c *Canvas, boundary physics.Constraint) Viewport {
	cw, ch := float64(c.Width*2), float64(c.Height*4)
	span := 2 * boundary.Radius
	if span <= 0 {
		span = 1
	}
	scale := math.Min(cw, ch) / span * 0.95
	return Viewport{
		scale:   scale,
		originX: boundary.Center.X,
		originY: boundary.Center.Y,
		offsetX: int(cw / 2),
		offsetY: int(ch / 2),
	}
}

func (v Viewport) Project(p dynamo.Vec2) (int, int) {
	x := (p.X-v.originX)*v.scale + float64(v.offsetX)
	y := (p.Y-v.originY)*v.scale + float64(v.offsetY)
	return int(math.Round(x)), int(math.Round(y))
}

func (v Viewport) Length(l float64) int {
	return int(math.Round(l * v.scale))
}

// DrawScene renders the boundary outline and one circle per entity from a
// flat x0, y0, x1, y1, ... frame.
func DrawScene(c *Canvas, boundary physics.Constraint, frame, radii []float64) {
	vp := NewViewport(c, boundary)
	c.Clear()

	bx, by := vp.Project(boundary.Center)
	c.DrawCircle(bx, by, vp.Length(boundary.Radius))

	for i := 0; 2*i+1 < len(frame) && i < len(radii); i++ {
		x, y := vp.Project(dynamo.V(frame[2*i], frame[2*i+1]))
		c.DrawCircle(x, y, vp.Length(radii[i]))
	}
}
