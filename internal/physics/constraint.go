package physics

import (
	"fmt"

	"github.com/san-kum/balls/internal/dynamo"
)

// Constraint is the circular boundary. Offset insets the clamping circle so
// that a body's edge stays on the drawn outline.
type Constraint struct {
	Center dynamo.Vec2
	Radius float64
	Offset float64
	Color  dynamo.RGBA
}

// NewConstraint validates radius > offset >= 0.
func NewConstraint(center dynamo.Vec2, radius, offset float64, color dynamo.RGBA) (Constraint, error) {
	if offset < 0 {
		return Constraint{}, fmt.Errorf("boundary offset %.4f < 0: %w", offset, dynamo.ErrParameterBounds)
	}
	if radius <= offset {
		return Constraint{}, fmt.Errorf("boundary radius %.4f must exceed offset %.4f: %w", radius, offset, dynamo.ErrParameterBounds)
	}
	return Constraint{Center: center, Radius: radius, Offset: offset, Color: color}, nil
}

// Limit is the largest distance from Center a body's center may have.
func (c Constraint) Limit() float64 {
	return c.Radius - c.Offset
}

// Contains reports whether p lies within Limit of the center, allowing eps.
func (c Constraint) Contains(p dynamo.Vec2, eps float64) bool {
	return p.Sub(c.Center).Len() <= c.Limit()+eps
}

// Clamp moves m onto the clamping circle if it lies outside it.
func (c Constraint) Clamp(m *Motion) {
	toEntity := m.Position.Sub(c.Center)
	distance := toEntity.Len()
	limit := c.Limit()

	if distance <= limit {
		return
	}

	n, ok := toEntity.Normalize()
	if !ok {
		n = dynamo.UnitX
	}
	m.Position = c.Center.Add(n.Scale(limit))
}
