package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/balls/internal/dynamo"
)

func TestNewConstraint(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		offset float64
		ok     bool
	}{
		{"default", 400, 25, true},
		{"no offset", 10, 0, true},
		{"negative offset", 10, -1, false},
		{"offset equals radius", 10, 10, false},
		{"offset exceeds radius", 10, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConstraint(dynamo.Vec2{}, tt.radius, tt.offset, dynamo.Gray)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestConstraintClamp(t *testing.T) {
	c := Constraint{Center: dynamo.V(800, 450), Radius: 400, Offset: 25}

	tests := []struct {
		name string
		pos  dynamo.Vec2
		want dynamo.Vec2
	}{
		{"inside", dynamo.V(900, 450), dynamo.V(900, 450)},
		{"center", dynamo.V(800, 450), dynamo.V(800, 450)},
		{"on limit", dynamo.V(1175, 450), dynamo.V(1175, 450)},
		{"right", dynamo.V(1300, 450), dynamo.V(1175, 450)},
		{"below", dynamo.V(800, 1000), dynamo.V(800, 825)},
		{"diagonal", dynamo.V(800+300, 450+400), dynamo.V(800+225, 450+300)},
		{"huge coordinates", dynamo.V(1e200, 1e200), dynamo.V(800+375/math.Sqrt2, 450+375/math.Sqrt2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMotion(tt.pos.X, tt.pos.Y)
			c.Clamp(&m)
			if math.Abs(m.Position.X-tt.want.X) > 1e-9 || math.Abs(m.Position.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Clamp(%v) = %v, want %v", tt.pos, m.Position, tt.want)
			}
		})
	}
}

func TestConstraintClampKeepsPreviousPosition(t *testing.T) {
	c := Constraint{Radius: 100, Offset: 0}
	m := Motion{Position: dynamo.V(150, 0), PreviousPosition: dynamo.V(140, 0)}
	c.Clamp(&m)

	if m.PreviousPosition != dynamo.V(140, 0) {
		t.Errorf("clamp must not touch previous position, got %v", m.PreviousPosition)
	}
}
