package physics

import (
	"math"
	"testing"

	"github.com/san-kum/balls/internal/dynamo"
)

func TestMotionAtRestStaysPut(t *testing.T) {
	for _, dt := range []float64{0, 0.001, 0.016, 0.5, 10} {
		m := NewMotion(12.5, -3)
		m.Integrate(dt)
		if m.Position != dynamo.V(12.5, -3) {
			t.Errorf("dt=%v: expected position unchanged, got %v", dt, m.Position)
		}
		if m.PreviousPosition != dynamo.V(12.5, -3) {
			t.Errorf("dt=%v: expected previous position unchanged, got %v", dt, m.PreviousPosition)
		}
	}
}

func TestMotionVelocityInference(t *testing.T) {
	tests := []struct {
		name string
		pos  dynamo.Vec2
		vel  dynamo.Vec2
		dt   float64
	}{
		{"frame", dynamo.V(100, 200), dynamo.V(3, -4), 0.016},
		{"unit step", dynamo.V(0, 0), dynamo.V(1, 1), 1},
		{"large step", dynamo.V(-5, 5), dynamo.V(0.5, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Motion{Position: tt.pos, PreviousPosition: tt.pos.Sub(tt.vel)}
			m.Integrate(tt.dt)

			want := tt.pos.Add(tt.vel.Scale(tt.dt * tt.dt))
			if math.Abs(m.Position.X-want.X) > 1e-9 || math.Abs(m.Position.Y-want.Y) > 1e-9 {
				t.Errorf("position = %v, want %v", m.Position, want)
			}
			if m.PreviousPosition != tt.pos {
				t.Errorf("previous position = %v, want %v", m.PreviousPosition, tt.pos)
			}
		})
	}
}

func TestMotionAccelerationAddedAtFullMagnitude(t *testing.T) {
	m := NewMotion(0, 0)
	m.Accelerate(dynamo.V(0, 10))
	m.Integrate(0.016)

	if m.Position != dynamo.V(0, 10) {
		t.Errorf("expected (0, 10), got %v", m.Position)
	}
	if !m.Acceleration.IsZero() {
		t.Errorf("expected acceleration reset, got %v", m.Acceleration)
	}
	if m.Velocity() != dynamo.V(0, 10) {
		t.Errorf("expected implicit velocity (0, 10), got %v", m.Velocity())
	}
}

func TestMotionAccelerationAccumulates(t *testing.T) {
	g := dynamo.V(0.3, 9.81)
	dt := 0.016

	twice := Motion{Position: dynamo.V(1, 1), PreviousPosition: dynamo.V(0.5, 1.2)}
	once := twice

	twice.Accelerate(g)
	twice.Accelerate(g)
	twice.Integrate(dt)

	once.Accelerate(g.Scale(2))
	once.Integrate(dt)

	if twice.Position != once.Position {
		t.Errorf("accelerate(g) twice = %v, accelerate(2g) once = %v", twice.Position, once.Position)
	}
}
