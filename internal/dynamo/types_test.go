package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(3); got != V(3, 6) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := b.Div(2); got != V(2, 3) {
		t.Errorf("Div failed: got %v", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len failed: got %v", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist failed: got %v", got)
	}
}

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
		ok   bool
	}{
		{"axis", V(0, 5), V(0, 1), true},
		{"diagonal", V(3, 4), V(0.6, 0.8), true},
		{"negative", V(-2, 0), V(-1, 0), true},
		{"zero", Vec2{}, Vec2{}, false},
		{"huge", V(1e200, 1e200), V(1/math.Sqrt2, 1/math.Sqrt2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Normalize()
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", V(1, -2), true},
		{"NaN", V(math.NaN(), 0), false},
		{"+Inf", V(0, math.Inf(1)), false},
		{"-Inf", V(math.Inf(-1), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c != (RGBA{255, 128, 0, 255}) {
		t.Errorf("got %+v", c)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("Hex() = %s", c.Hex())
	}

	c, err = ParseHex("#10203040")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c.A != 0x40 {
		t.Errorf("expected alpha 0x40, got %#x", c.A)
	}

	if _, err := ParseHex("red"); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Entity: 3, Wrapped: ErrInvalidState}
	want := "step 150 (t=1.5000) entity 3: dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimulationError should unwrap to ErrInvalidState")
	}
}
