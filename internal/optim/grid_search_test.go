package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/metrics"
	"github.com/san-kum/balls/internal/physics"
	"github.com/san-kum/balls/internal/sim"
)

// ticks counts the ticks a run observed.
type ticks struct{ n int }

func (t *ticks) Name() string                                            { return "ticks" }
func (t *ticks) Observe(physics.Population, physics.Constraint, float64) { t.n++ }
func (t *ticks) Value() float64                                          { return float64(t.n) }
func (t *ticks) Reset()                                                  { t.n = 0 }

func build(params map[string]float64) (*sim.Simulator, sim.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Entity.Count = 1
	cfg.Duration = 0.16
	for k, v := range params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, sim.Config{}, err
		}
	}
	pop, boundary, resolver, err := cfg.World()
	if err != nil {
		return nil, sim.Config{}, err
	}
	s := sim.New(pop, boundary, resolver)
	s.AddMetric(metrics.NewKineticEnergy())
	s.AddMetric(&ticks{})
	return s, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}, nil
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]string{"gravity_y", "gravity_x"}, [][]float64{{20, 0, 5}, {0, 3}})
	if g.Size() != 6 {
		t.Errorf("expected 6 combinations, got %d", g.Size())
	}

	params, best, err := g.Search(context.Background(), build, "kinetic_energy")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if params["gravity_y"] != 0 || params["gravity_x"] != 0 {
		t.Errorf("expected zero gravity to win, got %v", params)
	}
	if best != 0 {
		t.Errorf("expected zero kinetic energy, got %v", best)
	}
}

func TestGridSearchRunSettings(t *testing.T) {
	tests := []struct {
		name  string
		param string
		grid  []float64
		want  float64
		ticks float64
	}{
		{"dt", "dt", []float64{0.008, 0.032, 0.016}, 0.032, 5},
		{"duration", "duration", []float64{0.32, 0.16, 0.64}, 0.16, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGridSearch([]string{tt.param}, [][]float64{tt.grid})
			params, best, err := g.Search(context.Background(), build, "ticks")
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if params[tt.param] != tt.want {
				t.Errorf("best %s = %v, want %v", tt.param, params[tt.param], tt.want)
			}
			if best != tt.ticks {
				t.Errorf("expected %v ticks, got %v", tt.ticks, best)
			}
		})
	}
}

func TestGridSearchErrors(t *testing.T) {
	g := NewGridSearch([]string{"mass"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), build, "kinetic_energy"); err == nil {
		t.Error("expected build error to propagate")
	}

	g = NewGridSearch([]string{"gravity_y"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), build, "nonexistent"); err == nil {
		t.Error("expected error for unknown metric")
	}

	g = NewGridSearch([]string{"gravity_y"}, nil)
	if _, _, err := g.Search(context.Background(), build, "kinetic_energy"); err == nil {
		t.Error("expected error for mismatched ranges")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g = NewGridSearch([]string{"gravity_y"}, [][]float64{{1}})
	_, _, err := g.Search(ctx, build, "kinetic_energy")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
