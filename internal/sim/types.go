package sim

import "github.com/san-kum/balls/internal/physics"

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(pop physics.Population, boundary physics.Constraint, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick with the updated population.
type Observer interface {
	OnStep(pop physics.Population, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
	// RecordEvery keeps one frame out of every RecordEvery ticks. Values
	// below 1 record every tick.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.016,
		Duration:      10.0,
		ValidateState: true,
		RecordEvery:   1,
	}
}

// Result holds recorded frames as flat x0, y0, x1, y1, ... position slices.
type Result struct {
	Frames     [][]float64
	Times      []float64
	Radii      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Frame returns the position of every entity at recorded frame i.
func (r *Result) Frame(i int) [][2]float64 {
	f := r.Frames[i]
	out := make([][2]float64, len(f)/2)
	for k := range out {
		out[k] = [2]float64{f[2*k], f[2*k+1]}
	}
	return out
}
