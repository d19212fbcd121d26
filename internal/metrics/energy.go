package metrics

import "github.com/san-kum/balls/internal/physics"

// KineticEnergy averages 0.5 * sum(|v|^2) over ticks, where v is the
// per-tick displacement of each entity. Masses are uniform.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(pop physics.Population, _ physics.Constraint, _ float64) {
	e.totalEnergy += Kinetic(pop)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// Kinetic is the instantaneous kinetic energy of pop.
func Kinetic(pop physics.Population) float64 {
	sum := 0.0
	for i := range pop {
		sum += 0.5 * pop[i].Motion.Velocity().LenSq()
	}
	return sum
}

// KineticFromFrames computes the same quantity from two consecutive
// recorded frames.
func KineticFromFrames(prev, cur []float64) float64 {
	sum := 0.0
	for i := 0; i+1 < len(cur) && i+1 < len(prev); i += 2 {
		dx, dy := cur[i]-prev[i], cur[i+1]-prev[i+1]
		sum += 0.5 * (dx*dx + dy*dy)
	}
	return sum
}
