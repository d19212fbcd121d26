package metrics

import (
	"math"

	"github.com/san-kum/balls/internal/physics"
)

// Overlap records the deepest penetration between any two entities seen
// after a tick.
type Overlap struct {
	name     string
	maxDepth float64
	pairs    int
	samples  int
}

func NewOverlap() *Overlap {
	return &Overlap{name: "max_overlap"}
}

func (o *Overlap) Name() string {
	return o.name
}

func (o *Overlap) Observe(pop physics.Population, _ physics.Constraint, _ float64) {
	pairs, depth := physics.Overlaps(pop)
	o.pairs += pairs
	o.maxDepth = math.Max(o.maxDepth, depth)
	o.samples++
}

func (o *Overlap) Value() float64 {
	return o.maxDepth
}

// MeanPairs is the average number of overlapping pairs per tick.
func (o *Overlap) MeanPairs() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.pairs) / float64(o.samples)
}

func (o *Overlap) Reset() {
	o.maxDepth = 0
	o.pairs = 0
	o.samples = 0
}
