package metrics

import (
	"math"

	"github.com/san-kum/balls/internal/physics"
)

// Containment is the fraction of ticks on which every entity lies within
// the boundary limit plus tolerance. It also tracks the largest excursion
// past the limit.
type Containment struct {
	name       string
	tolerance  float64
	violations int
	samples    int
	excursion  float64
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(pop physics.Population, boundary physics.Constraint, _ float64) {
	c.samples++
	violated := false
	for i := range pop {
		over := pop[i].Position().Sub(boundary.Center).Len() - boundary.Limit()
		c.excursion = math.Max(c.excursion, over)
		if over > c.tolerance {
			violated = true
		}
	}
	if violated {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

// MaxExcursion is the farthest any entity was seen past the limit.
func (c *Containment) MaxExcursion() float64 {
	return c.excursion
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
	c.excursion = 0
}
