package physics

import (
	"math/rand"

	"github.com/san-kum/balls/internal/dynamo"
)

// SpawnConfig describes where and how many entities to create.
type SpawnConfig struct {
	Min, Size dynamo.Vec2
	Radius    float64
	Color     dynamo.RGBA
	Count     int
}

// Spawn places Count entities at rest, uniformly at random inside the
// rectangle [Min, Min+Size). The same source yields the same population.
func Spawn(cfg SpawnConfig, rng *rand.Rand) Population {
	pop := make(Population, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		x := cfg.Min.X + rng.Float64()*cfg.Size.X
		y := cfg.Min.Y + rng.Float64()*cfg.Size.Y
		pop = append(pop, NewEntity(cfg.Radius, cfg.Color, NewMotion(x, y)))
	}
	return pop
}
