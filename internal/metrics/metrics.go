package metrics

import "github.com/san-kum/balls/internal/sim"

// Default returns the metrics attached to every headless run. tolerance is
// how far past the boundary limit an entity may sit after a tick before it
// counts as escaped.
func Default(tolerance float64) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewContainment(tolerance),
		NewOverlap(),
	}
}
