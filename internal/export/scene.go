package export

import (
	"github.com/san-kum/balls/internal/config"
	"github.com/san-kum/balls/internal/storage"
)

// SceneFromRun builds the scene for one stored frame using the colors the
// run was saved with. Runs stored without colors use the defaults.
func SceneFromRun(meta *storage.RunMetadata, frame []float64) Scene {
	def := config.DefaultConfig()
	pick := func(saved, fallback string) string {
		if saved == "" {
			return fallback
		}
		return saved
	}
	return Scene{
		Frame:          frame,
		Radii:          meta.Radii,
		Center:         meta.Boundary.Center,
		BoundaryRadius: meta.Boundary.Radius,
		Background:     pick(meta.Colors.Background, def.Background),
		EntityColor:    pick(meta.Colors.Entity, def.Entity.Color),
		BoundaryColor:  pick(meta.Colors.Boundary, def.Boundary.Color),
	}
}
