package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/balls/internal/dynamo"
)

// circleSides approximates a circle with a regular polygon.
const circleSides = 100

func drawCircle(center dynamo.Vec2, radius float64, c dynamo.RGBA) {
	rl.DrawPoly(vec(center), circleSides, float32(radius), 0, toColor(c))
}

func vec(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

// draw paints the boundary disc, then every entity on top of it.
func (a *App) draw() {
	drawCircle(a.Boundary.Center, a.Boundary.Radius, a.Boundary.Color)
	for i := range a.Population {
		e := &a.Population[i]
		drawCircle(e.Position(), e.Radius(), e.Color)
	}
}

func (a *App) drawStats() {
	y := int32(10)
	line := func(text string, col rl.Color) {
		rl.DrawText(text, 10, y, 20, col)
		y += 24
	}
	rl.DrawFPS(10, y)
	y += 24
	line(fmt.Sprintf("t = %.2fs", a.time), ColText)
	line(fmt.Sprintf("entities = %d", len(a.Population)), ColText)
	if a.Paused {
		line("PAUSED", ColText)
	}
	line("SPACE pause  R reset  TAB stats  ESC quit", ColTextDim)
}
