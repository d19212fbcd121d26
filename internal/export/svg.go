package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/balls/internal/analysis"
	"github.com/san-kum/balls/internal/dynamo"
	"github.com/san-kum/balls/internal/physics"
	"github.com/san-kum/balls/internal/viz"
)

// Scene is one frame of a run with everything needed to draw it.
type Scene struct {
	Frame          []float64
	Radii          []float64
	Center         [2]float64
	BoundaryRadius float64
	Background     string
	EntityColor    string
	BoundaryColor  string
}

// SceneToSVG draws the boundary disc and every entity as a filled circle,
// cropped to the boundary's bounding box.
func SceneToSVG(s Scene) string {
	pad := s.BoundaryRadius * 0.05
	minX := s.Center[0] - s.BoundaryRadius - pad
	minY := s.Center[1] - s.BoundaryRadius - pad
	size := 2 * (s.BoundaryRadius + pad)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.1f %.1f %.1f %.1f">
<rect x="%.1f" y="%.1f" width="100%%" height="100%%" fill="%s"/>
<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
<g fill="%s">
`, size, size, minX, minY, size, size, minX, minY, s.Background,
		s.Center[0], s.Center[1], s.BoundaryRadius, s.BoundaryColor, s.EntityColor)

	for i := 0; 2*i+1 < len(s.Frame) && i < len(s.Radii); i++ {
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f"/>
`, s.Frame[2*i], s.Frame[2*i+1], s.Radii[i])
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SceneToBrailleSVG draws the scene onto a cols x rows braille canvas, the
// way the live view shows it, and renders each lit dot.
func SceneToBrailleSVG(s Scene, cols, rows int, scale float64) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	boundary := physics.Constraint{
		Center: dynamo.V(s.Center[0], s.Center[1]),
		Radius: s.BoundaryRadius,
	}
	canvas := viz.NewCanvas(cols, rows)
	viz.DrawScene(canvas, boundary, s.Frame, s.Radii)
	return CanvasToSVG(canvas, scale, s.Background, s.EntityColor)
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, background, dotColor string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, dotColor)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws the path of one entity as a polyline.
func TrajectoryToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
