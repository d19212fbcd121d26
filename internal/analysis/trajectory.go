package analysis

import "strings"

type Point struct{ X, Y float64 }

// EntityTrajectory extracts the path of entity idx, or nil when idx is out
// of range.
func EntityTrajectory(frames [][]float64, idx int) []Point {
	if idx < 0 {
		return nil
	}
	points := make([]Point, 0, len(frames))
	for _, f := range frames {
		if 2*idx+1 >= len(f) {
			return nil
		}
		points = append(points, Point{X: f[2*idx], Y: f[2*idx+1]})
	}
	return points
}

// TrajectoryToASCII plots points on a width x height grid. Rows grow
// downwards like screen coordinates.
func TrajectoryToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	last := len(points) - 1
	for i, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch i {
		case 0:
			canvas[row][col] = 'S'
		case last:
			canvas[row][col] = 'E'
		default:
			if canvas[row][col] == ' ' {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
