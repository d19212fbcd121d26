package analysis

import "math"

// CenterOfMass returns the mean x and y of every frame.
func CenterOfMass(frames [][]float64) (xs, ys []float64) {
	xs = make([]float64, len(frames))
	ys = make([]float64, len(frames))
	for i, f := range frames {
		n := len(f) / 2
		if n == 0 {
			continue
		}
		for k := 0; k < n; k++ {
			xs[i] += f[2*k]
			ys[i] += f[2*k+1]
		}
		xs[i] /= float64(n)
		ys[i] /= float64(n)
	}
	return xs, ys
}

// Kinetic returns 0.5 * sum(|dp|^2) between consecutive frames. The result
// has one element fewer than frames.
func Kinetic(frames [][]float64) []float64 {
	if len(frames) < 2 {
		return []float64{}
	}
	out := make([]float64, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		for k := 0; k+1 < len(cur) && k+1 < len(prev); k += 2 {
			dx, dy := cur[k]-prev[k], cur[k+1]-prev[k+1]
			out[i-1] += 0.5 * (dx*dx + dy*dy)
		}
	}
	return out
}

// Spread returns the mean distance of the entities from (cx, cy) per frame.
func Spread(frames [][]float64, cx, cy float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		n := len(f) / 2
		if n == 0 {
			continue
		}
		for k := 0; k < n; k++ {
			out[i] += math.Hypot(f[2*k]-cx, f[2*k+1]-cy)
		}
		out[i] /= float64(n)
	}
	return out
}
