// Package analysis derives time series from recorded runs.
//
// Frames are flat position slices (x0, y0, x1, y1, ...) as written by the
// storage package:
//
//   - [CenterOfMass], [Kinetic], [Spread]: per-frame scalar series
//   - [PowerSpectrum], [DominantFrequency]: FFT of a series
//   - [EntityTrajectory], [TrajectoryToASCII]: path of one entity
//
// # Settling
//
// A population at rest shows a flat kinetic series and a spectrum with no
// dominant peak; sloshing under gravity shows up as a low-frequency peak
// in the center of mass height:
//
//	_, ys := analysis.CenterOfMass(frames)
//	f := analysis.DominantFrequency(ys, dt)
package analysis
