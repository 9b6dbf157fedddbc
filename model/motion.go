package model

import "time"

// Displacement is a body-fixed offset in metres. It is also used for
// per-second displacement rates in linear motion settings.
type Displacement struct {
	X float64
	Y float64
	Z float64
}

// Add returns d + other.
func (d Displacement) Add(other Displacement) Displacement {
	return Displacement{X: d.X + other.X, Y: d.Y + other.Y, Z: d.Z + other.Z}
}

// Scale returns d scaled by f.
func (d Displacement) Scale(f float64) Displacement {
	return Displacement{X: d.X * f, Y: d.Y * f, Z: d.Z * f}
}

// MotionSettings describes a time-dependent displacement applied on top
// of a station's nominal position. Variants are plain data; evaluation
// lives in the core package.
type MotionSettings interface {
	motionSettings()
}

// LinearMotionSettings displaces a station linearly in time:
// Δr(t) = Velocity · (t − ReferenceEpoch), with Velocity in m/s.
type LinearMotionSettings struct {
	Velocity       Displacement
	ReferenceEpoch time.Time
}

func (LinearMotionSettings) motionSettings() {}

// PiecewiseConstantMotionSettings displaces a station by the value
// associated with the greatest epoch not after the query time. The
// boundary is inclusive: querying at an epoch key yields that key's
// displacement. Queries before the earliest epoch yield no displacement.
type PiecewiseConstantMotionSettings struct {
	Displacements map[time.Time]Displacement
}

func (PiecewiseConstantMotionSettings) motionSettings() {}

// CustomMotionSettings delegates displacement to a caller-supplied
// function of the query epoch.
type CustomMotionSettings struct {
	DisplacementFunc func(epoch time.Time) Displacement
}

func (CustomMotionSettings) motionSettings() {}
