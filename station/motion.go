package station

import (
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/groundstation-registry/model"
)

// LinearMotion builds settings that displace a station linearly in time:
// Δr(t) = velocity · (t − refEpoch), velocity in m/s.
func LinearMotion(velocity model.Displacement, refEpoch time.Time) (model.MotionSettings, error) {
	if !finite(velocity) {
		return nil, fmt.Errorf("%w: linear velocity is not finite", ErrInvalidMotion)
	}
	return model.LinearMotionSettings{Velocity: velocity, ReferenceEpoch: refEpoch}, nil
}

// PiecewiseConstantMotion builds settings that displace a station by the
// value of the nearest epoch at or below the query time. The map is
// copied; callers may reuse theirs afterwards.
func PiecewiseConstantMotion(displacements map[time.Time]model.Displacement) (model.MotionSettings, error) {
	if len(displacements) == 0 {
		return nil, fmt.Errorf("%w: piecewise-constant motion needs at least one entry", ErrInvalidMotion)
	}
	copied := make(map[time.Time]model.Displacement, len(displacements))
	for epoch, d := range displacements {
		if !finite(d) {
			return nil, fmt.Errorf("%w: displacement at %s is not finite", ErrInvalidMotion, epoch.Format(time.RFC3339))
		}
		copied[epoch] = d
	}
	return model.PiecewiseConstantMotionSettings{Displacements: copied}, nil
}

// CustomMotion builds settings whose displacement is computed by the
// supplied function of the query epoch.
func CustomMotion(fn func(epoch time.Time) model.Displacement) (model.MotionSettings, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: custom motion needs a displacement function", ErrInvalidMotion)
	}
	return model.CustomMotionSettings{DisplacementFunc: fn}, nil
}

func finite(d model.Displacement) bool {
	for _, v := range [3]float64{d.X, d.Y, d.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
