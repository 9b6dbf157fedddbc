// Package station builds ground-station configuration objects for
// registration with a body registry. Factories validate their inputs
// and return plain model settings; evaluation lives in the core package.
package station

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/signalsfoundry/groundstation-registry/model"
)

var (
	// ErrInvalidStation indicates ground-station settings failed validation.
	ErrInvalidStation = errors.New("invalid ground station settings")
	// ErrInvalidMotion indicates station motion settings failed validation.
	ErrInvalidMotion = errors.New("invalid station motion settings")
)

// New builds ground-station settings from a name, a nominal position,
// and an optional ordered list of motion settings. The motion slice is
// copied; callers may reuse theirs afterwards.
func New(name string, pos model.Position, motion ...model.MotionSettings) (model.GroundStationSettings, error) {
	if strings.TrimSpace(name) == "" {
		return model.GroundStationSettings{}, fmt.Errorf("%w: name is required", ErrInvalidStation)
	}
	if err := validatePosition(pos); err != nil {
		return model.GroundStationSettings{}, err
	}

	var ms []model.MotionSettings
	if len(motion) > 0 {
		ms = make([]model.MotionSettings, len(motion))
		for i, m := range motion {
			if m == nil {
				return model.GroundStationSettings{}, fmt.Errorf("%w: motion[%d] is nil", ErrInvalidMotion, i)
			}
			ms[i] = m
		}
	}

	return model.GroundStationSettings{
		Name:     name,
		Position: pos,
		Motion:   ms,
	}, nil
}

func validatePosition(pos model.Position) error {
	for i, e := range pos.Elements {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("%w: position element %d is not finite", ErrInvalidStation, i)
		}
	}

	switch pos.Type {
	case model.PositionCartesian:
		return nil
	case model.PositionSpherical:
		if pos.Elements[0] <= 0 {
			return fmt.Errorf("%w: spherical radius must be positive", ErrInvalidStation)
		}
		return validateLatitude(pos.Elements[1])
	case model.PositionGeodetic:
		return validateLatitude(pos.Elements[1])
	default:
		return fmt.Errorf("%w: unknown position type %d", ErrInvalidStation, pos.Type)
	}
}

func validateLatitude(latDeg float64) error {
	if latDeg < -90 || latDeg > 90 {
		return fmt.Errorf("%w: latitude %g out of range [-90, 90]", ErrInvalidStation, latDeg)
	}
	return nil
}
