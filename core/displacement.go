package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/groundstation-registry/model"
)

// DisplacementModel evaluates a station displacement for a given epoch.
type DisplacementModel interface {
	DisplacementAt(epoch time.Time) model.Displacement
}

// linearDisplacement applies Δr = v · (t − t_ref).
type linearDisplacement struct {
	velocity model.Displacement // m/s per axis
	refEpoch time.Time
}

func (m *linearDisplacement) DisplacementAt(epoch time.Time) model.Displacement {
	return m.velocity.Scale(epoch.Sub(m.refEpoch).Seconds())
}

// piecewiseConstantDisplacement returns the displacement associated with
// the greatest epoch ≤ t. Epochs are kept sorted ascending so lookups
// are a binary search.
type piecewiseConstantDisplacement struct {
	epochs        []time.Time
	displacements []model.Displacement
}

func (m *piecewiseConstantDisplacement) DisplacementAt(epoch time.Time) model.Displacement {
	// First index whose epoch is strictly after the query; the interval
	// owner is the entry just before it. The boundary is inclusive of
	// the lower key.
	idx := sort.Search(len(m.epochs), func(i int) bool {
		return m.epochs[i].After(epoch)
	})
	if idx == 0 {
		// Query precedes the earliest epoch: no displacement applies yet.
		return model.Displacement{}
	}
	return m.displacements[idx-1]
}

// customDisplacement delegates to a caller-supplied function.
type customDisplacement struct {
	fn func(time.Time) model.Displacement
}

func (m *customDisplacement) DisplacementAt(epoch time.Time) model.Displacement {
	return m.fn(epoch)
}

// NewDisplacementModel builds the evaluation model for a single motion
// settings variant.
func NewDisplacementModel(s model.MotionSettings) (DisplacementModel, error) {
	switch v := s.(type) {
	case model.LinearMotionSettings:
		return &linearDisplacement{velocity: v.Velocity, refEpoch: v.ReferenceEpoch}, nil

	case model.PiecewiseConstantMotionSettings:
		if len(v.Displacements) == 0 {
			return nil, fmt.Errorf("NewDisplacementModel: piecewise-constant settings have no entries")
		}
		epochs := make([]time.Time, 0, len(v.Displacements))
		for epoch := range v.Displacements {
			epochs = append(epochs, epoch)
		}
		sort.Slice(epochs, func(i, j int) bool { return epochs[i].Before(epochs[j]) })

		displacements := make([]model.Displacement, len(epochs))
		for i, epoch := range epochs {
			displacements[i] = v.Displacements[epoch]
		}
		return &piecewiseConstantDisplacement{epochs: epochs, displacements: displacements}, nil

	case model.CustomMotionSettings:
		if v.DisplacementFunc == nil {
			return nil, fmt.Errorf("NewDisplacementModel: custom settings have no displacement function")
		}
		return &customDisplacement{fn: v.DisplacementFunc}, nil

	case nil:
		return nil, fmt.Errorf("NewDisplacementModel: nil motion settings")

	default:
		return nil, fmt.Errorf("NewDisplacementModel: unsupported motion settings type %T", s)
	}
}

// StationModel evaluates a station's body-fixed position over time:
// the resolved nominal position plus the sum of all motion-model
// displacements, in the order the settings listed them.
type StationModel struct {
	nominal Vec3
	motion  []DisplacementModel
}

// NewStationModel resolves the nominal position and compiles every
// motion settings entry into its displacement model.
func NewStationModel(s model.GroundStationSettings) (*StationModel, error) {
	nominal, err := ResolvePosition(s.Position)
	if err != nil {
		return nil, fmt.Errorf("station %q: %w", s.Name, err)
	}

	motion := make([]DisplacementModel, 0, len(s.Motion))
	for i, ms := range s.Motion {
		dm, err := NewDisplacementModel(ms)
		if err != nil {
			return nil, fmt.Errorf("station %q: motion[%d]: %w", s.Name, i, err)
		}
		motion = append(motion, dm)
	}

	return &StationModel{nominal: nominal, motion: motion}, nil
}

// NominalPosition returns the resolved nominal position in metres.
func (m *StationModel) NominalPosition() Vec3 {
	return m.nominal
}

// DisplacementAt returns the summed displacement of all motion models.
func (m *StationModel) DisplacementAt(epoch time.Time) model.Displacement {
	var total model.Displacement
	for _, dm := range m.motion {
		total = total.Add(dm.DisplacementAt(epoch))
	}
	return total
}

// PositionAt returns the station's body-fixed position at the epoch.
func (m *StationModel) PositionAt(epoch time.Time) Vec3 {
	d := m.DisplacementAt(epoch)
	return m.nominal.Add(Vec3{X: d.X, Y: d.Y, Z: d.Z})
}
