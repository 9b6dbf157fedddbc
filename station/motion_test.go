package station

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/groundstation-registry/model"
)

func TestLinearMotion(t *testing.T) {
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ms, err := LinearMotion(model.Displacement{X: 0.01}, ref)
	if err != nil {
		t.Fatalf("LinearMotion: %v", err)
	}
	linear, ok := ms.(model.LinearMotionSettings)
	if !ok {
		t.Fatalf("settings are %T, want LinearMotionSettings", ms)
	}
	if !linear.ReferenceEpoch.Equal(ref) {
		t.Fatalf("reference epoch = %s, want %s", linear.ReferenceEpoch, ref)
	}

	if _, err := LinearMotion(model.Displacement{X: math.NaN()}, ref); !errors.Is(err, ErrInvalidMotion) {
		t.Fatalf("expected ErrInvalidMotion for NaN velocity, got %v", err)
	}
}

func TestPiecewiseConstantMotion(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	input := map[time.Time]model.Displacement{
		t0: {X: 1},
	}

	ms, err := PiecewiseConstantMotion(input)
	if err != nil {
		t.Fatalf("PiecewiseConstantMotion: %v", err)
	}
	pw := ms.(model.PiecewiseConstantMotionSettings)

	// The factory copies the map; later caller mutations must not leak in.
	input[t0.Add(time.Hour)] = model.Displacement{X: 99}
	if len(pw.Displacements) != 1 {
		t.Fatalf("settings share the caller's map, entries = %d", len(pw.Displacements))
	}

	if _, err := PiecewiseConstantMotion(nil); !errors.Is(err, ErrInvalidMotion) {
		t.Fatalf("expected ErrInvalidMotion for empty map, got %v", err)
	}
	if _, err := PiecewiseConstantMotion(map[time.Time]model.Displacement{
		t0: {Y: math.Inf(-1)},
	}); !errors.Is(err, ErrInvalidMotion) {
		t.Fatalf("expected ErrInvalidMotion for non-finite displacement, got %v", err)
	}
}

func TestCustomMotion(t *testing.T) {
	ms, err := CustomMotion(func(time.Time) model.Displacement { return model.Displacement{Z: 1} })
	if err != nil {
		t.Fatalf("CustomMotion: %v", err)
	}
	custom := ms.(model.CustomMotionSettings)
	if got := custom.DisplacementFunc(time.Now()); got != (model.Displacement{Z: 1}) {
		t.Fatalf("displacement func = %+v, want {Z: 1}", got)
	}

	if _, err := CustomMotion(nil); !errors.Is(err, ErrInvalidMotion) {
		t.Fatalf("expected ErrInvalidMotion for nil function, got %v", err)
	}
}
