package station

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/groundstation-registry/model"
)

func TestNew_Valid(t *testing.T) {
	motion, err := LinearMotion(model.Displacement{X: 0.1}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LinearMotion: %v", err)
	}

	s, err := New("gs1", model.CartesianPosition(6371000, 0, 0), motion)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Name != "gs1" {
		t.Fatalf("name = %q, want gs1", s.Name)
	}
	if s.Position.Type != model.PositionCartesian {
		t.Fatalf("position type = %v, want cartesian", s.Position.Type)
	}
	if len(s.Motion) != 1 {
		t.Fatalf("motion entries = %d, want 1", len(s.Motion))
	}
}

func TestNew_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		station string
		pos     model.Position
		motion  []model.MotionSettings
	}{
		{"empty name", "  ", model.CartesianPosition(1, 2, 3), nil},
		{"unknown position type", "gs", model.Position{Type: model.PositionType(7)}, nil},
		{"non-finite element", "gs", model.CartesianPosition(math.NaN(), 0, 0), nil},
		{"infinite element", "gs", model.CartesianPosition(0, math.Inf(1), 0), nil},
		{"zero spherical radius", "gs", model.SphericalPosition(0, 10, 20), nil},
		{"spherical latitude out of range", "gs", model.SphericalPosition(6371000, 91, 0), nil},
		{"geodetic latitude out of range", "gs", model.GeodeticPosition(0, -90.5, 0), nil},
		{"nil motion entry", "gs", model.CartesianPosition(1, 2, 3), []model.MotionSettings{nil}},
	}
	for _, tc := range cases {
		_, err := New(tc.station, tc.pos, tc.motion...)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, ErrInvalidStation) && !errors.Is(err, ErrInvalidMotion) {
			t.Fatalf("%s: error %v is not a validation sentinel", tc.name, err)
		}
	}
}

func TestNew_CopiesMotionSlice(t *testing.T) {
	motion, err := CustomMotion(func(time.Time) model.Displacement { return model.Displacement{} })
	if err != nil {
		t.Fatalf("CustomMotion: %v", err)
	}
	input := []model.MotionSettings{motion}

	s, err := New("gs1", model.CartesianPosition(1, 2, 3), input...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	input[0] = nil
	if s.Motion[0] == nil {
		t.Fatalf("settings share the caller's motion slice")
	}
}
