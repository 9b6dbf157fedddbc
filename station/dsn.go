package station

import (
	"fmt"

	"github.com/signalsfoundry/groundstation-registry/model"
)

// Complex identifies a Deep Space Network communications complex.
type Complex string

const (
	ComplexGoldstone Complex = "gdscc" // Goldstone Deep Space Communications Complex
	ComplexCanberra  Complex = "cdscc" // Canberra Deep Space Communication Complex
	ComplexMadrid    Complex = "mdscc" // Madrid Deep Space Communications Complex
)

type dsnEntry struct {
	name    string
	complex Complex
	x, y, z float64 // ITRF Cartesian metres
}

// DSN antenna reference positions (ITRF Cartesian, metres).
var dsnCatalog = []dsnEntry{
	{"DSS-13", ComplexGoldstone, -2351112.659, -4655530.636, 3660912.728},
	{"DSS-14", ComplexGoldstone, -2353621.420, -4641341.472, 3677052.318},
	{"DSS-15", ComplexGoldstone, -2353538.958, -4641649.429, 3676669.984},
	{"DSS-24", ComplexGoldstone, -2354906.711, -4646840.095, 3669242.325},
	{"DSS-25", ComplexGoldstone, -2355022.014, -4646953.204, 3669040.567},
	{"DSS-26", ComplexGoldstone, -2354890.797, -4647166.328, 3668871.755},
	{"DSS-34", ComplexCanberra, -4461147.093, 2682439.239, -3674393.133},
	{"DSS-35", ComplexCanberra, -4461273.090, 2682568.925, -3674152.093},
	{"DSS-36", ComplexCanberra, -4461168.415, 2682814.657, -3674083.901},
	{"DSS-43", ComplexCanberra, -4460894.917, 2682361.507, -3674748.152},
	{"DSS-45", ComplexCanberra, -4460935.578, 2682765.661, -3674380.982},
	{"DSS-54", ComplexMadrid, 4849434.488, -360723.900, 4114618.835},
	{"DSS-55", ComplexMadrid, 4849525.256, -360606.093, 4114495.084},
	{"DSS-63", ComplexMadrid, 4849092.518, -360180.348, 4115109.251},
	{"DSS-65", ComplexMadrid, 4849339.634, -360427.664, 4114750.733},
}

// DSNStations returns settings for the Deep Space Network antennas at
// the Goldstone, Canberra, and Madrid complexes. Positions are ITRF
// Cartesian metres. Any motion settings given are attached to every
// returned station.
func DSNStations(motion ...model.MotionSettings) ([]model.GroundStationSettings, error) {
	return dsnStations(dsnCatalog, motion)
}

// DSNStationsForComplex returns settings for the antennas of a single
// DSN complex.
func DSNStationsForComplex(c Complex, motion ...model.MotionSettings) ([]model.GroundStationSettings, error) {
	entries := make([]dsnEntry, 0, len(dsnCatalog))
	for _, e := range dsnCatalog {
		if e.complex == c {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: unknown DSN complex %q", ErrInvalidStation, c)
	}
	return dsnStations(entries, motion)
}

func dsnStations(entries []dsnEntry, motion []model.MotionSettings) ([]model.GroundStationSettings, error) {
	stations := make([]model.GroundStationSettings, 0, len(entries))
	for _, e := range entries {
		s, err := New(e.name, model.CartesianPosition(e.x, e.y, e.z), motion...)
		if err != nil {
			return nil, fmt.Errorf("DSN station %s: %w", e.name, err)
		}
		stations = append(stations, s)
	}
	return stations, nil
}
