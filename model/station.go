package model

// PositionType indicates how the three scalars of a nominal station
// position are interpreted.
type PositionType int

const (
	// PositionCartesian: body-fixed x, y, z in metres.
	PositionCartesian PositionType = iota
	// PositionSpherical: radial distance (m), geocentric latitude (deg), longitude (deg).
	PositionSpherical
	// PositionGeodetic: altitude above the reference ellipsoid (m),
	// geodetic latitude (deg), longitude (deg).
	PositionGeodetic
)

// String returns the catalog-file name of the position type.
func (t PositionType) String() string {
	switch t {
	case PositionCartesian:
		return "cartesian"
	case PositionSpherical:
		return "spherical"
	case PositionGeodetic:
		return "geodetic"
	default:
		return "unknown"
	}
}

// Position is a station's nominal position on a body's surface. The
// meaning of Elements depends on Type; see the PositionType constants.
type Position struct {
	Type     PositionType
	Elements [3]float64
}

// CartesianPosition builds a body-fixed Cartesian position in metres.
func CartesianPosition(x, y, z float64) Position {
	return Position{Type: PositionCartesian, Elements: [3]float64{x, y, z}}
}

// SphericalPosition builds a geocentric spherical position: radial
// distance in metres, latitude and longitude in degrees.
func SphericalPosition(radiusM, latDeg, lonDeg float64) Position {
	return Position{Type: PositionSpherical, Elements: [3]float64{radiusM, latDeg, lonDeg}}
}

// GeodeticPosition builds a geodetic position: altitude above the
// ellipsoid in metres, geodetic latitude and longitude in degrees.
func GeodeticPosition(altitudeM, latDeg, lonDeg float64) Position {
	return Position{Type: PositionGeodetic, Elements: [3]float64{altitudeM, latDeg, lonDeg}}
}

// GroundStationSettings describes a ground station: a name, a nominal
// position, and an optional ordered list of motion settings whose
// displacements are added on top of the nominal position.
//
// Settings are plain data. They are not mutated after construction;
// ownership passes to a BodyRegistry once registered.
type GroundStationSettings struct {
	Name     string
	Position Position
	Motion   []MotionSettings
}
