package core

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/groundstation-registry/model"
)

// WGS-84 reference ellipsoid, used to resolve geodetic positions.
const (
	wgs84SemiMajorAxisM = 6378137.0
	wgs84Flattening     = 1.0 / 298.257223563
)

const degToRad = math.Pi / 180.0

// ResolvePosition converts a nominal station position into body-fixed
// Cartesian metres. This is a change of representation only; the result
// stays in the body-fixed frame the input was expressed in.
func ResolvePosition(p model.Position) (Vec3, error) {
	switch p.Type {
	case model.PositionCartesian:
		return Vec3{X: p.Elements[0], Y: p.Elements[1], Z: p.Elements[2]}, nil

	case model.PositionSpherical:
		r := p.Elements[0]
		lat := p.Elements[1] * degToRad
		lon := p.Elements[2] * degToRad
		return Vec3{
			X: r * math.Cos(lat) * math.Cos(lon),
			Y: r * math.Cos(lat) * math.Sin(lon),
			Z: r * math.Sin(lat),
		}, nil

	case model.PositionGeodetic:
		h := p.Elements[0]
		lat := p.Elements[1] * degToRad
		lon := p.Elements[2] * degToRad

		// Prime-vertical radius of curvature on the WGS-84 ellipsoid.
		e2 := wgs84Flattening * (2 - wgs84Flattening)
		sinLat := math.Sin(lat)
		n := wgs84SemiMajorAxisM / math.Sqrt(1-e2*sinLat*sinLat)

		return Vec3{
			X: (n + h) * math.Cos(lat) * math.Cos(lon),
			Y: (n + h) * math.Cos(lat) * math.Sin(lon),
			Z: (n*(1-e2) + h) * sinLat,
		}, nil

	default:
		return Vec3{}, fmt.Errorf("ResolvePosition: unknown position type %d", p.Type)
	}
}
