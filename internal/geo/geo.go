package geo

import (
	"errors"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

// MAP EXPORT
// Flight paths live in the local range frame (x downrange, y up, z right).
// For map display the ground track is anchored at a geodetic origin and
// exported in EPSG:3857, the same projection the rest of the tooling speaks.
// Offsets are applied in mercator meters; over a 145 m course the scale
// distortion is far below the integrator's own resolution.

// ErrShortTrajectory is returned when a path has too few samples to form a line.
var ErrShortTrajectory = errors.New("trajectory needs at least two samples")

// Origin anchors the local range frame on the globe. AzimuthDeg is the
// direction the range axis points, clockwise from true north.
type Origin struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	AzimuthDeg float64 `json:"azimuthDeg"`
}

// mercator returns the origin in EPSG:3857 along with the range-axis basis.
func (o Origin) mercator() (ox, oy, sinAz, cosAz float64) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	ox, oy, _ = f(o.Lon, o.Lat, 0)
	az := o.AzimuthDeg * math.Pi / 180
	return ox, oy, math.Sin(az), math.Cos(az)
}

// SideProfile builds the (x, y) flight profile as a LineString in the local
// frame.
func SideProfile(tr flight.Trajectory) (geom.LineString, error) {
	if len(tr.Samples) < 2 {
		return geom.LineString{}, ErrShortTrajectory
	}
	flat := make([]float64, 0, len(tr.Samples)*2)
	for _, s := range tr.Samples {
		flat = append(flat, s.X, s.Y)
	}
	seq := geom.NewSequence(flat, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// GroundTrack builds the top-down (x, z) track as a LineString in the local
// frame.
func GroundTrack(tr flight.Trajectory) (geom.LineString, error) {
	if len(tr.Samples) < 2 {
		return geom.LineString{}, ErrShortTrajectory
	}
	flat := make([]float64, 0, len(tr.Samples)*2)
	for _, s := range tr.Samples {
		flat = append(flat, s.X, s.Z)
	}
	seq := geom.NewSequence(flat, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// GroundTrack3857 projects the top-down track into web mercator around the
// origin.
func GroundTrack3857(origin Origin, tr flight.Trajectory) (geom.LineString, error) {
	if len(tr.Samples) < 2 {
		return geom.LineString{}, ErrShortTrajectory
	}
	ox, oy, sinAz, cosAz := origin.mercator()

	flat := make([]float64, 0, len(tr.Samples)*2)
	for _, s := range tr.Samples {
		east := s.X*sinAz + s.Z*cosAz
		north := s.X*cosAz - s.Z*sinAz
		flat = append(flat, ox+east, oy+north)
	}
	seq := geom.NewSequence(flat, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// ImpactPoint3857 projects the interpolated impact into web mercator, keeping
// the impact height as Z.
func ImpactPoint3857(origin Origin, hit flight.HitRecord) geom.Point {
	ox, oy, sinAz, cosAz := origin.mercator()
	east := hit.X*sinAz + hit.Z*cosAz
	north := hit.X*cosAz - hit.Z*sinAz
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: ox + east, Y: oy + north},
			Z:    hit.Y,
			Type: geom.DimXYZ,
		},
	)
}
