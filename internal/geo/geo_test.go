package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wroge/wgs84"

	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

func testTrajectory() flight.Trajectory {
	return flight.Trajectory{
		Samples: []flight.Sample{
			{X: 0, Y: 1.5, Z: 0},
			{X: 50, Y: 8, Z: 0.5},
			{X: 100, Y: 6, Z: 1.2},
		},
		Dt:     flight.DefaultTimeStep,
		Reason: flight.StopPolicy,
	}
}

func TestSideProfile(t *testing.T) {
	ls, err := SideProfile(testTrajectory())
	require.NoError(t, err)

	seq := ls.Coordinates()
	require.Equal(t, 3, seq.Length())
	assert.Equal(t, 0.0, seq.GetXY(0).X)
	assert.Equal(t, 1.5, seq.GetXY(0).Y)
	assert.Equal(t, 50.0, seq.GetXY(1).X)
	assert.Equal(t, 8.0, seq.GetXY(1).Y)
}

func TestGroundTrack(t *testing.T) {
	ls, err := GroundTrack(testTrajectory())
	require.NoError(t, err)

	seq := ls.Coordinates()
	require.Equal(t, 3, seq.Length())
	assert.Equal(t, 100.0, seq.GetXY(2).X)
	assert.Equal(t, 1.2, seq.GetXY(2).Y)
}

func TestLineStrings_RejectShortTrajectories(t *testing.T) {
	short := flight.Trajectory{Samples: []flight.Sample{{X: 0, Y: 1.5, Z: 0}}}

	_, err := SideProfile(short)
	require.ErrorIs(t, err, ErrShortTrajectory)
	_, err = GroundTrack(short)
	require.ErrorIs(t, err, ErrShortTrajectory)
	_, err = GroundTrack3857(Origin{}, short)
	require.ErrorIs(t, err, ErrShortTrajectory)
}

func TestGroundTrack3857_NorthFacingRange(t *testing.T) {
	origin := Origin{Lat: 37.5754, Lon: 126.9672, AzimuthDeg: 0}

	ls, err := GroundTrack3857(origin, testTrajectory())
	require.NoError(t, err)

	f := wgs84.EPSG().Transform(4326, 3857)
	ox, oy, _ := f(origin.Lon, origin.Lat, 0)

	seq := ls.Coordinates()
	require.Equal(t, 3, seq.Length())
	// facing north, downrange x maps onto northing and lateral z onto easting
	assert.InDelta(t, ox, seq.GetXY(0).X, 1e-6)
	assert.InDelta(t, oy, seq.GetXY(0).Y, 1e-6)
	assert.InDelta(t, ox+1.2, seq.GetXY(2).X, 1e-6)
	assert.InDelta(t, oy+100, seq.GetXY(2).Y, 1e-6)
}

func TestGroundTrack3857_EastFacingRange(t *testing.T) {
	origin := Origin{Lat: 37.5754, Lon: 126.9672, AzimuthDeg: 90}

	ls, err := GroundTrack3857(origin, testTrajectory())
	require.NoError(t, err)

	f := wgs84.EPSG().Transform(4326, 3857)
	ox, oy, _ := f(origin.Lon, origin.Lat, 0)

	seq := ls.Coordinates()
	// facing east, downrange x maps onto easting and lateral z onto -northing
	assert.InDelta(t, ox+100, seq.GetXY(2).X, 1e-6)
	assert.InDelta(t, oy-1.2, seq.GetXY(2).Y, 1e-6)
}

func TestImpactPoint3857(t *testing.T) {
	origin := Origin{Lat: 37.5754, Lon: 126.9672, AzimuthDeg: 0}
	hit := flight.HitRecord{X: 145.2, Y: 1.8, Z: -0.4}

	point := ImpactPoint3857(origin, hit)

	coords, ok := point.Coordinates()
	require.True(t, ok)

	f := wgs84.EPSG().Transform(4326, 3857)
	ox, oy, _ := f(origin.Lon, origin.Lat, 0)
	assert.InDelta(t, ox-0.4, coords.X, 1e-6)
	assert.InDelta(t, oy+145.2, coords.Y, 1e-6)
	assert.Equal(t, 1.8, coords.Z)
}
