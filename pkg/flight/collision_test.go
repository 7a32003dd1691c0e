package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineTrajectory(dt float64, samples ...Sample) Trajectory {
	return Trajectory{Samples: samples, Dt: dt, Reason: StopPolicy}
}

func TestDetectHit_InterpolatesCrossing(t *testing.T) {
	face, err := NewTargetGeometry(145, 0, 2, 2.67, 0)
	require.NoError(t, err)
	tr := lineTrajectory(0.01,
		Sample{X: 144, Y: 1.0, Z: 0},
		Sample{X: 146, Y: 0.5, Z: 0.2},
	)

	hit, ok := DetectHit(tr, face)

	require.True(t, ok)
	assert.InDelta(t, 145.0, hit.X, 1e-12)
	assert.InDelta(t, 0.75, hit.Y, 1e-12)
	assert.InDelta(t, 0.1, hit.Z, 1e-12)
	assert.InDelta(t, 0.005, hit.Time, 1e-12)
	assert.Equal(t, hit.Z, hit.Lateral)
}

func TestDetectHit_ImpactLiesOnTiltedPlane(t *testing.T) {
	face := gungdoFace(t)
	tr := lineTrajectory(0.001,
		Sample{X: 144.8, Y: 2.1, Z: -0.3},
		Sample{X: 145.9, Y: 1.9, Z: -0.25},
	)

	hit, ok := DetectHit(tr, face)

	require.True(t, ok)
	assert.InDelta(t, 0, face.SignedDistance(hit.X, hit.Y), 1e-6)
}

func TestDetectHit_NoCrossing(t *testing.T) {
	face, err := NewTargetGeometry(145, 0, 2, 2.67, 0)
	require.NoError(t, err)

	t.Run("falls short", func(t *testing.T) {
		tr := lineTrajectory(0.01,
			Sample{X: 10, Y: 5, Z: 0},
			Sample{X: 80, Y: 9, Z: 0},
			Sample{X: 120, Y: 2, Z: 0},
		)
		_, ok := DetectHit(tr, face)
		assert.False(t, ok)
	})
	t.Run("starts past the face", func(t *testing.T) {
		tr := lineTrajectory(0.01,
			Sample{X: 150, Y: 3, Z: 0},
			Sample{X: 160, Y: 1, Z: 0},
		)
		_, ok := DetectHit(tr, face)
		assert.False(t, ok)
	})
	t.Run("single sample", func(t *testing.T) {
		tr := lineTrajectory(0.01, Sample{X: 0, Y: 1.5, Z: 0})
		_, ok := DetectHit(tr, face)
		assert.False(t, ok)
	})
}

func TestDetectHit_ExactTouchNeedsLaterBracket(t *testing.T) {
	face, err := NewTargetGeometry(145, 0, 2, 2.67, 0)
	require.NoError(t, err)
	// signed distances run −1, 0, −0.2, +1: the exact touch never satisfies
	// the strict sign change, the last pair does.
	tr := lineTrajectory(0.01,
		Sample{X: 144, Y: 1, Z: 0},
		Sample{X: 145, Y: 1, Z: 0},
		Sample{X: 144.8, Y: 1, Z: 0},
		Sample{X: 146, Y: 1, Z: 0},
	)

	hit, ok := DetectHit(tr, face)

	require.True(t, ok)
	assert.Greater(t, hit.Time, 2*tr.Dt)
}

func TestDetectHit_FirstCrossingWins(t *testing.T) {
	face, err := NewTargetGeometry(145, 0, 2, 2.67, 0)
	require.NoError(t, err)
	tr := lineTrajectory(0.01,
		Sample{X: 144, Y: 1, Z: 0},
		Sample{X: 146, Y: 1, Z: 0},
		Sample{X: 144.5, Y: 1, Z: 0},
		Sample{X: 147, Y: 1, Z: 0},
	)

	hit, ok := DetectHit(tr, face)

	require.True(t, ok)
	assert.Less(t, hit.Time, tr.Dt)
}

func TestDetectHit_InsideFlag(t *testing.T) {
	face, err := NewTargetGeometry(145, 0, 2.0, 2.67, 0)
	require.NoError(t, err)

	tests := []struct {
		name   string
		y, z   float64
		inside bool
	}{
		{"center of the face", 1.3, 0, true},
		{"top edge", 2.67, 0, true},
		{"base edge", 0, 0, true},
		{"above the face", 3.1, 0, false},
		{"below the base", -0.4, 0, false},
		{"left edge", 1.3, -1.0, true},
		{"wide right", 1.3, 1.4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := lineTrajectory(0.01,
				Sample{X: 144.9, Y: tt.y, Z: tt.z},
				Sample{X: 145.1, Y: tt.y, Z: tt.z},
			)
			hit, ok := DetectHit(tr, face)

			require.True(t, ok)
			assert.Equal(t, tt.inside, hit.Inside)
			assert.InDelta(t, tt.y, hit.FaceOffset, 1e-12)
		})
	}
}
