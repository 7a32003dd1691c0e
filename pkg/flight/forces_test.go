package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragCoefficient_BaseAtRest(t *testing.T) {
	assert.Equal(t, 0.9, dragCoefficient(0.9, 0))
}

func TestDragCoefficient_GrowsWithAirspeed(t *testing.T) {
	assert.InDelta(t, 0.9*1.15, dragCoefficient(0.9, 60), 1e-12)
	assert.Greater(t, dragCoefficient(0.9, 80), dragCoefficient(0.9, 60))
}

func TestForces_StallsBelowMinAirspeed(t *testing.T) {
	drag, lift, ok := Forces(MinAirspeed/2, 0.9, 0.03, 1e-4, AirDensity)

	require.False(t, ok)
	assert.Zero(t, drag)
	assert.Zero(t, lift)
}

func TestForces_AtThresholdStillFlies(t *testing.T) {
	_, _, ok := Forces(MinAirspeed, 0.9, 0.03, 1e-4, AirDensity)
	assert.True(t, ok)
}

func TestForces_Magnitudes(t *testing.T) {
	// area 1 and density 2 make the dynamic pressure exactly v².
	drag, lift, ok := Forces(60, 0.9, 0.03, 1, 2)

	require.True(t, ok)
	assert.InDelta(t, 3600*0.9*1.15, drag, 1e-9)
	assert.InDelta(t, 3600*0.03, lift, 1e-9)
}

func TestForces_ZeroLiftCoefficient(t *testing.T) {
	_, lift, ok := Forces(25, 0.9, 0, 5e-5, AirDensity)

	require.True(t, ok)
	assert.Zero(t, lift)
}
