package flight

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceShot is the documented field scenario in SI units: a 26.25 g,
// 8 mm arrow released at 60 m/s and 13.5° from 1.5 m up, calm air.
func referenceShot() (ProjectileSpec, Launch, Environment) {
	spec := ProjectileSpec{Mass: 0.02625, Diameter: 0.008}
	launch := Launch{Speed: 60, Theta: 13.5 * math.Pi / 180, Height: 1.5}
	env := Environment{DragCoeff: 0.9, LiftCoeff: 0.03}
	return spec, launch, env
}

func TestIntegrate_FirstSampleIsRelease(t *testing.T) {
	spec, launch, env := referenceShot()

	tr := Integrate(spec, launch, env, RangeFloorStop(170, -5), DefaultTimeStep)

	require.NotEmpty(t, tr.Samples)
	assert.Equal(t, Sample{X: 0, Y: 1.5, Z: 0}, tr.Samples[0])
	_, vel := launch.InitialState()
	assert.Equal(t, vel, tr.Velocities[0])
}

func TestIntegrate_SamplesAndVelocitiesPairUp(t *testing.T) {
	spec, launch, env := referenceShot()

	tr := Integrate(spec, launch, env, RangeFloorStop(170, -5), DefaultTimeStep)

	assert.Equal(t, len(tr.Samples), len(tr.Velocities))
	assert.Greater(t, len(tr.Samples), 1000)
	assert.Equal(t, StopPolicy, tr.Reason)
	assert.Equal(t, DefaultTimeStep, tr.Dt)
}

func TestIntegrate_ZeroDragMatchesClosedForm(t *testing.T) {
	spec := ProjectileSpec{Mass: 0.02625, Diameter: 0.008}
	launch := Launch{Speed: 60, Theta: 13.5 * math.Pi / 180, Height: 1.5}
	dt := DefaultTimeStep

	tr := Integrate(spec, launch, Environment{}, RangeFloorStop(1e9, -5), dt)

	vx := 60 * math.Cos(launch.Theta)
	vy := 60 * math.Sin(launch.Theta)

	// without drag the horizontal speed never changes
	assert.InDelta(t, vx*tr.FlightTime(), tr.Final().X, 1e-6)

	// the Euler apex sits within a step of the analytic peak
	apex := 1.5 + vy*vy/(2*Gravity)
	assert.InDelta(t, apex, tr.MaxHeight(), Gravity*tr.FlightTime()*dt)

	// every sampled height tracks h0 + vy·t − g·t²/2 to first order in dt
	for i, s := range tr.Samples {
		tm := float64(i) * dt
		want := 1.5 + vy*tm - 0.5*Gravity*tm*tm
		require.InDelta(t, want, s.Y, Gravity*(tm+1)*dt)
	}
}

func TestIntegrate_DragShortensFlight(t *testing.T) {
	spec, launch, _ := referenceShot()
	stop := RangeFloorStop(1e9, -5)

	free := Integrate(spec, launch, Environment{}, stop, DefaultTimeStep)
	dragged := Integrate(spec, launch, Environment{DragCoeff: 0.9}, stop, DefaultTimeStep)

	assert.Less(t, dragged.MaxHeight(), free.MaxHeight())
	assert.Less(t, dragged.Final().X, free.Final().X)
}

func TestIntegrate_LiftRaisesApex(t *testing.T) {
	spec, launch, env := referenceShot()
	stop := RangeFloorStop(1e9, -5)
	noLift := env
	noLift.LiftCoeff = 0

	assert.Greater(t,
		Integrate(spec, launch, env, stop, DefaultTimeStep).MaxHeight(),
		Integrate(spec, launch, noLift, stop, DefaultTimeStep).MaxHeight())
}

func TestIntegrate_StallStopsFlight(t *testing.T) {
	spec, _, env := referenceShot()
	launch := Launch{Speed: 0, Height: 1.5}

	tr := Integrate(spec, launch, env, RangeFloorStop(170, -5), DefaultTimeStep)

	assert.Equal(t, StopStalled, tr.Reason)
	assert.Len(t, tr.Samples, 1)
}

func TestIntegrate_StopPolicyBounds(t *testing.T) {
	spec, launch, env := referenceShot()

	t.Run("range cap", func(t *testing.T) {
		tr := Integrate(spec, launch, env, RangeFloorStop(1, -5), DefaultTimeStep)
		assert.Equal(t, StopPolicy, tr.Reason)
		assert.Greater(t, tr.Final().X, 1.0)
	})
	t.Run("floor", func(t *testing.T) {
		tr := Integrate(spec, launch, env, RangeFloorStop(1e9, -5), DefaultTimeStep)
		assert.Equal(t, StopPolicy, tr.Reason)
		assert.Less(t, tr.Final().Y, -5.0)
	})
	t.Run("released past the bounds", func(t *testing.T) {
		tr := Integrate(spec, launch, env, RangeFloorStop(-1, -5), DefaultTimeStep)
		assert.Len(t, tr.Samples, 1)
	})
}

func TestIntegrate_Deterministic(t *testing.T) {
	spec, launch, env := referenceShot()
	stop := RangeFloorStop(170, -5)

	a := Integrate(spec, launch, env, stop, DefaultTimeStep)
	b := Integrate(spec, launch, env, stop, DefaultTimeStep)

	require.Equal(t, a, b)

	aj, err := json.Marshal(a.Samples)
	require.NoError(t, err)
	bj, err := json.Marshal(b.Samples)
	require.NoError(t, err)
	assert.Equal(t, aj, bj)
}

func TestIntegrate_TailwindFasterThanArrow(t *testing.T) {
	spec, _, _ := referenceShot()
	launch := Launch{Speed: 20, Theta: 0.2, Height: 1.5}
	env := Environment{WindX: 50, DragCoeff: 0.9}

	tr := Integrate(spec, launch, env, RangeFloorStop(170, -1e9), DefaultTimeStep)

	// drag pushes the arrow downwind instead of braking it; the range bound
	// still ends the flight
	assert.Equal(t, StopPolicy, tr.Reason)
	assert.Greater(t, tr.Final().X, 170.0)
	assert.Greater(t, tr.Velocities[len(tr.Velocities)-1].X, launch.Speed*math.Cos(launch.Theta))
}

func TestIntegrate_WindEffects(t *testing.T) {
	spec, launch, env := referenceShot()
	stop := RangeFloorStop(1e9, -5)
	calm := Integrate(spec, launch, env, stop, DefaultTimeStep)

	tail := env
	tail.WindX = 5
	head := env
	head.WindX = -5
	cross := env
	cross.WindZ = 3

	assert.Greater(t, Integrate(spec, launch, tail, stop, DefaultTimeStep).Final().X, calm.Final().X)
	assert.Less(t, Integrate(spec, launch, head, stop, DefaultTimeStep).Final().X, calm.Final().X)
	// the arrow drifts downwind
	assert.Positive(t, Integrate(spec, launch, cross, stop, DefaultTimeStep).Final().Z)
	assert.Zero(t, calm.Final().Z)
}
