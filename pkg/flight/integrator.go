package flight

import "github.com/gehtsoft-usa/go_ballisticcalc/bmath/vector"

// DefaultTimeStep is the fixed forward-Euler step in seconds. Results are
// keyed on the step: changing it changes every downstream value, so it travels
// with ShotParams instead of being read from ambient state.
const DefaultTimeStep = 0.001

// StopFunc reports whether integration should halt before stepping from the
// given downrange and height position.
type StopFunc func(x, y float64) bool

// RangeFloorStop is the standard stop policy: halt once past maxRange
// downrange or once below floor.
func RangeFloorStop(maxRange, floor float64) StopFunc {
	return func(x, y float64) bool {
		return x > maxRange || y < floor
	}
}

// Integrate advances the flight by forward Euler until the stop policy is
// satisfied or the relative airspeed stalls. Each step updates velocity first
// and position second, from the acceleration
//
//	ax = −Fd·vrx/(m·v)
//	ay = −g − Fd·vry/(m·v) + Fl/m
//	az = −Fd·vrz/(m·v)
//
// where vr is velocity relative to the wind. Lift acts vertically, modelling
// the spin-stabilized arrow holding its nose attitude through the arc. The
// returned trajectory always starts with the release sample, and the loop
// terminates for every finite stop policy: drag and gravity drive the arrow
// through the range or floor bound in finite time.
func Integrate(spec ProjectileSpec, launch Launch, env Environment, stop StopFunc, dt float64) Trajectory {
	pos, vel := launch.InitialState()
	wind := env.Wind()
	area := spec.Area()

	tr := Trajectory{
		Samples:    []Sample{{X: pos.X, Y: pos.Y, Z: pos.Z}},
		Velocities: []vector.Vector{vel},
		Dt:         dt,
		Reason:     StopPolicy,
	}

	for !stop(pos.X, pos.Y) {
		rel := vel.Subtract(wind)
		airspeed := rel.Magnitude()
		drag, lift, ok := Forces(airspeed, env.DragCoeff, env.LiftCoeff, area, AirDensity)
		if !ok {
			tr.Reason = StopStalled
			break
		}

		scale := drag / (spec.Mass * airspeed)
		acc := vector.Create(
			-scale*rel.X,
			-Gravity-scale*rel.Y+lift/spec.Mass,
			-scale*rel.Z,
		)
		vel = vel.Add(acc.MultiplyByConst(dt))
		pos = pos.Add(vel.MultiplyByConst(dt))

		tr.Samples = append(tr.Samples, Sample{X: pos.X, Y: pos.Y, Z: pos.Z})
		tr.Velocities = append(tr.Velocities, vel)
	}
	return tr
}
