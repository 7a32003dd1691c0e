// Package flight simulates spin-stabilized arrow flight on a traditional
// Korean archery range: forward-Euler integration of gravity, quadratic drag,
// lift and horizontal wind, tilted-face hit detection, and a bisection solver
// for the launch angle.
package flight

import (
	"math"

	"github.com/gehtsoft-usa/go_ballisticcalc/bmath/vector"
)

// COORDINATE FRAME
// x points downrange toward the target, y up, z to the shooter's right.
// The origin sits on the ground directly below the release point, so the first
// sample of every trajectory is (0, release height, 0).

// ProjectileSpec describes the arrow in SI units.
type ProjectileSpec struct {
	Mass     float64 // kg
	Diameter float64 // m
}

// Area returns the reference cross-section area in m².
func (s ProjectileSpec) Area() float64 {
	r := s.Diameter / 2
	return math.Pi * r * r
}

// Launch holds the release state. Angles are radians; Theta is elevation above
// the horizon, Phi the horizontal offset from the range axis.
type Launch struct {
	Speed  float64 // m/s
	Theta  float64 // rad
	Phi    float64 // rad
	Height float64 // m above launch ground
}

// InitialState returns the release position and velocity vectors.
func (l Launch) InitialState() (pos, vel vector.Vector) {
	pos = vector.Create(0, l.Height, 0)
	vel = vector.Create(
		math.Cos(l.Theta)*math.Cos(l.Phi),
		math.Sin(l.Theta),
		math.Cos(l.Theta)*math.Sin(l.Phi),
	).MultiplyByConst(l.Speed)
	return pos, vel
}

// Environment carries the wind vector and base aerodynamic coefficients.
// Wind never has a vertical component.
type Environment struct {
	WindX     float64 // m/s along the range axis, tailwind positive
	WindZ     float64 // m/s lateral, toward the shooter's right positive
	DragCoeff float64 // Cd0
	LiftCoeff float64 // Cl0
}

// Wind returns the wind as a vector in the range frame.
func (e Environment) Wind() vector.Vector {
	return vector.Create(e.WindX, 0, e.WindZ)
}

// Sample is the arrow position at one time step.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// StopReason records why integration ended.
type StopReason string

const (
	// StopPolicy means the caller-supplied stop predicate was satisfied.
	StopPolicy StopReason = "stop-policy"
	// StopStalled means relative airspeed fell below MinAirspeed.
	StopStalled StopReason = "stalled"
)

// Trajectory is a fully materialized flight path. Samples are Dt seconds apart
// and strictly time-ordered; Velocities[i] is the velocity at Samples[i], with
// Velocities[0] the release velocity. Trajectories produced by Integrate are
// never empty.
type Trajectory struct {
	Samples    []Sample
	Velocities []vector.Vector
	Dt         float64
	Reason     StopReason
}

// Final returns the last sample.
func (t Trajectory) Final() Sample {
	return t.Samples[len(t.Samples)-1]
}

// MaxHeight returns the peak y reached over the flight.
func (t Trajectory) MaxHeight() float64 {
	peak := math.Inf(-1)
	for _, s := range t.Samples {
		if s.Y > peak {
			peak = s.Y
		}
	}
	return peak
}

// FlightTime returns the elapsed time between the first and last sample.
func (t Trajectory) FlightTime() float64 {
	return float64(len(t.Samples)-1) * t.Dt
}

// Thin returns a copy keeping every stride-th sample plus the final one, for
// compact export of long trajectories. Dt scales by stride, so the final
// partial interval makes timing on the thinned copy approximate; compute
// metrics on the original. A stride below 2 returns the trajectory unchanged.
func (t Trajectory) Thin(stride int) Trajectory {
	if stride < 2 || len(t.Samples) == 0 {
		return t
	}

	withVel := len(t.Velocities) == len(t.Samples)
	out := Trajectory{Dt: t.Dt * float64(stride), Reason: t.Reason}

	for i := 0; i < len(t.Samples); i += stride {
		out.Samples = append(out.Samples, t.Samples[i])
		if withVel {
			out.Velocities = append(out.Velocities, t.Velocities[i])
		}
	}

	if last := len(t.Samples) - 1; last%stride != 0 {
		out.Samples = append(out.Samples, t.Samples[last])
		if withVel {
			out.Velocities = append(out.Velocities, t.Velocities[last])
		}
	}

	return out
}
