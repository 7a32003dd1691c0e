package flight

import (
	"github.com/gehtsoft-usa/go_ballisticcalc/bmath/unit"
)

const (
	// DefaultMaxRange bounds integration downrange. It sits past the longest
	// traditional course so the floor normally ends flight first.
	DefaultMaxRange = 170.0 // m
	// StopFloorDrop is how far below the target base the stop floor sits.
	StopFloorDrop = 5.0 // m
)

// ShotParams is the full input tuple of one simulated shot, in field units:
// meters per second, grams, millimeters, degrees and meters. The struct is
// comparable, so the normalized tuple doubles as a memoization key.
type ShotParams struct {
	MuzzleSpeed  float64        `json:"muzzleSpeed"`  // m/s
	MassGrams    float64        `json:"massGrams"`    // g
	DiameterMM   float64        `json:"diameterMm"`   // mm
	ThetaDeg     float64        `json:"thetaDeg"`     // deg above horizon
	PhiDeg       float64        `json:"phiDeg"`       // deg off the range axis
	LaunchHeight float64        `json:"launchHeight"` // m
	TargetOffset float64        `json:"targetOffset"` // m, target base relative to launch ground
	WindX        float64        `json:"windX"`        // m/s
	WindZ        float64        `json:"windZ"`        // m/s
	DragCoeff    float64        `json:"dragCoeff"`    // Cd0
	LiftCoeff    float64        `json:"liftCoeff"`    // Cl0
	MaxRange     float64        `json:"maxRange"`     // m, zero takes DefaultMaxRange
	TimeStep     float64        `json:"timeStep"`     // s, zero takes DefaultTimeStep
	Target       TargetGeometry `json:"target"`       // zero geometry disables hit detection
}

// Normalized returns the tuple with documented defaults applied. Cache keys
// and repeat runs must use the normalized form so equal effective inputs share
// a key.
func (p ShotParams) Normalized() ShotParams {
	if p.MaxRange == 0 {
		p.MaxRange = DefaultMaxRange
	}
	if p.TimeStep == 0 {
		p.TimeStep = DefaultTimeStep
	}
	return p
}

// Spec converts the field-unit mass and diameter to the SI projectile spec.
func (p ShotParams) Spec() ProjectileSpec {
	return ProjectileSpec{
		Mass:     unit.MustCreateWeight(p.MassGrams, unit.WeightGram).In(unit.WeightKilogram),
		Diameter: unit.MustCreateDistance(p.DiameterMM, unit.DistanceMillimeter).In(unit.DistanceMeter),
	}
}

// Launch converts the field-unit angles and release state.
func (p ShotParams) Launch() Launch {
	return Launch{
		Speed:  p.MuzzleSpeed,
		Theta:  unit.MustCreateAngular(p.ThetaDeg, unit.AngularDegree).In(unit.AngularRadian),
		Phi:    unit.MustCreateAngular(p.PhiDeg, unit.AngularDegree).In(unit.AngularRadian),
		Height: p.LaunchHeight,
	}
}

// Environment returns the wind and aerodynamic coefficients.
func (p ShotParams) Environment() Environment {
	return Environment{
		WindX:     p.WindX,
		WindZ:     p.WindZ,
		DragCoeff: p.DragCoeff,
		LiftCoeff: p.LiftCoeff,
	}
}

// Stop returns the shot's stop policy: past MaxRange downrange, or below the
// floor StopFloorDrop meters under the target base.
func (p ShotParams) Stop() StopFunc {
	return RangeFloorStop(p.MaxRange, p.TargetOffset-StopFloorDrop)
}

// Result bundles the integrated trajectory with the face hit, when one exists.
type Result struct {
	Trajectory Trajectory
	Hit        *HitRecord
}

// Simulate runs one shot. Field units convert to SI here, never inside the
// integration loop. Hit detection runs only when the target face is defined.
// Simulate is pure: identical normalized params yield bit-identical results.
func Simulate(p ShotParams) Result {
	p = p.Normalized()
	tr := Integrate(p.Spec(), p.Launch(), p.Environment(), p.Stop(), p.TimeStep)

	res := Result{Trajectory: tr}
	if p.Target.defined() {
		if hit, ok := DetectHit(tr, p.Target); ok {
			res.Hit = &hit
		}
	}
	return res
}

// SolveLaunchAngle finds the ThetaDeg that lands the shot targetDistance
// meters downrange, in degrees, alongside the solver's convergence report.
func SolveLaunchAngle(p ShotParams, targetDistance float64, opts SolverOptions) (float64, SolveResult) {
	p = p.Normalized()
	res := SolveAngleForRange(targetDistance, p.Spec(), p.Launch(), p.Environment(), p.Stop(), p.TimeStep, opts)
	deg := unit.MustCreateAngular(res.Angle, unit.AngularRadian).In(unit.AngularDegree)
	return deg, res
}
