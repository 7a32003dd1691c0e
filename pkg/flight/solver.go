package flight

import (
	"math"

	"github.com/gehtsoft-usa/go_ballisticcalc/bmath/unit"
)

// SolverOptions bound the bisection search for a launch angle.
// MaxIterations must be positive.
type SolverOptions struct {
	LowAngle      float64 // rad
	HighAngle     float64 // rad
	Tolerance     float64 // m
	MaxIterations int
}

// DefaultSolverOptions returns the window used on the traditional course:
// 2 to 25 degrees, 5 cm tolerance, 25 iterations.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		LowAngle:      unit.MustCreateAngular(2, unit.AngularDegree).In(unit.AngularRadian),
		HighAngle:     unit.MustCreateAngular(25, unit.AngularDegree).In(unit.AngularRadian),
		Tolerance:     0.05,
		MaxIterations: 25,
	}
}

// SolveResult reports the bisection outcome. Angle is best effort: inspect
// Converged or RangeError before trusting it.
type SolveResult struct {
	Angle      float64 // rad
	RangeError float64 // m, achieved minus requested final x
	Iterations int
	Converged  bool
}

// SolveAngleForRange bisects the vertical launch angle until the trajectory's
// final downrange distance lands within tolerance of targetDistance. The
// launch argument is a template; its Theta is replaced each iteration. An
// overshoot (positive range error) lowers the upper bound, an undershoot
// raises the lower bound. When the iteration budget runs out the last
// midpoint is returned with Converged false.
func SolveAngleForRange(targetDistance float64, spec ProjectileSpec, launch Launch, env Environment, stop StopFunc, dt float64, opts SolverOptions) SolveResult {
	lower, upper := opts.LowAngle, opts.HighAngle
	res := SolveResult{Angle: (lower + upper) / 2}

	for i := 0; i < opts.MaxIterations; i++ {
		mid := (lower + upper) / 2
		launch.Theta = mid
		tr := Integrate(spec, launch, env, stop, dt)

		rangeErr := tr.Final().X - targetDistance
		res = SolveResult{Angle: mid, RangeError: rangeErr, Iterations: i + 1}
		if math.Abs(rangeErr) < opts.Tolerance {
			res.Converged = true
			return res
		}
		if rangeErr > 0 {
			upper = mid
		} else {
			lower = mid
		}
	}
	return res
}
