package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jumongjeong/gungdo-sim/internal/config"
	"github.com/jumongjeong/gungdo-sim/internal/geo"
	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

// wktSamplePoints caps how many trajectory samples end up in the exported
// ground track. A full run at the default time step carries thousands.
const wktSamplePoints = 32

func printUsage() {
	fmt.Printf(`%s %s

Usage:
  %s shoot                   simulate the configured shot
  %s solve [distance]        find the launch angle for a distance in meters
                             (default: the configured target distance)
  %s sweep [low high [n]]    range card across launch angles in degrees
  %s version                 print version and build date

Configuration is read from gungdo-sim.cfg.json in the working directory.
`, AppName, Version, AppName, AppName, AppName, AppName)
}

func runShoot(ctx context.Context) error {
	p, err := config.Scenario()
	if err != nil {
		return err
	}

	res, err := sim.Simulate(ctx, p)
	if err != nil {
		return err
	}

	printShot(p, res)
	return nil
}

func runSolve(ctx context.Context, args []string) error {
	p, err := config.Scenario()
	if err != nil {
		return err
	}

	targetDistance := p.Target.Distance
	if len(args) > 0 {
		targetDistance, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("bad target distance %q: %w", args[0], err)
		}
	}
	if targetDistance <= 0 {
		return fmt.Errorf("target distance must be positive, got %g", targetDistance)
	}

	opts := config.SolverOptions()
	angleDeg, sr, err := sim.SolveAngle(ctx, p, targetDistance, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Launch angle for %.1f m: %.3f deg (%d iterations, range error %+.3f m)\n",
		targetDistance, angleDeg, sr.Iterations, sr.RangeError)
	if !sr.Converged {
		fmt.Printf("Warning: no convergence within %.2g m after %d iterations\n",
			opts.Tolerance, sr.Iterations)
	}

	// fly the solved shot so the card below shows what that angle does
	p.ThetaDeg = angleDeg
	res, err := sim.Simulate(ctx, p)
	if err != nil {
		return err
	}
	printShot(p, res)
	return nil
}

func runSweep(ctx context.Context, args []string) error {
	p, err := config.Scenario()
	if err != nil {
		return err
	}

	lowDeg := config.GetFloat64("solver.lowDeg")
	highDeg := config.GetFloat64("solver.highDeg")
	steps := 15

	switch {
	case len(args) == 1:
		return fmt.Errorf("sweep takes no arguments or low high [steps], got 1")
	case len(args) >= 2:
		if lowDeg, err = strconv.ParseFloat(args[0], 64); err != nil {
			return fmt.Errorf("bad low angle %q: %w", args[0], err)
		}
		if highDeg, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("bad high angle %q: %w", args[1], err)
		}
	}
	if len(args) >= 3 {
		if steps, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("bad step count %q: %w", args[2], err)
		}
	}

	rows, err := sim.Sweep(ctx, p, lowDeg, highDeg, steps)
	if err != nil {
		return err
	}

	fmt.Printf("%9s %10s %9s %9s   %s\n", "theta deg", "final x m", "apex m", "time s", "outcome")
	for _, row := range rows {
		outcome := string(row.Reason)
		if row.Hit != nil {
			if row.Hit.Inside {
				outcome = fmt.Sprintf("hit, %.2f m up the face", row.Hit.FaceOffset)
			} else {
				outcome = fmt.Sprintf("crossed the face plane %.2f m up, off target", row.Hit.FaceOffset)
			}
		}
		fmt.Printf("%9.2f %10.2f %9.2f %9.3f   %s\n",
			row.ThetaDeg, row.FinalX, row.MaxHeight, row.FlightTime, outcome)
	}

	Logger.Debug("sweep cache stats",
		"hits", sim.Cache().Hits(),
		"misses", sim.Cache().Misses(),
	)
	return nil
}

func printShot(p flight.ShotParams, res flight.Result) {
	final := res.Trajectory.Final()

	fmt.Printf("Shot: %.1f m/s at %.2f deg, release height %.2f m\n",
		p.MuzzleSpeed, p.ThetaDeg, p.LaunchHeight)
	if p.WindX != 0 || p.WindZ != 0 {
		fmt.Printf("Wind: %.1f m/s downrange, %.1f m/s lateral\n", p.WindX, p.WindZ)
	}
	fmt.Printf("Flight: %.2f s over %d samples (dt %g s), stopped: %s\n",
		res.Trajectory.FlightTime(), len(res.Trajectory.Samples), res.Trajectory.Dt, res.Trajectory.Reason)
	fmt.Printf("Final: x=%.2f m  y=%.2f m  z=%.3f m, apex %.2f m\n",
		final.X, final.Y, final.Z, res.Trajectory.MaxHeight())

	if res.Hit != nil {
		h := res.Hit
		verdict := "off the face"
		if h.Inside {
			verdict = "on the face"
		}
		fmt.Printf("Impact: %s at t=%.3f s, x=%.2f m, %.2f m up the face, %.3f m lateral\n",
			verdict, h.Time, h.X, h.FaceOffset, h.Lateral)
	} else if p.Target.Distance > 0 {
		fmt.Println("Impact: never reached the face plane")
	}

	printGroundTrack(res)
}

// printGroundTrack exports the thinned track as WKT in web mercator. Export
// is best effort; a track too short to form a line is simply skipped.
func printGroundTrack(res flight.Result) {
	origin := config.GroundTrackOrigin()

	stride := len(res.Trajectory.Samples) / wktSamplePoints
	track, err := geo.GroundTrack3857(origin, res.Trajectory.Thin(stride))
	if err != nil {
		return
	}
	fmt.Printf("Ground track (EPSG:3857): %s\n", track.AsText())

	if res.Hit != nil {
		fmt.Printf("Impact point (EPSG:3857): %s\n",
			geo.ImpactPoint3857(origin, *res.Hit).AsText())
	}
}
