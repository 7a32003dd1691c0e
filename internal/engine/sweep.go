package engine

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

// ErrInvalidSweep rejects sweeps without at least two distinct angles.
var ErrInvalidSweep = errors.New("sweep requires at least two steps and highDeg > lowDeg")

// SweepPoint is one row of a range card: the shot outcome at one launch angle.
type SweepPoint struct {
	ThetaDeg   float64           `json:"thetaDeg"`
	FinalX     float64           `json:"finalX"`
	MaxHeight  float64           `json:"maxHeight"`
	FlightTime float64           `json:"flightTime"`
	Reason     flight.StopReason `json:"reason"`
	Hit        *flight.HitRecord `json:"hit,omitempty"`
}

// Sweep simulates the same shot across evenly spaced launch angles and
// returns one row per angle, in angle order. Rows run in parallel; the
// result cache makes repeat sweeps nearly free.
func (s *Service) Sweep(ctx context.Context, p flight.ShotParams, lowDeg, highDeg float64, steps int) ([]SweepPoint, error) {
	if steps < 2 || highDeg <= lowDeg {
		return nil, ErrInvalidSweep
	}

	out := make([]SweepPoint, steps)
	spacing := (highDeg - lowDeg) / float64(steps-1)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i := range out {
		eg.Go(func() error {
			shot := p
			shot.ThetaDeg = lowDeg + float64(i)*spacing

			res, err := s.Simulate(ctx, shot)
			if err != nil {
				return err
			}

			out[i] = SweepPoint{
				ThetaDeg:   shot.ThetaDeg,
				FinalX:     res.Trajectory.Final().X,
				MaxHeight:  res.Trajectory.MaxHeight(),
				FlightTime: res.Trajectory.FlightTime(),
				Reason:     res.Trajectory.Reason,
				Hit:        res.Hit,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
