// Package engine runs shots and angle solves behind the result cache and
// publishes telemetry about each run.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jumongjeong/gungdo-sim/internal/cache"
	"github.com/jumongjeong/gungdo-sim/internal/influx"
	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

// Dependencies holds all dependencies needed by the engine.
type Dependencies struct {
	Logger *slog.Logger
	Cache  *cache.ResultCache
	Influx *influx.Manager // optional, nil disables telemetry writes
}

// Service runs simulations with memoization, metrics and telemetry.
type Service struct {
	deps Dependencies

	// OTEL metrics
	shots       metric.Int64Counter
	solves      metric.Int64Counter
	steps       metric.Int64Counter
	cacheHits   metric.Int64Counter
	cacheMisses metric.Int64Counter
	cacheSize   metric.Int64ObservableGauge
}

// NewService creates the engine service. A missing logger or cache falls
// back to slog.Default and a fresh cache. Uses the global OTel meter for
// metrics (no-op if not configured).
func NewService(deps Dependencies) (*Service, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewResultCache()
	}

	s := &Service{deps: deps}

	m := meter()

	var err error

	s.shots, err = m.Int64Counter(
		"engine.shots.simulated",
		metric.WithDescription("Total shots integrated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	s.solves, err = m.Int64Counter(
		"engine.solves.completed",
		metric.WithDescription("Total angle solves completed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating solves counter: %w", err)
	}

	s.steps, err = m.Int64Counter(
		"engine.integration.steps",
		metric.WithDescription("Total integration steps across all shots"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating steps counter: %w", err)
	}

	s.cacheHits, err = m.Int64Counter(
		"engine.cache.hits",
		metric.WithDescription("Shots served from the result cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache hit counter: %w", err)
	}

	s.cacheMisses, err = m.Int64Counter(
		"engine.cache.misses",
		metric.WithDescription("Shots that fell through to the integrator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache miss counter: %w", err)
	}

	s.cacheSize, err = m.Int64ObservableGauge(
		"engine.cache.size",
		metric.WithDescription("Memoized shots held in the result cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cache size gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(s.cacheSize, int64(s.deps.Cache.Len()))
			return nil
		},
		s.cacheSize,
	)
	if err != nil {
		return nil, fmt.Errorf("registering cache size callback: %w", err)
	}

	return s, nil
}

// Cache exposes the result cache, mainly for stats reporting.
func (s *Service) Cache() *cache.ResultCache {
	return s.deps.Cache
}

// Simulate runs one shot, serving repeats from the cache. Params are
// normalized first so equal effective inputs share one entry.
func (s *Service) Simulate(ctx context.Context, p flight.ShotParams) (flight.Result, error) {
	if err := ctx.Err(); err != nil {
		return flight.Result{}, err
	}

	key := p.Normalized()
	start := time.Now()

	if res, ok := s.deps.Cache.Get(key); ok {
		s.cacheHits.Add(ctx, 1)
		s.deps.Logger.Debug("shot served from cache",
			"thetaDeg", key.ThetaDeg,
			"samples", len(res.Trajectory.Samples),
		)
		s.writeShotPoint(ctx, key, res, time.Since(start), true)
		return res, nil
	}
	s.cacheMisses.Add(ctx, 1)

	res := flight.Simulate(key)
	elapsed := time.Since(start)

	s.deps.Cache.Add(key, res)
	s.shots.Add(ctx, 1)
	s.steps.Add(ctx, int64(len(res.Trajectory.Samples)-1))

	final := res.Trajectory.Final()
	s.deps.Logger.Info("shot simulated",
		"thetaDeg", key.ThetaDeg,
		"finalX", final.X,
		"maxHeight", res.Trajectory.MaxHeight(),
		"reason", string(res.Trajectory.Reason),
		"hit", res.Hit != nil,
		"duration", elapsed,
	)

	s.writeShotPoint(ctx, key, res, elapsed, false)

	return res, nil
}

// SolveAngle finds the launch angle in degrees that lands the shot the
// requested distance downrange.
func (s *Service) SolveAngle(ctx context.Context, p flight.ShotParams, targetDistance float64, opts flight.SolverOptions) (float64, flight.SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return 0, flight.SolveResult{}, err
	}

	start := time.Now()
	angleDeg, sr := flight.SolveLaunchAngle(p, targetDistance, opts)
	elapsed := time.Since(start)

	s.solves.Add(ctx, 1)

	if sr.Converged {
		s.deps.Logger.Info("launch angle solved",
			"targetDistance", targetDistance,
			"angleDeg", angleDeg,
			"iterations", sr.Iterations,
			"rangeError", sr.RangeError,
			"duration", elapsed,
		)
	} else {
		s.deps.Logger.Warn("angle solve did not converge",
			"targetDistance", targetDistance,
			"angleDeg", angleDeg,
			"iterations", sr.Iterations,
			"rangeError", sr.RangeError,
		)
	}

	if s.deps.Influx != nil {
		err := s.deps.Influx.WritePoint(ctx, influx.BucketSolver,
			influx.SolvePoint(targetDistance, angleDeg, sr, elapsed))
		if err != nil {
			s.deps.Logger.Debug("solve telemetry dropped", "error", err)
		}
	}

	return angleDeg, sr, nil
}

func (s *Service) writeShotPoint(ctx context.Context, p flight.ShotParams, res flight.Result, elapsed time.Duration, cacheHit bool) {
	if s.deps.Influx == nil {
		return
	}
	err := s.deps.Influx.WritePoint(ctx, influx.BucketShots,
		influx.ShotPoint(p, res, elapsed, cacheHit))
	if err != nil {
		s.deps.Logger.Debug("shot telemetry dropped", "error", err)
	}
}
