package config

import (
	"errors"
	"fmt"

	"github.com/gehtsoft-usa/go_ballisticcalc/bmath/unit"
	"github.com/spf13/viper"

	"github.com/jumongjeong/gungdo-sim/internal/geo"
	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file; a missing file is
// fine, the defaults describe the traditional course on their own.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("launch.speed", 60.0)
	viper.SetDefault("launch.thetaDeg", 13.5)
	viper.SetDefault("launch.phiDeg", 0.0)
	viper.SetDefault("launch.height", 1.5)

	viper.SetDefault("arrow.massGrams", 26.25)
	viper.SetDefault("arrow.diameterMm", 8.0)

	viper.SetDefault("env.windX", 0.0)
	viper.SetDefault("env.windZ", 0.0)
	viper.SetDefault("env.dragCoeff", 0.9)
	viper.SetDefault("env.liftCoeff", 0.03)

	viper.SetDefault("sim.timeStep", flight.DefaultTimeStep)
	viper.SetDefault("sim.maxRange", flight.DefaultMaxRange)

	// the traditional face: 2.0x2.67 m, 145 m out, leaning back 15 degrees
	viper.SetDefault("target.distance", 145.0)
	viper.SetDefault("target.baseOffset", 0.0)
	viper.SetDefault("target.width", 2.0)
	viper.SetDefault("target.height", 2.67)
	viper.SetDefault("target.tiltDeg", 15.0)
	// arcRadius > 0 places the face on the range arc instead of at a fixed
	// distance
	viper.SetDefault("target.arcRadius", 0.0)

	viper.SetDefault("solver.lowDeg", 2.0)
	viper.SetDefault("solver.highDeg", 25.0)
	viper.SetDefault("solver.tolerance", 0.05)
	viper.SetDefault("solver.maxIterations", 25)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "gungdo-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.endpoint", "localhost:4318")
	viper.SetDefault("otel.insecure", true)

	// ground-track export anchor: the Hwanghakjeong pavilion in Seoul, range
	// axis pointing true north
	viper.SetDefault("origin.lat", 37.5754)
	viper.SetDefault("origin.lon", 126.9672)
	viper.SetDefault("origin.azimuthDeg", 0.0)

	viper.SetConfigName("gungdo-sim.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Scenario assembles the configured shot. Target placement is validated here
// so bad geometry is rejected before any simulation runs.
func Scenario() (flight.ShotParams, error) {
	tilt := unit.MustCreateAngular(viper.GetFloat64("target.tiltDeg"), unit.AngularDegree).In(unit.AngularRadian)

	var (
		face flight.TargetGeometry
		err  error
	)
	if radius := viper.GetFloat64("target.arcRadius"); radius > 0 {
		face, err = flight.ArcTargetGeometry(
			radius,
			viper.GetFloat64("target.baseOffset"),
			viper.GetFloat64("target.width"),
			viper.GetFloat64("target.height"),
			tilt,
		)
	} else {
		face, err = flight.NewTargetGeometry(
			viper.GetFloat64("target.distance"),
			viper.GetFloat64("target.baseOffset"),
			viper.GetFloat64("target.width"),
			viper.GetFloat64("target.height"),
			tilt,
		)
	}
	if err != nil {
		return flight.ShotParams{}, err
	}

	return flight.ShotParams{
		MuzzleSpeed:  viper.GetFloat64("launch.speed"),
		MassGrams:    viper.GetFloat64("arrow.massGrams"),
		DiameterMM:   viper.GetFloat64("arrow.diameterMm"),
		ThetaDeg:     viper.GetFloat64("launch.thetaDeg"),
		PhiDeg:       viper.GetFloat64("launch.phiDeg"),
		LaunchHeight: viper.GetFloat64("launch.height"),
		TargetOffset: face.BaseOffset,
		WindX:        viper.GetFloat64("env.windX"),
		WindZ:        viper.GetFloat64("env.windZ"),
		DragCoeff:    viper.GetFloat64("env.dragCoeff"),
		LiftCoeff:    viper.GetFloat64("env.liftCoeff"),
		MaxRange:     viper.GetFloat64("sim.maxRange"),
		TimeStep:     viper.GetFloat64("sim.timeStep"),
		Target:       face,
	}.Normalized(), nil
}

// SolverOptions returns the configured bisection window.
func SolverOptions() flight.SolverOptions {
	return flight.SolverOptions{
		LowAngle:      unit.MustCreateAngular(viper.GetFloat64("solver.lowDeg"), unit.AngularDegree).In(unit.AngularRadian),
		HighAngle:     unit.MustCreateAngular(viper.GetFloat64("solver.highDeg"), unit.AngularDegree).In(unit.AngularRadian),
		Tolerance:     viper.GetFloat64("solver.tolerance"),
		MaxIterations: viper.GetInt("solver.maxIterations"),
	}
}

// GroundTrackOrigin returns the geodetic anchor for map export.
func GroundTrackOrigin() geo.Origin {
	return geo.Origin{
		Lat:        viper.GetFloat64("origin.lat"),
		Lon:        viper.GetFloat64("origin.lon"),
		AzimuthDeg: viper.GetFloat64("origin.azimuthDeg"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}
