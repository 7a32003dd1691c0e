package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/jumongjeong/gungdo-sim/internal/cache"
	"github.com/jumongjeong/gungdo-sim/internal/config"
	"github.com/jumongjeong/gungdo-sim/internal/engine"
	"github.com/jumongjeong/gungdo-sim/internal/influx"
	"github.com/jumongjeong/gungdo-sim/internal/logging"
	intOtel "github.com/jumongjeong/gungdo-sim/internal/otel"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	AppName string = "gungdo-sim"
)

// global state shared by the subcommands
var (
	SessionStartTime time.Time = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger, stamped with the run ID
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	influxManager *influx.Manager
	sim           *engine.Service

	// zlog writes human-readable startup and error lines to stderr,
	// keeping stdout clean for results.
	zlog zerolog.Logger
)

func main() {
	zlog = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "version":
		fmt.Printf("%s %s (built %s)\n", AppName, Version, BuildDate)
		return
	case "shoot", "solve", "sweep":
	default:
		printUsage()
		os.Exit(2)
	}

	setup()

	ctx := context.Background()

	var err error
	switch cmd {
	case "shoot":
		err = runShoot(ctx)
	case "solve":
		err = runSolve(ctx, args[1:])
	case "sweep":
		err = runSweep(ctx, args[1:])
	}

	shutdown()

	if err != nil {
		zlog.Error().Err(err).Str("command", cmd).Msg("command failed")
		os.Exit(1)
	}
}

// setup loads configuration and wires logging, telemetry and the engine.
func setup() {
	if err := config.Load("."); err != nil {
		zlog.Warn().Err(err).Msg("Failed to load config, using defaults")
	}

	// create logs dir if it doesn't exist
	logsDir := config.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath := logging.LogFilePath(logsDir, AppName, SessionStartTime)

	// a leftover file from the same second moves aside
	if _, err := os.Stat(logFilePath); err == nil {
		os.Rename(logFilePath, logFilePath+".old")
	}

	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		zlog.Warn().Err(err).Str("path", logFilePath).
			Msg("Failed to open log file, logging to console")
		logFile = nil
	}

	// OTel provider if enabled (after log file is created)
	if config.GetBool("otel.enabled") {
		otelCfg := intOtel.Config{
			Enabled:      true,
			ServiceName:  AppName,
			BatchTimeout: 5 * time.Second,
			Endpoint:     config.GetString("otel.endpoint"),
			Insecure:     config.GetBool("otel.insecure"),
		}
		if logFile != nil {
			otelCfg.LogWriter = logFile
		}

		OTelProvider, err = intOtel.New(otelCfg)
		if err != nil {
			zlog.Error().Err(err).Msg("Failed to initialize OTel provider")
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}

	// avoid handing Setup a typed nil writer
	var logWriter io.Writer
	if logFile != nil {
		logWriter = logFile
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(logWriter, config.GetString("logLevel"), otelLogProvider)

	// every record carries the session's run ID
	runID := SessionStartTime.UTC().Format("20060102_150405")
	Logger = slog.New(logging.NewContextHandler(
		SlogManager.Logger().Handler(),
		func() []slog.Attr {
			return []slog.Attr{slog.String("run", runID)}
		},
	))
	Logger.Info("Starting up", "version", Version, "build", BuildDate)

	if config.GetBool("influx.enabled") {
		backupPath := filepath.Join(logsDir, fmt.Sprintf(
			"%s.telemetry.%s.lp.gz",
			AppName,
			SessionStartTime.Format("20060102_150405"),
		))
		influxManager = influx.NewManager(zlog, backupPath)
		if err := influxManager.Connect(); err != nil {
			zlog.Warn().Err(err).Msg("InfluxDB telemetry disabled")
			influxManager = nil
		}
	}

	sim, err = engine.NewService(engine.Dependencies{
		Logger: Logger,
		Cache:  cache.NewResultCache(),
		Influx: influxManager,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize engine")
	}
}

// shutdown drains logs and telemetry before the process exits.
func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if SlogManager != nil {
		if err := SlogManager.Flush(ctx); err != nil {
			zlog.Warn().Err(err).Msg("Failed to flush logs")
		}
	}

	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			zlog.Warn().Err(err).Msg("Failed to shut down OTel provider")
		}
	}

	if influxManager != nil {
		if err := influxManager.Close(); err != nil {
			zlog.Warn().Err(err).Msg("Failed to close InfluxDB manager")
		}
	}
}
