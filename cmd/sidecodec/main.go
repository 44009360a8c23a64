// Side-codec Core - HDA satellite amplifier control daemon
//
// This is the main entry point for the side-codec core. It probes the
// MAX98390 amplifiers configured for this machine, binds them into the
// audio controller's component registry, and serves PCM lifecycle and
// power-management traffic until shutdown. Amplifier events are
// journalled to SQLite and optionally published over MQTT; register I/O
// metrics flow to InfluxDB.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/renholt/sidecodec-core/migrations"

	"github.com/renholt/sidecodec-core/internal/component"
	"github.com/renholt/sidecodec-core/internal/hda"
	"github.com/renholt/sidecodec-core/internal/i2cdev"
	"github.com/renholt/sidecodec-core/internal/infrastructure/config"
	"github.com/renholt/sidecodec-core/internal/infrastructure/database"
	"github.com/renholt/sidecodec-core/internal/infrastructure/influxdb"
	"github.com/renholt/sidecodec-core/internal/infrastructure/logging"
	"github.com/renholt/sidecodec-core/internal/infrastructure/mqtt"
	"github.com/renholt/sidecodec-core/internal/journal"
	"github.com/renholt/sidecodec-core/internal/max98390"
	"github.com/renholt/sidecodec-core/internal/regmap"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// ampStateInterval is how often amplifier state snapshots are written
// to InfluxDB.
const ampStateInterval = 30 * time.Second

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting side-codec core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Event journal is always on; every dispatched amplifier event lands
	// in SQLite regardless of broker availability.
	sinks := []hda.EventSink{journal.NewSQLiteRepository(db.DB)}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		sinks = append(sinks, mqtt.NewEventPublisher(mqttClient, byte(cfg.MQTT.QoS)))
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// The controller owns the component registry the amplifiers bind into.
	ctrl := hda.New(log, sinks...)

	// Diagnostic command surface: bring-up rigs can inject PCM actions
	// over MQTT without a running audio stack.
	if mqttClient != nil {
		if err := wireActionCommand(mqttClient, ctrl, log); err != nil {
			return fmt.Errorf("subscribing to action commands: %w", err)
		}
	}

	// Probe the configured amplifiers
	amps, cleanup, err := probeAmps(cfg, ctrl, influxClient, log)
	if err != nil {
		return fmt.Errorf("probing amplifiers: %w", err)
	}
	defer cleanup()

	// Periodic state snapshots for dashboards
	if influxClient != nil && len(amps) > 0 {
		go reportAmpStates(ctx, amps, influxClient)
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal",
		"amps", len(amps),
		"slots_bound", ctrl.Registry().BoundCount(),
	)

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred calls run in reverse order:
	// 1. Amplifier removal (disables the speaker paths)
	// 2. InfluxDB (if enabled)
	// 3. MQTT
	// 4. Database

	log.Info("side-codec core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SIDECODEC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SIDECODEC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// probeAmps opens the I2C adapter and probes every configured amplifier.
//
// A single amplifier failing to probe is logged and skipped; the machine
// still has its other speakers. Only adapter-level failures abort startup.
//
// Returns:
//   - []*max98390.Device: Successfully probed amplifiers
//   - func(): Cleanup removing the amplifiers and closing the adapter
//   - error: If the I2C adapter cannot be opened
func probeAmps(cfg *config.Config, ctrl *hda.Controller, influxClient *influxdb.Client, log *logging.Logger) ([]*max98390.Device, func(), error) {
	if len(cfg.Amps.Devices) == 0 {
		log.Warn("no amplifier devices configured")
		return nil, func() {}, nil
	}

	bus, err := i2cdev.Open(cfg.Amps.Bus)
	if err != nil {
		return nil, nil, fmt.Errorf("opening I2C adapter: %w", err)
	}

	var amps []*max98390.Device
	for _, devCfg := range cfg.Amps.Devices {
		opts := []regmap.Option{regmap.WithCache()}
		if influxClient != nil {
			opts = append(opts, regmap.WithObserver(
				influxdb.NewRegisterIOObserver(influxClient, devCfg.Name),
			))
		}
		rm := regmap.New(regmap.NewI2CBus(bus, uint16(devCfg.Address)), opts...)

		dev, err := max98390.New(ctrl.Registry(), max98390.Options{
			Name:         devCfg.Name,
			IRQ:          devCfg.IRQ,
			Regmap:       rm,
			BusType:      max98390.BusTypeI2C,
			Address:      devCfg.Address,
			Logger:       log,
			ResetSettle:  cfg.ResetSettle(),
			EnableSettle: cfg.EnableSettle(),
		})
		if err != nil {
			log.Error("amplifier rejected", "name", devCfg.Name, "error", err)
			continue
		}

		if err := dev.Probe(); err != nil {
			log.Error("amplifier probe failed", "name", devCfg.Name, "error", err)
			dev.Remove()
			continue
		}
		amps = append(amps, dev)
	}

	cleanup := func() {
		for _, dev := range amps {
			dev.Remove()
		}
		if closeErr := bus.Close(); closeErr != nil {
			log.Error("error closing I2C adapter", "error", closeErr)
		}
	}
	return amps, cleanup, nil
}

// wireActionCommand subscribes to the PCM action command topic and
// dispatches requested actions through the controller. Besides the four
// PCM actions, "suspend" and "resume" drive the power-management sweep.
func wireActionCommand(client *mqtt.Client, ctrl *hda.Controller, log *logging.Logger) error {
	topic := mqtt.Topics{}.ActionCommand()
	return client.Subscribe(topic, 1, func(_ string, payload []byte) error {
		var msg struct {
			Action string `json:"action"`
		}
		if err := json.Unmarshal(payload, &msg); err != nil {
			return fmt.Errorf("parsing action command: %w", err)
		}

		switch msg.Action {
		case "suspend":
			log.Info("suspending amplifiers on request")
			ctrl.SuspendAll(context.Background())
			return nil
		case "resume":
			log.Info("resuming amplifiers on request")
			ctrl.ResumeAll(context.Background())
			return nil
		}

		action, ok := actionByName(msg.Action)
		if !ok {
			return fmt.Errorf("unknown action %q", msg.Action)
		}

		log.Info("dispatching requested PCM action", "action", msg.Action)
		ctrl.DispatchPCMAction(context.Background(), action)
		return nil
	})
}

// actionByName maps a command payload action name to its Action value.
func actionByName(name string) (component.Action, bool) {
	switch name {
	case "open":
		return component.ActionOpen, true
	case "prepare":
		return component.ActionPrepare, true
	case "cleanup":
		return component.ActionCleanup, true
	case "close":
		return component.ActionClose, true
	default:
		return 0, false
	}
}

// reportAmpStates periodically writes amplifier state snapshots to
// InfluxDB until the context is cancelled.
func reportAmpStates(ctx context.Context, amps []*max98390.Device, influxClient *influxdb.Client) {
	ticker := time.NewTicker(ampStateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, dev := range amps {
				influxClient.WriteAmpState(dev.Name(), dev.Slot(), dev.Power().String(), dev.StreamOpen())
			}
		}
	}
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
