package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the side-codec control core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Core     CoreConfig     `yaml:"core"`
	Amps     AmpsConfig     `yaml:"amps"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CoreConfig contains controller-level settings.
type CoreConfig struct {
	// Name identifies this controller instance in logs and event topics.
	Name string `yaml:"name"`
}

// AmpsConfig contains amplifier probing settings.
type AmpsConfig struct {
	// Bus is the I2C bus device the amplifiers sit on (e.g. "/dev/i2c-1").
	Bus string `yaml:"bus"`

	// Devices lists the amplifier instances to probe.
	Devices []AmpDeviceConfig `yaml:"devices"`

	// Timing allows overriding the fixed settle delays used during
	// device initialisation. Zero values mean "use the hardware defaults"
	// (20ms after software reset, 50ms after global disable). Only tests
	// and bring-up rigs should shorten these.
	Timing AmpTimingConfig `yaml:"timing"`
}

// AmpDeviceConfig describes one amplifier instance.
type AmpDeviceConfig struct {
	// Name is the bus-specific device name. A trailing ".N" suffix
	// (serial-multi-instantiate style) takes priority for slot derivation.
	Name string `yaml:"name"`

	// Address is the secondary (I2C) address, used for slot derivation
	// when the name carries no instantiation suffix.
	Address uint8 `yaml:"address"`

	// IRQ is the interrupt line assigned by enumeration, or 0 if none.
	IRQ int `yaml:"irq"`
}

// AmpTimingConfig contains settle delay overrides.
type AmpTimingConfig struct {
	ResetSettleMs  int `yaml:"reset_settle_ms"`
	EnableSettleMs int `yaml:"enable_settle_ms"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SIDECODEC_SECTION_KEY
// For example: SIDECODEC_DATABASE_PATH, SIDECODEC_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			Name: "sidecodec",
		},
		Amps: AmpsConfig{
			Bus: "/dev/i2c-1",
		},
		Database: DatabaseConfig{
			Path:        "./data/sidecodec.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "sidecodec-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SIDECODEC_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("SIDECODEC_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Amp bus
	if v := os.Getenv("SIDECODEC_AMPS_BUS"); v != "" {
		cfg.Amps.Bus = v
	}

	// MQTT
	if v := os.Getenv("SIDECODEC_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SIDECODEC_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SIDECODEC_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("SIDECODEC_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Core validation
	if c.Core.Name == "" {
		errs = append(errs, "core.name is required")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// Amp validation. The component registry has four slots; enumeration
	// handing us more devices than slots is a configuration error, not
	// something to discover at probe time.
	const maxAmpDevices = 4
	if len(c.Amps.Devices) > maxAmpDevices {
		errs = append(errs, fmt.Sprintf("amps.devices supports at most %d entries", maxAmpDevices))
	}
	for i, dev := range c.Amps.Devices {
		if dev.Name == "" {
			errs = append(errs, fmt.Sprintf("amps.devices[%d].name is required", i))
		}
	}
	if c.Amps.Timing.ResetSettleMs < 0 || c.Amps.Timing.EnableSettleMs < 0 {
		errs = append(errs, "amps.timing settle delays must not be negative")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set SIDECODEC_INFLUXDB_TOKEN)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ResetSettle returns the post-reset settle delay as a Duration.
// Defaults to 20ms when no override is configured.
func (c *Config) ResetSettle() time.Duration {
	if c.Amps.Timing.ResetSettleMs > 0 {
		return time.Duration(c.Amps.Timing.ResetSettleMs) * time.Millisecond
	}
	return 20 * time.Millisecond
}

// EnableSettle returns the post-global-disable settle delay as a Duration.
// Defaults to 50ms when no override is configured.
func (c *Config) EnableSettle() time.Duration {
	if c.Amps.Timing.EnableSettleMs > 0 {
		return time.Duration(c.Amps.Timing.EnableSettleMs) * time.Millisecond
	}
	return 50 * time.Millisecond
}
