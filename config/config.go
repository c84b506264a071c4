// Package config loads ackworker's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/ackworker/observe"
	"github.com/jonwraymond/ackworker/publish"
)

// Environment variables read by Load.
const (
	EnvRegion          = "AWS_DEFAULT_REGION"
	EnvHost            = "ACKWORKER_HOST"
	EnvPort            = "PORT"
	EnvTopic           = "ACKWORKER_TOPIC"
	EnvPublishTimeout  = "ACKWORKER_PUBLISH_TIMEOUT"
	EnvShutdownTimeout = "ACKWORKER_SHUTDOWN_TIMEOUT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvTracesExporter  = "OTEL_TRACES_EXPORTER"
	EnvMetricsExporter = "OTEL_METRICS_EXPORTER"
	EnvTraceSampleArg  = "OTEL_TRACES_SAMPLER_ARG"
	EnvServiceName     = "OTEL_SERVICE_NAME"
)

// Defaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultPublishTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultServiceName     = "ackworker"
)

// ErrInvalid indicates a configuration value is out of range or unparseable.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full process configuration.
type Config struct {
	// Region is the AWS region for the publish client. Empty defers to the SDK.
	Region string

	// TopicsVar is the environment variable holding the JSON topic map.
	// It is read on every probe, not at load time.
	TopicsVar string

	// Topic is the key in the topic map to publish to.
	Topic string

	Host            string
	Port            int
	PublishTimeout  time.Duration
	ShutdownTimeout time.Duration

	Observe observe.Config
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		TopicsVar:       publish.TopicsEnvVar,
		Topic:           publish.DefaultTopic,
		Host:            DefaultHost,
		Port:            DefaultPort,
		PublishTimeout:  DefaultPublishTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		Observe: observe.Config{
			ServiceName: DefaultServiceName,
			Tracing:     observe.TracingConfig{Exporter: "none", SamplePct: 1.0},
			Metrics:     observe.MetricsConfig{Exporter: "none"},
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
	}
}

// Load builds a Config from lookup, which has the signature of os.LookupEnv.
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvRegion); ok {
		cfg.Region = v
	}
	if v, ok := get(EnvHost); ok {
		cfg.Host = v
	}
	if v, ok := get(EnvTopic); ok {
		cfg.Topic = v
	}
	if v, ok := get(EnvServiceName); ok {
		cfg.Observe.ServiceName = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Observe.Logging.Level = strings.ToLower(v)
	}
	if v, ok := get(EnvTracesExporter); ok {
		cfg.Observe.Tracing.Exporter = strings.ToLower(v)
	}
	if v, ok := get(EnvMetricsExporter); ok {
		cfg.Observe.Metrics.Exporter = strings.ToLower(v)
	}

	var errs []error
	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvPort, v, err))
		}
		cfg.Port = port
	}
	if v, ok := get(EnvPublishTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvPublishTimeout, v, err))
		}
		cfg.PublishTimeout = d
	}
	if v, ok := get(EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvShutdownTimeout, v, err))
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := get(EnvTraceSampleArg); ok {
		pct, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvTraceSampleArg, v, err))
		}
		cfg.Observe.Tracing.SamplePct = pct
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	cfg.Observe.Tracing.Enabled = cfg.Observe.Tracing.Exporter != "none"
	cfg.Observe.Metrics.Enabled = cfg.Observe.Metrics.Exporter != "none"

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and delegates telemetry settings to observe.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalid)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %s must be between 1 and 65535, got %d", ErrInvalid, EnvPort, c.Port)
	}
	if c.TopicsVar == "" || c.Topic == "" {
		return fmt.Errorf("%w: topic source is required", ErrInvalid)
	}
	if c.PublishTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, EnvPublishTimeout, c.PublishTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, EnvShutdownTimeout, c.ShutdownTimeout)
	}
	if err := c.Observe.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
