package web

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

// Config is the file form of a router's serving setup.
type Config struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"` // 0: none
	BodyLimit         int64         `yaml:"body_limit"`      // bytes, 0: unlimited
	MaxInFlight       int           `yaml:"max_in_flight"`   // per route, 0: unbounded
	RateLimit         struct {
		Rate  float64 `yaml:"rate"` // requests per second, 0: disabled
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	AccessLog struct {
		Enabled bool     `yaml:"enabled"`
		Format  string   `yaml:"format"` // empty: structured attributes
		Exclude []string `yaml:"exclude"`
	} `yaml:"access_log"`
	MetricsPath string `yaml:"metrics_path"` // empty: metrics disabled
	LogLevel    string `yaml:"log_level"`    // debug, info, warn or error
}

// DefaultConfig returns the configuration used for fields a file leaves out.
func DefaultConfig() Config {
	var c Config
	c.Addr = ":8080"
	c.ReadHeaderTimeout = 10 * time.Second
	c.ShutdownTimeout = 30 * time.Second
	c.AccessLog.Enabled = true
	c.MetricsPath = "/metrics"
	c.LogLevel = "info"
	return c
}

// LoadConfig reads a YAML configuration file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.ReadHeaderTimeout < 0 {
		errs = append(errs, errors.New("read_header_timeout must not be negative"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown_timeout must not be negative"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.BodyLimit < 0 {
		errs = append(errs, errors.New("body_limit must not be negative"))
	}
	if c.MaxInFlight < 0 {
		errs = append(errs, errors.New("max_in_flight must not be negative"))
	}
	if c.RateLimit.Rate < 0 {
		errs = append(errs, errors.New("rate_limit.rate must not be negative"))
	}
	if c.RateLimit.Rate > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("rate_limit.burst must be at least 1"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// RouterOptions returns the router options the configuration implies.
func (c Config) RouterOptions(logger *slog.Logger) []RouterOption {
	opts := []RouterOption{
		WithReadHeaderTimeout(c.ReadHeaderTimeout),
		WithShutdownTimeout(c.ShutdownTimeout),
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return opts
}

// Transforms returns the transforms the configuration enables, outermost
// first. reg receives the metrics collectors when MetricsPath is set.
func (c Config) Transforms(logger *slog.Logger, reg prometheus.Registerer) []Transform {
	ts := []Transform{RequestID(), Recovery(logger)}
	if c.AccessLog.Enabled {
		ts = append(ts, AccessLog(AccessLogConfig{
			Logger:  logger,
			Format:  c.AccessLog.Format,
			Exclude: c.AccessLog.Exclude,
		}))
	}
	if c.MetricsPath != "" {
		ts = append(ts, Metrics(reg))
	}
	if c.RateLimit.Rate > 0 {
		ts = append(ts, RateLimit(RateLimitConfig{Rate: c.RateLimit.Rate, Burst: c.RateLimit.Burst}))
	}
	if c.MaxInFlight > 0 {
		ts = append(ts, InFlight(c.MaxInFlight))
	}
	if c.RequestTimeout > 0 {
		ts = append(ts, Timeout(c.RequestTimeout))
	}
	if c.BodyLimit > 0 {
		ts = append(ts, BodyLimit(c.BodyLimit))
	}
	return ts
}
