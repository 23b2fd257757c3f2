// Package config loads the server and toolkit settings.
//
// Values are resolved in order of priority:
//
//  1. Command-line flags registered with RegisterFlags
//  2. Environment variables prefixed with MULTITOOL_, e.g. MULTITOOL_LOG_LEVEL=debug
//  3. The config file, any format viper reads (yaml, json, toml)
//  4. Default values
//
// Example config file:
//
//	addr: ":8080"
//	log:
//	  level: debug
//	  format: json
//	regression:
//	  outlier_tukey_factor: 3
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aouyang1/go-multitool"
	"github.com/aouyang1/go-multitool/dashboard"
	"github.com/aouyang1/go-multitool/regression"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MULTITOOL"

// log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrInvalidAddr        = errors.New("listen address must not be empty")
	ErrInvalidMetricsPath = errors.New("metrics path must start with /")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("log format must be text or json")
	ErrInvalidTimeout     = errors.New("timeouts must not be negative")
)

// Config is the full set of settings of the multitool binary
type Config struct {
	Addr              string        `json:"addr" mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
	Log     LogConfig     `json:"log" mapstructure:"log"`

	Regression *regression.Options `json:"regression" mapstructure:"regression"`
	LinePoints int                 `json:"line_points" mapstructure:"line_points"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// flag names mapped to their config keys
var flagKeys = map[string]string{
	"addr":         "addr",
	"metrics":      "metrics.enabled",
	"metrics-path": "metrics.path",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// RegisterFlags adds the flags Load binds to their config keys. Unset flags never override the
// environment or the config file.
func RegisterFlags(fs *pflag.FlagSet) {
	def := dashboard.NewDefaultOptions()
	fs.String("addr", def.Addr, "address the dashboard listens on")
	fs.Bool("metrics", def.MetricsEnabled, "serve prometheus metrics")
	fs.String("metrics-path", def.MetricsPath, "path of the prometheus metrics endpoint")
	fs.String("log-level", "info", "log level, one of debug, info, warn, error")
	fs.String("log-format", FormatText, "log format, text or json")
}

func setDefaults(v *viper.Viper) {
	dash := dashboard.NewDefaultOptions()
	v.SetDefault("addr", dash.Addr)
	v.SetDefault("read_header_timeout", dash.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", dash.ShutdownTimeout)
	v.SetDefault("metrics.enabled", dash.MetricsEnabled)
	v.SetDefault("metrics.path", dash.MetricsPath)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", FormatText)

	tk := multitool.NewDefaultOptions()
	v.SetDefault("line_points", tk.LinePoints)
	v.SetDefault("regression.fit_intercept", tk.RegressionOptions.FitIntercept)
	v.SetDefault("regression.outlier_lower_percentile", tk.RegressionOptions.OutlierLowerPercentile)
	v.SetDefault("regression.outlier_upper_percentile", tk.RegressionOptions.OutlierUpperPercentile)
	v.SetDefault("regression.outlier_tukey_factor", tk.RegressionOptions.OutlierTukeyFactor)
}

// Load resolves the config from the optional file at path, the environment and the flags. Either
// of path and fs may be empty.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s, %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s, %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the server settings and fills unset toolkit options with defaults
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrInvalidAddr
	}
	if c.ReadHeaderTimeout < 0 || c.ShutdownTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("got %q, %w", c.Metrics.Path, ErrInvalidMetricsPath)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("got %q, %w", c.Log.Format, ErrInvalidLogFormat)
	}

	opt, err := c.ToolkitOptions().Validate()
	if err != nil {
		return err
	}
	c.Regression = opt.RegressionOptions
	c.LinePoints = opt.LinePoints
	return nil
}

// ToolkitOptions returns the options used to fit the predictors
func (c *Config) ToolkitOptions() *multitool.Options {
	return &multitool.Options{
		RegressionOptions: c.Regression,
		LinePoints:        c.LinePoints,
	}
}

// DashboardOptions returns the listener options of the dashboard
func (c *Config) DashboardOptions() *dashboard.Options {
	return &dashboard.Options{
		Addr:              c.Addr,
		MetricsEnabled:    c.Metrics.Enabled,
		MetricsPath:       c.Metrics.Path,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		ShutdownTimeout:   c.ShutdownTimeout,
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("got %q, %w", s, ErrInvalidLogLevel)
	}
	return level, nil
}

// NewLogger builds the logger described by the log settings writing to w
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	handlerOpt := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case FormatText:
		return slog.New(slog.NewTextHandler(w, handlerOpt)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpt)), nil
	}
	return nil, fmt.Errorf("got %q, %w", cfg.Format, ErrInvalidLogFormat)
}
