// Package config loads the settings shared by checkers, the
// assertion engine and suite runs: comparison thresholds, message
// formatting and logging. Settings come from defaults, then an
// optional YAML file, then FLUENT_* environment variables, which
// may themselves be sourced from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"digital.vasic.fluent/pkg/check"
	"digital.vasic.fluent/pkg/compare"
	"digital.vasic.fluent/pkg/logging"
	"digital.vasic.fluent/pkg/message"
	"digital.vasic.fluent/pkg/metrics"
)

// Log output formats.
const (
	LogNone    = "none"
	LogConsole = "console"
	LogJSON    = "json"
)

// LoggingConfig selects where check records and engine logs go.
type LoggingConfig struct {
	// Format is one of none, console or json.
	Format string `yaml:"format" json:"format"`
	// Level is the minimum level: debug, info, warn or error.
	Level string `yaml:"level" json:"level"`
	// Verbose also logs passing checks.
	Verbose bool `yaml:"verbose" json:"verbose"`
	// Dir receives fluent.log and checks.log for the json format.
	// Empty writes JSON lines to stdout.
	Dir string `yaml:"dir" json:"dir"`
	// Echo also prints json format logs to the console.
	Echo bool `yaml:"echo" json:"echo"`
	// Redact lists strings masked in every log line.
	Redact []string `yaml:"redact" json:"redact"`
}

// Config is the complete engine configuration.
type Config struct {
	Compare compare.Options      `yaml:"compare" json:"compare"`
	Format  message.FormatConfig `yaml:"format" json:"format"`
	Logging LoggingConfig        `yaml:"logging" json:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Compare: compare.DefaultOptions(),
		Format:  message.DefaultFormatConfig(),
		Logging: LoggingConfig{
			Format: LogNone,
			Level:  "info",
		},
	}
}

// Load builds a configuration from the defaults, the YAML file at
// path (skipped when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadEnvFile exports the variables of a .env file that are not
// already set. The file named by FLUENT_ENV is used when path is
// empty, and .env when that is unset too. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = os.Getenv("FLUENT_ENV")
	}
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from FLUENT_* variables.
func (c *Config) ApplyEnv() error {
	floats := map[string]*float64{
		"FLUENT_DIFFERENCE_THRESHOLD":     &c.Compare.DifferenceThreshold,
		"FLUENT_TOLERANCE_HINT_THRESHOLD": &c.Compare.ToleranceHintThreshold,
	}
	for name, dst := range floats {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"FLUENT_MAX_DIFFS":    &c.Format.MaxDiffs,
		"FLUENT_MAX_DEPTH":    &c.Format.MaxDepth,
		"FLUENT_DIFF_CONTEXT": &c.Format.DiffContext,
	}
	for name, dst := range ints {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"FLUENT_MATCH_STRUCT_TYPES": &c.Compare.MatchStructTypes,
		"FLUENT_SHOW_DIFF":          &c.Format.ShowDiff,
		"FLUENT_VERBOSE":            &c.Logging.Verbose,
		"FLUENT_LOG_ECHO":           &c.Logging.Echo,
	}
	for name, dst := range bools {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup("FLUENT_LOG_FORMAT"); ok {
		c.Logging.Format = strings.ToLower(v)
	}
	if v, ok := lookup("FLUENT_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("FLUENT_LOG_DIR"); ok {
		c.Logging.Dir = v
	}
	if v, ok := lookup("FLUENT_LOG_REDACT"); ok {
		c.Logging.Redact = strings.Split(v, ",")
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Compare.DifferenceThreshold < 0 {
		return fmt.Errorf("difference_threshold must not be negative")
	}
	if c.Compare.ToleranceHintThreshold < 0 {
		return fmt.Errorf("tolerance_hint_threshold must not be negative")
	}
	if c.Format.MaxDiffs < 0 {
		return fmt.Errorf("max_diffs must not be negative")
	}
	switch c.Logging.Format {
	case LogNone, LogConsole, LogJSON:
	default:
		return fmt.Errorf("unknown log format: %s", c.Logging.Format)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	return nil
}

// CompareOptions returns the comparison settings as options.
func (c Config) CompareOptions() []compare.Option {
	return []compare.Option{compare.WithOptions(c.Compare)}
}

// Formatter builds the message formatter.
func (c Config) Formatter(opts ...message.FormatterOption) *message.TextFormatter {
	return message.NewTextFormatter(c.Format, opts...)
}

// Logger builds the configured logger. The caller closes it.
func (c Config) Logger() (logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}
	verbose := c.Logging.Verbose || level == logging.LevelDebug

	var logger logging.Logger
	switch c.Logging.Format {
	case LogNone, "":
		return logging.NullLogger{}, nil
	case LogConsole:
		logger = logging.NewConsoleLogger(verbose)
	case LogJSON:
		if c.Logging.Dir == "" {
			// stdout already is the console
			logger = logging.NewJSONLoggerTo(os.Stdout, level, verbose)
			break
		}
		jl, err := logging.SetupLogging(c.Logging.Dir, level, verbose)
		if err != nil {
			return nil, err
		}
		logger = jl
		if c.Logging.Echo {
			logger = logging.NewMultiLogger(jl, logging.NewConsoleLogger(verbose))
		}
	default:
		return nil, fmt.Errorf("unknown log format: %s", c.Logging.Format)
	}

	if len(c.Logging.Redact) > 0 {
		logger = logging.NewRedactingLogger(logger, c.Logging.Redact...)
	}
	return logger, nil
}

// CheckerOptions wires comparison, formatting and logging into
// checker options. m may be nil.
func (c Config) CheckerOptions(m metrics.CheckMetrics) ([]check.Option, error) {
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}
	opts := []check.Option{
		check.WithCompareOptions(c.CompareOptions()...),
		check.WithFormatter(c.Formatter()),
		check.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, check.WithMetrics(m))
	}
	return opts, nil
}
