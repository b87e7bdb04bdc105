// SPDX-License-Identifier: MIT

// Package config loads lvrec settings from defaults, an optional lvrec.yaml,
// LVREC_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvrec/recurrence"
)

// File names searched in the working directory when --config is not given.
const (
	FileName    = "lvrec.yaml"
	FileNameAlt = "lvrec.yml"
)

// EnvPrefix is the prefix of environment overrides: LVREC_ROUND_DIGITS → round_digits.
const EnvPrefix = "LVREC_"

// Output formats.
const (
	DefaultOutput = OutputText

	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ValidOutputs lists the accepted --output values.
var ValidOutputs = []string{OutputText, OutputTable, OutputJSON, OutputYAML}

// ErrInvalid marks a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// skipFlags are persistent flags that are not configuration keys.
var skipFlags = map[string]bool{
	"config":  true,
	"help":    true,
	"version": true,
}

// Config is the effective configuration of one lvrec invocation.
type Config struct {
	Output         string `koanf:"output"`
	Verbose        bool   `koanf:"verbose"`
	RoundDigits    int    `koanf:"round_digits"`
	BasePrecision  int    `koanf:"base_precision"`
	MaxOrder       int    `koanf:"max_order"`
	Strict         bool   `koanf:"strict"`
	ConjugatePairs bool   `koanf:"conjugate_pairs"`
	Workers        int    `koanf:"workers"`
	History        string `koanf:"history"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// defaults returns the lowest-precedence layer.
func defaults() map[string]any {
	return map[string]any{
		"output":          DefaultOutput,
		"verbose":         false,
		"round_digits":    recurrence.DefaultRoundDigits,
		"base_precision":  recurrence.DefaultBasePrecision,
		"max_order":       recurrence.DefaultMaxOrder,
		"strict":          false,
		"conjugate_pairs": false,
		"workers":         runtime.NumCPU(),
		"history":         "",
	}
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags the user actually set are applied. A missing cfgFile is an
// error; a missing lvrec.yaml in the working directory is not.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. config file
	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. environment: LVREC_BASE_PRECISION -> base_precision
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			// kebab-case flag -> snake_case key
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. decode; unknown keys are an error so typos in lvrec.yaml surface
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = path
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// findConfigFile resolves the file to read.
// Priority: explicit path > lvrec.yaml > lvrec.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{FileName, FileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

// Validate checks every value against the ranges the solver accepts.
func (c *Config) Validate() error {
	if !slices.Contains(ValidOutputs, c.Output) {
		return fmt.Errorf("%w: output %q must be one of %v", ErrInvalid, c.Output, ValidOutputs)
	}
	if c.RoundDigits < 0 || c.RoundDigits > 15 {
		return fmt.Errorf("%w: round_digits %d must be in [0, 15]", ErrInvalid, c.RoundDigits)
	}
	if c.BasePrecision < 0 || c.BasePrecision > 12 {
		return fmt.Errorf("%w: base_precision %d must be in [0, 12]", ErrInvalid, c.BasePrecision)
	}
	if c.MaxOrder < 1 {
		return fmt.Errorf("%w: max_order %d must be at least 1", ErrInvalid, c.MaxOrder)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalid, c.Workers)
	}

	return nil
}

// Default returns the configuration used when none was loaded.
func Default() *Config {
	return &Config{
		Output:        DefaultOutput,
		RoundDigits:   recurrence.DefaultRoundDigits,
		BasePrecision: recurrence.DefaultBasePrecision,
		MaxOrder:      recurrence.DefaultMaxOrder,
		Workers:       runtime.NumCPU(),
	}
}

// SolverOptions translates the configuration into solver options.
// Call only on a validated Config: the option constructors panic on
// out-of-range values.
func (c *Config) SolverOptions(logger *slog.Logger) []recurrence.Option {
	opts := []recurrence.Option{
		recurrence.WithRoundDigits(c.RoundDigits),
		recurrence.WithBasePrecision(c.BasePrecision),
		recurrence.WithMaxOrder(c.MaxOrder),
	}
	if c.Strict {
		opts = append(opts, recurrence.WithStrictParsing())
	}
	if c.ConjugatePairs {
		opts = append(opts, recurrence.WithConjugatePairs())
	}
	if logger != nil {
		opts = append(opts, recurrence.WithLogger(logger))
	}

	return opts
}

// NewLogger returns a text logger on w: debug level when verbose, warnings
// otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
