// SPDX-License-Identifier: MIT

// Package config loads calculation settings from a YAML file and LCA_*
// environment variables and converts them into package options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lcamatrix/inventory"
	"github.com/katalvlaran/lcamatrix/solver"
)

// EnvPrefix prefixes environment overrides: solver.kind -> LCA_SOLVER_KIND.
const EnvPrefix = "LCA"

// ErrInvalidSettings indicates a value that does not map to a valid option.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings stores all configuration of a calculation service.
type Settings struct {
	Solver     SolverSettings     `mapstructure:"solver"`
	Allocation AllocationSettings `mapstructure:"allocation"`
	Linking    LinkingSettings    `mapstructure:"linking"`
	Calc       CalcSettings       `mapstructure:"calc"`
	Log        LogSettings        `mapstructure:"log"`
}

// SolverSettings selects and tunes the solver.
type SolverSettings struct {
	Kind          string  `mapstructure:"kind"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"maxIterations"`
	MaxCondition  float64 `mapstructure:"maxCondition"`
}

// AllocationSettings stores the allocation method applied to all processes.
type AllocationSettings struct {
	Method string `mapstructure:"method"`
}

// LinkingSettings stores the gap policy.
type LinkingSettings struct {
	Strict bool `mapstructure:"strict"`
}

// CalcSettings stores batch execution limits.
type CalcSettings struct {
	MaxParallel int `mapstructure:"maxParallel"`
}

// LogSettings stores the log level name (zerolog names: debug, info, ...).
type LogSettings struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver.kind", string(solver.KindLU))
	v.SetDefault("solver.tolerance", solver.DefaultTolerance)
	v.SetDefault("solver.maxIterations", solver.DefaultMaxIterations)
	v.SetDefault("solver.maxCondition", solver.DefaultMaxCondition)
	v.SetDefault("allocation.method", inventory.AllocationUseDefault.String())
	v.SetDefault("linking.strict", false)
	v.SetDefault("calc.maxParallel", 4)
	v.SetDefault("log.level", zerolog.InfoLevel.String())
}

// Load reads settings from configPath, or from ./lca.yaml when configPath is
// empty; a missing default file falls back to defaults. Environment
// variables override file values.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("lca")
		v.SetConfigType("yaml")
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unable to decode into struct: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks that every value converts into a valid option.
func (s *Settings) Validate() error {
	if _, err := solver.ParseKind(s.Solver.Kind); err != nil {
		return fmt.Errorf("%w: solver.kind: %v", ErrInvalidSettings, err)
	}
	if _, err := inventory.ParseAllocationMethod(s.Allocation.Method); err != nil {
		return fmt.Errorf("%w: allocation.method: %v", ErrInvalidSettings, err)
	}
	if _, err := zerolog.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidSettings, err)
	}
	if s.Calc.MaxParallel <= 0 {
		return fmt.Errorf("%w: calc.maxParallel must be positive (%d)", ErrInvalidSettings, s.Calc.MaxParallel)
	}

	return nil
}

// SolverOptions converts the solver section into solver options.
func (s *Settings) SolverOptions() []solver.Option {
	return []solver.Option{
		solver.WithTolerance(s.Solver.Tolerance),
		solver.WithMaxIterations(s.Solver.MaxIterations),
		solver.WithMaxCondition(s.Solver.MaxCondition),
	}
}

// NewSolver builds the configured solver.
func (s *Settings) NewSolver(logger zerolog.Logger) (solver.Solver, error) {
	kind, err := solver.ParseKind(s.Solver.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: solver.kind: %v", ErrInvalidSettings, err)
	}

	return solver.New(kind, append(s.SolverOptions(), solver.WithLogger(logger))...)
}

// BuilderOptions converts allocation and linking settings into builder options.
func (s *Settings) BuilderOptions() ([]inventory.Option, error) {
	m, err := inventory.ParseAllocationMethod(s.Allocation.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: allocation.method: %v", ErrInvalidSettings, err)
	}
	opts := []inventory.Option{inventory.WithAllocation(m)}
	if s.Linking.Strict {
		opts = append(opts, inventory.WithStrictLinking())
	}

	return opts, nil
}

// Logger returns a stderr logger with timestamps at the configured level.
func Logger(s *Settings) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(s.Log.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log.level: %v", ErrInvalidSettings, err)
	}

	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger(), nil
}
