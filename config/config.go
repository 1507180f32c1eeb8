// Package config loads the engine settings of an inference machine from
// YAML: rule set mode, operator table, logging and metrics.
//
// Rules and universes are built in code; only the engine around them is
// configurable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/on-the-ground/fuzzy_ive_go/inference"
	"github.com/on-the-ground/fuzzy_ive_go/metrics"
	"github.com/on-the-ground/fuzzy_ive_go/ops"
	"github.com/on-the-ground/fuzzy_ive_go/purefn"
	"github.com/on-the-ground/fuzzy_ive_go/rules"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode        string `yaml:"mode"`
	Workers     int    `yaml:"workers"`
	Logic       string `yaml:"logic"`
	Union       string `yaml:"union"`
	Defuzz      string `yaml:"defuzz"`
	Implication string `yaml:"implication"`
	// CycleSink buffers that many cycle records; 0 disables the sink.
	CycleSink int `yaml:"cycle_sink"`
	// SampleOutput samples the output universe when the machine is built.
	SampleOutput bool `yaml:"sample_output"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// Default reproduces the classic engine: sequential Zadeh logic, max union,
// threshold filtering and center of mass.
func Default() Config {
	return Config{
		Mode:         string(rules.Sequential),
		Logic:        LogicZadeh,
		Union:        UnionMax,
		Defuzz:       DefuzzCenterOfMass,
		Implication:  ImplicationFilter,
		SampleOutput: true,
		Log:          LogConfig{Level: "info"},
		Metrics:      MetricsConfig{Namespace: metrics.DefaultNamespace},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := rules.ParseMode(c.Mode); err != nil {
		return invalid(KeyMode, c.Mode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, KeyWorkers, c.Workers)
	}
	if c.CycleSink < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, KeyCycleSink, c.CycleSink)
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return invalid(KeyLogLevel, c.Log.Level)
	}
	return nil
}

// Options builds the operator table named by the config.
func (c Config) Options() (ops.Options, error) {
	var o ops.Options

	switch strings.ToLower(c.Logic) {
	case LogicZadeh:
		o.Logic = ops.Zadeh{}
	case LogicProduct:
		o.Logic = ops.Product{}
	case LogicLukasiewicz:
		o.Logic = ops.Lukasiewicz{}
	default:
		return o, invalid(KeyLogic, c.Logic)
	}

	switch strings.ToLower(c.Union) {
	case UnionMax:
		o.Sets = ops.MaxUnion{}
	case UnionProbabilistic:
		o.Sets = ops.ProbabilisticUnion{}
	default:
		return o, invalid(KeyUnion, c.Union)
	}

	switch strings.ToLower(c.Defuzz) {
	case DefuzzCenterOfMass:
		o.Defuzz = ops.DefuzzFunc(purefn.CenterOfMass)
	case DefuzzMeanOfMaximum:
		o.Defuzz = ops.DefuzzFunc(purefn.MeanOfMaximum)
	default:
		return o, invalid(KeyDefuzz, c.Defuzz)
	}

	switch strings.ToLower(c.Implication) {
	case ImplicationFilter, "":
		o.Implication = ops.ThresholdFilter{}
	case ImplicationClip:
		o.Implication = ops.MinClip{}
	default:
		return o, invalid(KeyImplication, c.Implication)
	}
	return o, nil
}

// RuleSetOptions configures a rule set's mode, pool size and logger.
func (c Config) RuleSetOptions(logger *zap.Logger) ([]rules.Option, error) {
	mode, err := rules.ParseMode(c.Mode)
	if err != nil {
		return nil, invalid(KeyMode, c.Mode)
	}
	opts := []rules.Option{rules.WithMode(mode), rules.WithWorkers(c.Workers)}
	if logger != nil {
		opts = append(opts, rules.WithLogger(logger))
	}
	return opts, nil
}

// MachineOptions configures an inference machine. mt may be nil.
func (c Config) MachineOptions(logger *zap.Logger, mt *metrics.Metrics) []inference.Option {
	var opts []inference.Option
	if logger != nil {
		opts = append(opts, inference.WithLogger(logger))
	}
	if mt != nil {
		opts = append(opts, inference.WithMetrics(mt))
	}
	if c.CycleSink > 0 {
		opts = append(opts, inference.WithCycleSink(c.CycleSink))
	}
	if c.SampleOutput {
		opts = append(opts, inference.WithDomainSampling())
	}
	return opts
}

// Logger builds a zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, invalid(KeyLogLevel, c.Log.Level)
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func invalid(key, value string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, key, value)
}
