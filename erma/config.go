package erma

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ermabp/semiring"
)

// Config is the YAML form of Options.
//
//	schedule: tree_like          # tree_like | random
//	update_order: parallel       # sequential | parallel
//	max_iterations: 100
//	algebra: log                 # real | log | logsign
//	normalize_messages: true
//	convergence_threshold: 0
//	keep_tape: true
//	seed: 0
type Config struct {
	Schedule             ScheduleType `yaml:"schedule"`
	UpdateOrder          UpdateOrder  `yaml:"update_order"`
	MaxIterations        int          `yaml:"max_iterations"`
	Algebra              string       `yaml:"algebra"`
	NormalizeMessages    bool         `yaml:"normalize_messages"`
	ConvergenceThreshold float64      `yaml:"convergence_threshold"`
	KeepTape             bool         `yaml:"keep_tape"`
	Seed                 int64        `yaml:"seed"`
}

// DefaultConfig mirrors DefaultOptions.
func DefaultConfig() *Config {
	o := DefaultOptions()

	return &Config{
		Schedule:             o.Schedule,
		UpdateOrder:          o.UpdateOrder,
		MaxIterations:        o.MaxIterations,
		Algebra:              o.Algebra.Name(),
		NormalizeMessages:    o.NormalizeMessages,
		ConvergenceThreshold: o.ConvergenceThreshold,
		KeepTape:             o.KeepTape,
		Seed:                 o.Seed,
	}
}

// LoadConfig decodes a YAML document over DefaultConfig. Unknown keys are
// rejected; an empty document yields the defaults.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("LoadConfig: failed to parse config: %w", err)
	}
	if _, err := semiring.ByName(cfg.Algebra); err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}

	return cfg, nil
}

// LoadConfigFile reads a YAML file through LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadConfigFile: failed to read config: %w", err)
	}

	return LoadConfig(bytes.NewReader(data))
}

// Options converts the configuration into engine options.
func (c *Config) Options() ([]Option, error) {
	alg, err := semiring.ByName(c.Algebra)
	if err != nil {
		return nil, fmt.Errorf("Options: %w", err)
	}

	return []Option{
		WithSchedule(c.Schedule),
		WithUpdateOrder(c.UpdateOrder),
		WithMaxIterations(c.MaxIterations),
		WithAlgebra(alg),
		WithNormalizeMessages(c.NormalizeMessages),
		WithConvergenceThreshold(c.ConvergenceThreshold),
		WithKeepTape(c.KeepTape),
		WithSeed(c.Seed),
	}, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("Marshal: failed to marshal config: %w", err)
	}

	return out, nil
}
