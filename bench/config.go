package bench

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Impl selects a queue implementation.
type Impl string

const (
	ImplHeap Impl = "heap"
	ImplList Impl = "list"
)

// Suite describes one benchmark.
type Suite struct {
	Name          string `yaml:"name"`
	Impl          Impl   `yaml:"impl"`
	BaseSize      int    `yaml:"base_size"`
	Runs          int    `yaml:"runs"`
	PriorityRange int    `yaml:"priority_range"`
	Seed          uint64 `yaml:"seed"`
}

// Validate reports the first invalid field.
func (s Suite) Validate() error {
	switch {
	case s.Impl != ImplHeap && s.Impl != ImplList:
		return fmt.Errorf("bench: suite %q: unknown impl %q", s.Name, s.Impl)
	case s.BaseSize <= 0:
		return fmt.Errorf("bench: suite %q: base_size must be positive", s.Name)
	case s.Runs <= 0:
		return fmt.Errorf("bench: suite %q: runs must be positive", s.Name)
	case s.PriorityRange <= 0:
		return fmt.Errorf("bench: suite %q: priority_range must be positive", s.Name)
	}
	return nil
}

// DefaultSuites returns the heap and list suites with their reference sizes.
func DefaultSuites() []Suite {
	return []Suite{
		{Name: "heap-25000", Impl: ImplHeap, BaseSize: 25000, Runs: 10, PriorityRange: 1000},
		{Name: "list-10000", Impl: ImplList, BaseSize: 10000, Runs: 100, PriorityRange: 10000},
	}
}

// Config is the file form of a benchmark invocation.
type Config struct {
	Suites   []Suite `yaml:"suites"`
	Parallel bool    `yaml:"parallel"`
	Format   Format  `yaml:"format"`
	DBPath   string  `yaml:"db_path"`
	OutDir   string  `yaml:"out_dir"`
	LogLevel string  `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Suites:   DefaultSuites(),
		Format:   FormatTable,
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file over the defaults. Fields absent from the file
// keep their default values; a suites list in the file replaces the default one.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every suite and the output format.
func (c *Config) Validate() error {
	if len(c.Suites) == 0 {
		return errors.New("bench: no suites configured")
	}
	seen := make(map[string]bool, len(c.Suites))
	for i := range c.Suites {
		s := &c.Suites[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("%s-%d", s.Impl, s.BaseSize)
		}
		if seen[s.Name] {
			return fmt.Errorf("bench: duplicate suite name %q", s.Name)
		}
		seen[s.Name] = true
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}
