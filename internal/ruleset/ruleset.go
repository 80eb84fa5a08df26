package ruleset

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one operator-defined quality rule: a CEL expression over a
// validated record, contributing to the named dimension when it evaluates
// true.
type Rule struct {
	Name       string `yaml:"name"`
	Dimension  string `yaml:"dimension"`
	Expression string `yaml:"expression"`
}

// Config is the rules file layout
type Config struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads and validates a rules file. Unknown YAML fields fail
// immediately so typos cannot silently drop a rule.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode rules file: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	seen := make(map[string]bool)
	for i, r := range cfg.Rules {
		if r.Name == "" {
			return fmt.Errorf("rule %d: name is required", i)
		}
		if r.Dimension == "" {
			return fmt.Errorf("rule %q: dimension is required", r.Name)
		}
		if r.Expression == "" {
			return fmt.Errorf("rule %q: expression is required", r.Name)
		}
		if seen[r.Name] {
			return fmt.Errorf("rule %q: duplicate name", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

// ByDimension groups rules by their target dimension, preserving file
// order within each group
func (c *Config) ByDimension() map[string][]Rule {
	groups := make(map[string][]Rule)
	for _, r := range c.Rules {
		groups[r.Dimension] = append(groups[r.Dimension], r)
	}
	return groups
}
