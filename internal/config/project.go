package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the levelc.yaml project configuration.
// Every field is optional; an empty file yields the defaults.
type Config struct {
	Dummy   DummyConfig   `yaml:"dummy"`
	Flatten FlattenConfig `yaml:"flatten"`
	Emit    EmitConfig    `yaml:"emit"`
}

// DummyConfig controls names generated for temporaries and inlined locals.
type DummyConfig struct {
	// Prefix is prepended to the counter value (e.g. "dummy" → dummy1).
	// Must be a valid identifier.
	Prefix string `yaml:"prefix,omitempty"`

	// Start is the first counter value. Defaults to 1.
	Start *int `yaml:"start,omitempty"`
}

// FlattenConfig controls the expression flattener.
type FlattenConfig struct {
	// Passes is how many times the flattener rescans a rewritten expression.
	// The default of 1 removes exactly one level of nesting per statement.
	Passes int `yaml:"passes,omitempty"`
}

// EmitConfig controls the Level 0 XML document.
type EmitConfig struct {
	// Root is the document element name.
	Root string `yaml:"root,omitempty"`

	// Activator is used for statements without a `$ activator` suffix.
	Activator string `yaml:"activator,omitempty"`

	// Priority is written on every Setter.
	Priority int `yaml:"priority,omitempty"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Default returns the configuration used when no levelc.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a levelc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses levelc.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for levelc.yaml starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Dummy.Prefix != "" && !identifierPattern.MatchString(c.Dummy.Prefix) {
		return fmt.Errorf("%s: dummy.prefix %q is not a valid identifier", path, c.Dummy.Prefix)
	}
	if c.Dummy.Start != nil && *c.Dummy.Start < 0 {
		return fmt.Errorf("%s: dummy.start must not be negative, got %d", path, *c.Dummy.Start)
	}
	if c.Flatten.Passes < 0 {
		return fmt.Errorf("%s: flatten.passes must be at least 1, got %d", path, c.Flatten.Passes)
	}
	if c.Emit.Root != "" && !identifierPattern.MatchString(c.Emit.Root) {
		return fmt.Errorf("%s: emit.root %q is not a valid element name", path, c.Emit.Root)
	}
	return nil
}

// setDefaults fills in zero values.
func (c *Config) setDefaults() {
	if c.Dummy.Prefix == "" {
		c.Dummy.Prefix = DefaultDummyPrefix
	}
	if c.Dummy.Start == nil {
		start := DefaultDummyStart
		c.Dummy.Start = &start
	}
	if c.Flatten.Passes == 0 {
		c.Flatten.Passes = DefaultPasses
	}
	if c.Emit.Root == "" {
		c.Emit.Root = DefaultRootElement
	}
	if c.Emit.Activator == "" {
		c.Emit.Activator = DefaultActivator
	}
}

// DummyStart returns the configured first counter value.
func (c *Config) DummyStart() int {
	if c.Dummy.Start == nil {
		return DefaultDummyStart
	}
	return *c.Dummy.Start
}
