package inspector

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/nexus-a11y/srpreview"
)

// Config holds the inspector configuration.
type Config struct {
	// Joiner separates segments in preview strings. Default: ", ".
	Joiner string `json:"joiner" yaml:"joiner"`

	// MaxBodyBytes caps HTTP request bodies. Default: 1 MiB.
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `json:"log_level" yaml:"log_level"`

	HTTP   HTTPConfig   `json:"http" yaml:"http"`
	Render RenderConfig `json:"render" yaml:"render"`
}

// HTTPConfig controls the HTTP surface.
type HTTPConfig struct {
	Addr string `json:"addr" yaml:"addr"` // default ":8090"
}

// RenderConfig controls HTML fragment rendering.
type RenderConfig struct {
	// ClassPrefix is the CSS class stem; each segment gets
	// "<prefix> <prefix>-<kind>". Default: "sr-seg".
	ClassPrefix string `json:"class_prefix" yaml:"class_prefix"`
}

var classPrefixRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// LoadConfigFile reads a YAML configuration file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.defaults()
	return &cfg, nil
}

func (c *Config) defaults() {
	if c.Joiner == "" {
		c.Joiner = srpreview.DefaultJoiner
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8090"
	}
	if c.Render.ClassPrefix == "" {
		c.Render.ClassPrefix = "sr-seg"
	}
}

func (c *Config) validate() error {
	if p := c.Render.ClassPrefix; p != "" && !classPrefixRe.MatchString(p) {
		return fmt.Errorf("render.class_prefix %q: must be a CSS identifier", p)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// reset clears the fields validate rejects so defaults can refill them.
func (c *Config) reset() {
	if !classPrefixRe.MatchString(c.Render.ClassPrefix) {
		c.Render.ClassPrefix = ""
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = ""
	}
}
