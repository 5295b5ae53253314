package compiler

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the driver settings. Values come from an optional YAML file
// and are then overridden by command line flags.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Color       string `yaml:"color"` // auto, always or never
	DumpTree    bool   `yaml:"dump_tree"`
	DumpGlobals bool   `yaml:"dump_globals"`
	Jobs        int    `yaml:"jobs"`
}

// DefaultConfig returns the settings used when no file or flag says otherwise.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Color:    "auto",
		Jobs:     1,
	}
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate rejects values the driver cannot act on.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}
	if c.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// NewLogger builds the driver's logger writing text entries to w.
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Errorf("invalid log level %q", c.LogLevel)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    c.Color == "never",
		ForceColors:      c.Color == "always",
	})
	return logger, nil
}
