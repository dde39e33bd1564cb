package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configEnvVar      = "LOX_CONFIG"
	defaultConfigName = ".loxrc.yml"
)

// Config holds the optional settings read from a YAML file.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	// Color forces colored diagnostics on or off; nil means detect.
	Color   *bool `yaml:"color"`
	Verbose bool  `yaml:"verbose"`
	// MaxCallDepth limits nested calls; 0 means DefaultMaxCallDepth.
	MaxCallDepth int `yaml:"max_call_depth"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:             "> ",
		ContinuationPrompt: "... ",
		HistoryFile:        "~/.lox_history",
	}
}

// ParseConfig decodes YAML on top of the defaults. Unknown keys are
// rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var issues []string
	if c.Prompt == "" {
		issues = append(issues, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		issues = append(issues, "continuation_prompt must not be empty")
	}
	if c.MaxCallDepth < 0 {
		issues = append(issues, "max_call_depth must not be negative")
	}
	if len(issues) > 0 {
		return fmt.Errorf("config: %s", strings.Join(issues, "; "))
	}
	return nil
}

// LoadConfig reads the configuration file. An explicit path must exist;
// without one, $LOX_CONFIG and then ~/.loxrc.yml are tried and the
// defaults are used when neither exists.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(configEnvVar)
		explicit = path != ""
	}
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, defaultConfigName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return ParseConfig(data)
}

// HistoryPath returns HistoryFile with a leading ~ expanded.
func (c Config) HistoryPath() string {
	if c.HistoryFile == "~" || strings.HasPrefix(c.HistoryFile, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(c.HistoryFile, "~"))
	}
	return c.HistoryFile
}
