// Package config loads the profile editor's runtime settings. Every project
// gets a profile-editor.yaml in its root; missing files fall back to
// defaults so the editor works out of the box.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file looked up in the project directory.
	FileName = "profile-editor.yaml"

	defaultStoreFile = "profile.yaml"
	defaultLogFile   = "profile-editor.log"
)

// duration parses Go duration strings ("250ms") from YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("config: duration must be a string like \"250ms\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", raw, err)
	}
	*d = duration(parsed)
	return nil
}

// fileConfig models profile-editor.yaml on disk.
type fileConfig struct {
	StorePath   string   `yaml:"store_path"`
	LogPath     string   `yaml:"log_path"`
	LoadLatency duration `yaml:"load_latency"`
	SaveLatency duration `yaml:"save_latency"`
	// FailEvery makes every n-th store operation fail, for demonstrating
	// failure states. Zero disables injection.
	FailEvery int `yaml:"fail_every"`
}

// Config holds the resolved runtime configuration.
type Config struct {
	// ProjectDir is the directory the editor was started from.
	ProjectDir string

	// StorePath is the absolute path of the YAML profile record.
	StorePath string

	// LogPath is the absolute path of the session log file.
	LogPath string

	LoadLatency time.Duration
	SaveLatency time.Duration
	FailEvery   int
}

// NewConfig resolves configuration for a project directory. A missing config
// file is not an error; defaults apply.
func NewConfig(projectDir string) (*Config, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve project dir: %w", err)
	}

	fc := fileConfig{}
	data, err := os.ReadFile(filepath.Join(abs, FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", FileName, err)
	default:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", FileName, err)
		}
	}

	cfg := &Config{
		ProjectDir:  abs,
		StorePath:   fc.StorePath,
		LogPath:     fc.LogPath,
		LoadLatency: time.Duration(fc.LoadLatency),
		SaveLatency: time.Duration(fc.SaveLatency),
		FailEvery:   fc.FailEvery,
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StorePath == "" {
		c.StorePath = defaultStoreFile
	}
	if !filepath.IsAbs(c.StorePath) {
		c.StorePath = filepath.Join(c.ProjectDir, c.StorePath)
	}
	if c.LogPath == "" {
		c.LogPath = defaultLogFile
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(c.ProjectDir, c.LogPath)
	}
}

func (c *Config) validate() error {
	if c.LoadLatency < 0 || c.SaveLatency < 0 {
		return fmt.Errorf("config: latencies must not be negative")
	}
	if c.FailEvery < 0 {
		return fmt.Errorf("config: fail_every must not be negative")
	}
	return nil
}
