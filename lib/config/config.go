// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mathfs/mathfs/lib/primefile"
	"github.com/mathfs/mathfs/lib/service"
)

// EnvironmentVariable names the configuration file for Load.
const EnvironmentVariable = "MATHFS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the mathfsd configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	Mount   MountConfig   `yaml:"mount"`
	Service ServiceConfig `yaml:"service"`
	Counter CounterConfig `yaml:"counter"`
	Log     LogConfig     `yaml:"log"`

	// Per-environment overrides, applied after the base config.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Mount   *MountConfig     `yaml:"mount,omitempty"`
	Service *ServiceConfig   `yaml:"service,omitempty"`
	Counter *CounterOverride `yaml:"counter,omitempty"`
	Log     *LogConfig       `yaml:"log,omitempty"`
}

// MountConfig configures the FUSE mount.
type MountConfig struct {
	// Mountpoint is where the filesystem is mounted. Empty disables
	// the FUSE surface.
	Mountpoint string `yaml:"mountpoint"`

	// AllowOther lets users other than the daemon's access the mount.
	// Requires user_allow_other in /etc/fuse.conf.
	AllowOther bool `yaml:"allow_other"`

	// FsName is the filesystem name shown in /proc/mounts.
	// Default: mathfs
	FsName string `yaml:"fs_name"`
}

// ServiceConfig configures the socket surface.
type ServiceConfig struct {
	// SocketPath is the Unix socket the daemon serves. Empty disables
	// the socket surface.
	SocketPath string `yaml:"socket_path"`
}

// CounterConfig configures the shared counter.
type CounterConfig struct {
	// Initial is the counter's value at startup. The first read
	// serves the smallest prime above it.
	// Default: 1
	Initial int64 `yaml:"initial"`

	// Sequencing is "exclusive" or "atomic".
	// Default: exclusive
	Sequencing string `yaml:"sequencing"`
}

// CounterOverride overrides counter settings. Initial is a pointer so
// that an override can set it to zero.
type CounterOverride struct {
	Initial    *int64 `yaml:"initial,omitempty"`
	Sequencing string `yaml:"sequencing,omitempty"`
}

// LogConfig configures daemon logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level"`
}

// DefaultSocketPath returns the socket path used when none is
// configured: mathfs.sock in $XDG_RUNTIME_DIR, or in the temporary
// directory when that is unset. The CLI dials the same path.
func DefaultSocketPath() string {
	directory := os.Getenv("XDG_RUNTIME_DIR")
	if directory == "" {
		directory = os.TempDir()
	}
	return filepath.Join(directory, "mathfs.sock")
}

// Default returns the configuration used before any file is loaded.
func Default() *Config {
	return &Config{
		Environment: Development,
		Mount: MountConfig{
			FsName: "mathfs",
		},
		Service: ServiceConfig{
			SocketPath: DefaultSocketPath(),
		},
		Counter: CounterConfig{
			Initial:    1,
			Sequencing: "exclusive",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by MATHFS_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your mathfs.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over the defaults, applies
// the matching environment section, and expands variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into c. JSON is a
// subset of YAML, so JSONC only needs its comments stripped.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{Level: "warn"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Mount != nil {
		if overrides.Mount.Mountpoint != "" {
			c.Mount.Mountpoint = overrides.Mount.Mountpoint
		}
		// AllowOther is a bool, so it is always taken from the override.
		c.Mount.AllowOther = overrides.Mount.AllowOther
		if overrides.Mount.FsName != "" {
			c.Mount.FsName = overrides.Mount.FsName
		}
	}

	if overrides.Service != nil && overrides.Service.SocketPath != "" {
		c.Service.SocketPath = overrides.Service.SocketPath
	}

	if overrides.Counter != nil {
		if overrides.Counter.Initial != nil {
			c.Counter.Initial = *overrides.Counter.Initial
		}
		if overrides.Counter.Sequencing != "" {
			c.Counter.Sequencing = overrides.Counter.Sequencing
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":            os.Getenv("HOME"),
		"XDG_RUNTIME_DIR": os.Getenv("XDG_RUNTIME_DIR"),
	}

	c.Mount.Mountpoint = expandVars(c.Mount.Mountpoint, vars)
	c.Service.SocketPath = expandVars(c.Service.SocketPath, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Mount.Mountpoint == "" && c.Service.SocketPath == "" {
		errs = append(errs, errors.New("at least one of mount.mountpoint and service.socket_path is required"))
	}
	if c.Mount.Mountpoint != "" && !filepath.IsAbs(c.Mount.Mountpoint) {
		errs = append(errs, fmt.Errorf("mount.mountpoint must be absolute: %s", c.Mount.Mountpoint))
	}

	if _, err := primefile.ParseSequencing(c.Counter.Sequencing); err != nil {
		errs = append(errs, fmt.Errorf("counter.sequencing: %w", err))
	}
	if _, err := service.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// EnsurePaths creates the mountpoint and the socket's directory.
func (c *Config) EnsurePaths() error {
	var directories []string
	if c.Mount.Mountpoint != "" {
		directories = append(directories, c.Mount.Mountpoint)
	}
	if c.Service.SocketPath != "" {
		directories = append(directories, filepath.Dir(c.Service.SocketPath))
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", directory, err)
		}
	}
	return nil
}
