// Package config loads toolbench configuration from a TOML file and
// turns it into workspace options.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/agentfoundry/toolbench/internal/environ"
	"github.com/agentfoundry/toolbench/internal/execpolicy"
	"github.com/agentfoundry/toolbench/internal/workspace"
)

// Config is the on-disk configuration shape.
type Config struct {
	// Root is the workspace directory. Required.
	Root string `toml:"root"`

	// ShellTimeoutMs bounds each shell command. Zero means the default.
	ShellTimeoutMs int `toml:"shell_timeout_ms"`

	// AllowedHosts restricts the network tools. Empty means
	// unrestricted.
	AllowedHosts []string `toml:"allowed_hosts"`

	// Env holds session environment overrides.
	Env map[string]string `toml:"env"`

	// EnvInherit selects which host variables seed the session
	// environment: "all", "none" or "core". Empty means all.
	EnvInherit string `toml:"env_inherit"`

	// EnvExclude lists wildcard patterns of host variables to drop.
	EnvExclude []string `toml:"env_exclude"`

	// PolicyFile points at a Starlark exec policy. Empty means no
	// policy.
	PolicyFile string `toml:"policy_file"`

	// LogLevel is a logrus level name. Empty means info.
	LogLevel string `toml:"log_level"`
}

// Default returns a config with working defaults for everything but
// Root.
func Default() Config {
	return Config{
		ShellTimeoutMs: int(workspace.DefaultShellTimeout / time.Millisecond),
		LogLevel:       "info",
	}
}

// Load reads and decodes a TOML config file. Unknown keys are an error
// so typos surface instead of silently applying defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Root == "" {
		return cfg, fmt.Errorf("config %s: root is required", path)
	}
	return cfg, nil
}

// Logger builds a logrus logger at the configured level.
func (c Config) Logger() (*logrus.Logger, error) {
	log := logrus.New()
	level := c.LogLevel
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	log.SetLevel(parsed)
	return log, nil
}

// WorkspaceOptions converts the config into workspace options, loading
// the exec policy file if one is set.
func (c Config) WorkspaceOptions(log *logrus.Logger) (workspace.Options, error) {
	opts := workspace.Options{
		Root:         c.Root,
		ShellTimeout: time.Duration(c.ShellTimeoutMs) * time.Millisecond,
		AllowedHosts: c.AllowedHosts,
		EnvOverrides: c.Env,
		EnvPolicy: environ.SeedPolicy{
			Inherit: c.EnvInherit,
			Exclude: c.EnvExclude,
		},
		Logger: log,
	}
	if c.PolicyFile != "" {
		policy, err := execpolicy.LoadPolicyFile(c.PolicyFile)
		if err != nil {
			return opts, fmt.Errorf("loading exec policy %s: %w", c.PolicyFile, err)
		}
		opts.ExecPolicy = policy
	}
	return opts, nil
}
