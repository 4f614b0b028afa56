package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	BackendTaskwarrior = "taskwarrior"
	BackendLocal       = "local"
	BackendCloud       = "cloud"

	DefaultFocusTag   = "focus"
	DefaultTaskBinary = "task"
	DefaultFilterTerm = "+PENDING"
	configFileName    = "config.yaml"
)

type Config struct {
	Backend     string             `yaml:"backend,omitempty" validate:"omitempty,oneof=taskwarrior local cloud"`
	FocusTag    string             `yaml:"focus_tag,omitempty" validate:"omitempty,printascii,excludesall=+:"`
	Taskwarrior *TaskwarriorConfig `yaml:"taskwarrior,omitempty"`
	Local       *LocalConfig       `yaml:"local,omitempty"`
	Cloud       *CloudConfig       `yaml:"cloud,omitempty" validate:"required_if=Backend cloud"`
}

type TaskwarriorConfig struct {
	Binary       string   `yaml:"binary,omitempty"`
	Filter       []string `yaml:"filter,omitempty"`
	RCFile       string   `yaml:"rc_file,omitempty"`
	DataLocation string   `yaml:"data_location,omitempty"`
}

type LocalConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

type CloudConfig struct {
	URL               string  `yaml:"url" validate:"required,url"`
	APIKey            string  `yaml:"api_key" validate:"required"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty" validate:"gte=0"`
}

var validate = validator.New()

// Validate checks field values. An empty config is valid and means
// taskwarrior with the default filter.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) BackendName() string {
	if c.Backend == "" {
		return BackendTaskwarrior
	}
	return c.Backend
}

func (c *Config) Tag() string {
	if c.FocusTag == "" {
		return DefaultFocusTag
	}
	return c.FocusTag
}

func (c *Config) TaskBinary() string {
	if c.Taskwarrior == nil || c.Taskwarrior.Binary == "" {
		return DefaultTaskBinary
	}
	return c.Taskwarrior.Binary
}

// TaskFilter returns the terms selecting the working set. Ordering ranks and
// renumbers everything these terms export, so they must match every active
// task; use a repo filter to narrow what list shows instead.
func (c *Config) TaskFilter() []string {
	if c.Taskwarrior == nil || len(c.Taskwarrior.Filter) == 0 {
		return []string{DefaultFilterTerm}
	}
	return c.Taskwarrior.Filter
}

// TaskEnv returns the environment overrides for the task binary.
func (c *Config) TaskEnv() []string {
	if c.Taskwarrior == nil {
		return nil
	}
	var env []string
	if c.Taskwarrior.RCFile != "" {
		env = append(env, "TASKRC="+c.Taskwarrior.RCFile)
	}
	if c.Taskwarrior.DataLocation != "" {
		env = append(env, "TASKDATA="+c.Taskwarrior.DataLocation)
	}
	return env
}

// LocalDir is where the local backend keeps task files, relative paths
// resolved against dataDir.
func (c *Config) LocalDir(dataDir string) string {
	if c.Local == nil || c.Local.Dir == "" {
		return dataDir
	}
	if filepath.IsAbs(c.Local.Dir) {
		return c.Local.Dir
	}
	return filepath.Join(dataDir, c.Local.Dir)
}

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, configFileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
