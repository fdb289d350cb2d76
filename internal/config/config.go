package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

var ErrUnknownStore = errors.New("unknown store")

type Config struct {
	DataDir string    `yaml:"data_dir" json:"data_dir"`
	Store   string    `yaml:"store" json:"store"`
	AI      AIConfig  `yaml:"ai" json:"ai"`
	Log     LogConfig `yaml:"log" json:"log"`
}

type AIConfig struct {
	Model  string `yaml:"model" json:"model"`
	APIKey string `yaml:"api_key" json:"-"`
}

type LogConfig struct {
	File  string `yaml:"file" json:"file"`
	Level string `yaml:"level" json:"level"`
}

// Dir is the folder holding semana's config and, by default, its data
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "semana")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if c.DataDir == "" {
		c.DataDir = Dir()
	}
	if c.Store == "" {
		c.Store = StoreJSON
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "semana.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// applyEnv lets the environment win over the file
func (c *Config) applyEnv() {
	if v := os.Getenv("SEMANA_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SEMANA_STORE"); v != "" {
		c.Store = v
	}
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(k); v != "" {
			c.AI.APIKey = v
			break
		}
	}
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("%w %q, want %s or %s", ErrUnknownStore, c.Store, StoreJSON, StoreSQLite)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Load reads path. A missing file is not an error, it yields the defaults.
func Load(path string) (*Config, error) {
	var r Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	r.applyEnv()
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes c to path as YAML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
