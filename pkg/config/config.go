package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "taskflow"
	configFile = "config.yaml"
	envPrefix  = "TASKFLOW"
)

type Storage struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" yaml:"path,omitempty"`
}

type Server struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type Calendar struct {
	Name string `mapstructure:"name" yaml:"name"`
}

type Config struct {
	Storage  Storage  `mapstructure:"storage" yaml:"storage"`
	Server   Server   `mapstructure:"server" yaml:"server"`
	Calendar Calendar `mapstructure:"calendar" yaml:"calendar"`
	Seed     bool     `mapstructure:"seed" yaml:"seed"`
}

// GetXdgHome returns ~/.config/taskflow.
func GetXdgHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func Default() *Config {
	return &Config{
		Storage:  Storage{Driver: "json"},
		Server:   Server{Addr: ":8080"},
		Calendar: Calendar{Name: "Tasks"},
		Seed:     true,
	}
}

// Load reads the config file at the default location.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads path on top of the defaults. A missing file is not an
// error. TASKFLOW_* environment variables override both, e.g.
// TASKFLOW_STORAGE_DRIVER=sqlite.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

// ReadFile is LoadFile without environment overrides. Use it when the
// result is written back, so overrides never end up in the file.
func ReadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", "")
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("calendar.name", def.Calendar.Name)
	v.SetDefault("seed", def.Seed)
	if withEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Calendar.Name == "" {
		cfg.Calendar.Name = def.Calendar.Name
	}
	return &cfg, nil
}

// StoragePath returns the configured data path, or the default file for the
// driver under ~/.config/taskflow.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := GetXdgHome()
	if err != nil {
		return "", err
	}
	if c.Storage.Driver == "sqlite" {
		return filepath.Join(dir, "tasks.db"), nil
	}
	return filepath.Join(dir, "tasks.json"), nil
}

// Save writes cfg to the default location.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}
