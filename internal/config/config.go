package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"subgrip/internal/eventbus"
)

const maxRecentFiles = 10

// Config represents the application configuration
type Config struct {
	Version     int        `toml:"version"`
	RecentFiles []string   `toml:"recent_files"`
	UISettings  UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	ShowActorColumn bool `toml:"show_actor_column"`
	AutosaveOnExit  bool `toml:"autosave_on_exit"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(config *Config) error
	Path() string
}

type service struct {
	bus      eventbus.EventBus
	filePath string
}

// NewService creates a config service storing its file under the user
// config directory
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &service{
		filePath: filepath.Join(configDir, "subgrip", "config.toml"),
	}
}

// NewServiceWithBus creates a config service that publishes config events
func NewServiceWithBus(bus eventbus.EventBus) Service {
	s := NewService().(*service)
	s.bus = bus
	return s
}

// NewServiceAtPath creates a config service bound to an explicit file,
// used by tests and the -config flag
func NewServiceAtPath(path string) Service {
	return &service{filePath: path}
}

// Path returns the config file location
func (s *service) Path() string {
	return s.filePath
}

// Load reads the configuration, falling back to defaults when no file
// exists yet
func (s *service) Load() (*Config, error) {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to disk
func (s *service) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.ConfigChangedEvent{RecentFiles: cfg.RecentFiles})
	}
	return nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		UISettings: UISettings{
			ShowLineNumbers: true,
			ShowActorColumn: false,
			AutosaveOnExit:  true,
		},
	}
}

// AddRecentFile puts path at the front of the recent-files list, dropping
// duplicates and trimming to the limit
func (c *Config) AddRecentFile(path string) {
	recent := make([]string, 0, len(c.RecentFiles)+1)
	recent = append(recent, path)
	for _, p := range c.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	c.RecentFiles = recent
}
