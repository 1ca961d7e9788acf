// Package config loads the application configuration and defines the
// canonical column set seeded into every new project.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quadrodev/quadro/internal/models"
	"github.com/quadrodev/quadro/internal/services/column"
)

// Config represents the application configuration
type Config struct {
	DatabasePath string         `yaml:"database_path"`
	SocketPath   string         `yaml:"socket_path"`
	Columns      []ColumnConfig `yaml:"columns"`
}

// ColumnConfig is one user-configured seed column. Key is derived from the
// title when omitted.
type ColumnConfig struct {
	Key       string `yaml:"key"`
	Title     string `yaml:"title"`
	Color     string `yaml:"color"`
	IsDefault bool   `yaml:"is_default"`
	IsDone    bool   `yaml:"is_done"`
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := &Config{}
		config.applyDefaults()
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := &Config{}
		config.applyDefaults()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Default returns a configuration with all defaults applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultColumns returns the configured seed columns as column seeds.
func (c *Config) DefaultColumns() []models.ColumnSeed {
	seeds := make([]models.ColumnSeed, 0, len(c.Columns))
	for _, cc := range c.Columns {
		seeds = append(seeds, models.ColumnSeed{
			Key:       cc.Key,
			Title:     cc.Title,
			Color:     cc.Color,
			IsDefault: cc.IsDefault,
			IsDone:    cc.IsDone,
		})
	}
	return seeds
}

// Path returns the location of the config file, whether or not it exists.
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "quadro", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "quadro", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = defaultDatabasePath()
	}
	if envPath := os.Getenv("QUADRO_DB_PATH"); envPath != "" {
		c.DatabasePath = envPath
	}
	if c.SocketPath == "" {
		c.SocketPath = defaultSocketPath()
	}
	if envSocket := os.Getenv("QUADRO_SOCKET_PATH"); envSocket != "" {
		c.SocketPath = envSocket
	}
	if len(c.Columns) == 0 {
		c.Columns = defaultColumnConfigs()
	}
	for i := range c.Columns {
		if c.Columns[i].Key == "" {
			c.Columns[i].Key = column.DeriveKey(c.Columns[i].Title)
		}
	}
}

// defaultColumnConfigs is the canonical four-column workflow.
func defaultColumnConfigs() []ColumnConfig {
	return []ColumnConfig{
		{Key: "todo", Title: "A Fazer", Color: "#3B82F6", IsDefault: true},
		{Key: "in_progress", Title: "Em Andamento", Color: "#EAB308"},
		{Key: "review", Title: "Revisão", Color: "#F97316"},
		{Key: "done", Title: "Concluído", Color: "#22C55E", IsDone: true},
	}
}

func defaultDatabasePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".quadro", "quadro.db")
	}
	return filepath.Join(homeDir, ".quadro", "quadro.db")
}

func defaultSocketPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "quadro.sock")
	}
	return filepath.Join(homeDir, ".quadro", "quadro.sock")
}
