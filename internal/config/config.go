package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Backup  BackupConfig  `mapstructure:"backup"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig defines where the sqlite database lives
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// BackupConfig defines save-data backup behavior
type BackupConfig struct {
	Root       string `mapstructure:"root"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Dir returns the directory holding the config file and, by
// default, the database and backups.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".playtrack"), nil
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	v.SetConfigFile(configPath)
	v.SetEnvPrefix("PLAYTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A missing config file is fine; a broken one is not.
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Backup.MaxBackups < 1 {
		return nil, fmt.Errorf("backup.max_backups must be at least 1, got %d", config.Backup.MaxBackups)
	}

	return &config, nil
}

// LoadDefault loads configuration from ~/.playtrack/config.yaml
func LoadDefault() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return Load(filepath.Join(dir, "config.yaml"))
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) error {
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("failed to resolve config directory: %w", err)
	}

	v.SetDefault("storage.database_path", filepath.Join(dir, "playtrack.db"))
	v.SetDefault("backup.root", filepath.Join(dir, "backups"))
	v.SetDefault("backup.max_backups", 20)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	return nil
}
