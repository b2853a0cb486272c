// Package config handles configuration management for git-stage-editor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Repository RepositoryConfig `mapstructure:"repository" yaml:"repository"`
	Git        GitConfig        `mapstructure:"git" yaml:"git"`
	Editor     EditorConfig     `mapstructure:"editor" yaml:"editor"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// RepositoryConfig holds repository-related configuration.
type RepositoryConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// GitConfig holds Git configuration.
type GitConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
}

// EditorConfig holds defaults for the staged-file editor.
type EditorConfig struct {
	Patterns          []string `mapstructure:"patterns" yaml:"patterns"`
	UpdateWorkingTree bool     `mapstructure:"update_working_tree" yaml:"update_working_tree"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default search paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.git-stage-editor")
	}

	// Environment variable prefix
	v.SetEnvPrefix("GSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - not an error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Post-process configuration
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// postProcess applies post-processing to configuration.
func postProcess(cfg *Config) error {
	// If repository path is empty, use current directory
	if cfg.Repository.Path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.Repository.Path = cwd
	}

	// Resolve to absolute path
	absPath, err := filepath.Abs(cfg.Repository.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %w", err)
	}
	cfg.Repository.Path = absPath

	return nil
}

// GetConfigDir returns the user config directory for git-stage-editor.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".git-stage-editor"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
