package config

import (
	"fmt"
	"os"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if err := validateRepository(&cfg.Repository); err != nil {
		return err
	}
	if err := validateGit(&cfg.Git); err != nil {
		return err
	}
	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}
	return nil
}

func validateRepository(cfg *RepositoryConfig) error {
	if cfg.Path == "" {
		return fmt.Errorf("repository.path must not be empty")
	}
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return fmt.Errorf("repository.path %q: %w", cfg.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository.path %q is not a directory", cfg.Path)
	}
	return nil
}

func validateGit(cfg *GitConfig) error {
	if strings.TrimSpace(cfg.Command) == "" {
		return fmt.Errorf("git.command must not be empty")
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	if !validLogLevels[cfg.Level] {
		return fmt.Errorf("logging.level %q is invalid (trace, debug, info, warn, error)", cfg.Level)
	}
	if !validLogFormats[cfg.Format] {
		return fmt.Errorf("logging.format %q is invalid (console, json)", cfg.Format)
	}
	return nil
}
