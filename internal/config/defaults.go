// Package config provides centralized default configuration values.
package config

import "github.com/spf13/viper"

// Default values shared between viper defaults and the generated config file.
const (
	DefaultGitCommand    = "git"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultUpdateWorkDir = true
)

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Repository defaults
	v.SetDefault("repository.path", "")

	// Git defaults
	v.SetDefault("git.command", DefaultGitCommand)

	// Editor defaults
	v.SetDefault("editor.patterns", []string{})
	v.SetDefault("editor.update_working_tree", DefaultUpdateWorkDir)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
