package config

import "testing"

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Repository: RepositoryConfig{Path: t.TempDir()},
		Git:        GitConfig{Command: "git"},
		Editor:     EditorConfig{UpdateWorkingTree: true},
		Logging:    LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty repository path",
			mutate:  func(c *Config) { c.Repository.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing repository path",
			mutate:  func(c *Config) { c.Repository.Path = "/does/not/exist" },
			wantErr: true,
		},
		{
			name:    "empty git command",
			mutate:  func(c *Config) { c.Git.Command = "  " },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "json log format",
			mutate:  func(c *Config) { c.Logging.Format = "json" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
