// Package config provides loading and validation of the repomate
// configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	repomateerrors "repomate.dev/repomate/internal/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "config.yaml"

// DefaultBranch is used when repository.branch is not configured.
const DefaultBranch = "main"

// Config is the immutable per-process configuration. It is loaded once and
// passed by value into the session constructor; nothing mutates it afterwards.
type Config struct {
	Repository     Repository     `yaml:"repository" validate:"required"`
	Credentials    Credentials    `yaml:"credentials"`
	GitUser        GitUser        `yaml:"git_user"`
	CommitSettings CommitSettings `yaml:"commit_settings"`
	Logging        Logging        `yaml:"logging"`
}

// Repository identifies the single repository this process operates on.
type Repository struct {
	URL             string `yaml:"url" validate:"required"`
	TargetDirectory string `yaml:"target_directory" validate:"required"`
	Branch          string `yaml:"branch"`
}

// Credentials is the username/token pair used for HTTP(S) transports.
// The zero value means unauthenticated access.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// IsSet reports whether a complete credential pair is configured.
func (c Credentials) IsSet() bool {
	return c.Username != "" && c.Password != ""
}

// String implements fmt.Stringer. The secret is never part of the output,
// so accidentally logging the struct cannot leak it.
func (c Credentials) String() string {
	if !c.IsSet() {
		return "credentials(unset)"
	}
	return fmt.Sprintf("credentials(username=%s password=<redacted>)", c.Username)
}

// GoString implements fmt.GoStringer for the %#v verb.
func (c Credentials) GoString() string {
	return c.String()
}

// GitUser is the commit author identity applied to the checkout.
type GitUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email" validate:"omitempty,email"`
}

// CommitSettings holds the commit defaults. AutoAddAll is a pointer so an
// absent key can default to true while an explicit false is respected.
type CommitSettings struct {
	AutoAddAll           *bool  `yaml:"auto_add_all"`
	DefaultCommitMessage string `yaml:"default_commit_message"`
}

// AddAllByDefault returns the configured auto_add_all value, defaulting to true.
func (s CommitSettings) AddAllByDefault() bool {
	if s.AutoAddAll == nil {
		return true
	}
	return *s.AutoAddAll
}

// Logging configures the optional rotating log file.
type Logging struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads and validates the configuration file at path. Missing files,
// malformed YAML, and missing required keys all fail fast with a ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, repomateerrors.NewConfigError(path, fmt.Errorf("config file not found, copy config.example.yaml and fill in your details: %w", err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, repomateerrors.NewConfigError(path, fmt.Errorf("failed to parse config: %w", err))
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, repomateerrors.NewConfigError(path, err)
	}

	if cfg.Repository.Branch == "" {
		cfg.Repository.Branch = DefaultBranch
	}

	return &cfg, nil
}
