// Package config holds application configuration. Defaults are set in
// DefaultConfig and can be overridden via dotfile; values present in the
// config file override defaults, including explicit zero values, while
// missing keys are left at their defaults.
package config

import "fmt"

// Config holds all application configuration values.
type Config struct {
	Workspace WorkspaceConfig `json:"workspace"`
	Git       GitConfig       `json:"git"`
}

type WorkspaceConfig struct {
	// Root is the directory all tool paths are resolved against.
	Root string `json:"root"` // Default: "/workspace"

	// MaxFileSize bounds reads and writes through the file tools.
	MaxFileSize int64 `json:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)
}

type GitConfig struct {
	AuthorName  string `json:"author_name"`  // Default: "sandkit"
	AuthorEmail string `json:"author_email"` // Default: "sandkit@localhost"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root:        "/workspace",
			MaxFileSize: 20 * 1024 * 1024,
		},
		Git: GitConfig{
			AuthorName:  "sandkit",
			AuthorEmail: "sandkit@localhost",
		},
	}
}

// Validate checks the merged configuration for correctness.
func (c *Config) Validate() error {
	var errs []string

	if c.Workspace.Root == "" {
		errs = append(errs, "workspace.root must be set")
	}
	if c.Workspace.MaxFileSize < 1 {
		errs = append(errs, "workspace.max_file_size must be >= 1")
	}
	if c.Git.AuthorName == "" {
		errs = append(errs, "git.author_name must be set")
	}
	if c.Git.AuthorEmail == "" {
		errs = append(errs, "git.author_email must be set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}
	return nil
}
