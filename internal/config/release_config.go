package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/RookieDailyLi/akka/internal/errors"
)

const (
	// DefaultServer is the release server docs and git state are pushed to
	DefaultServer = "gustav.akka.io"
	// DefaultPath is the path on the release server holding the site
	DefaultPath = "www"
	// DefaultDocsDir is where the build tool leaves the generated site
	DefaultDocsDir = "target/site"

	// SbtOptsEnv supplies extra sbt flags for every sbt invocation
	SbtOptsEnv = "AKKA_RELEASE_SBT_OPTS"
	// EnvFile is an optional dotenv file consulted before the environment
	EnvFile = ".akka-release.env"
)

// ReleaseConfig holds configuration for a release run. It is constructed
// once from defaults, an optional profile file and parsed flags, and not
// mutated afterwards.
type ReleaseConfig struct {
	Server  string `json:"server"`
	Path    string `json:"path"`
	DocsDir string `json:"docsDir,omitempty"`
	Branch  string `json:"branch,omitempty"`
	SbtOpts string `json:"-"`
}

// DefaultReleaseConfig returns a ReleaseConfig with default values
func DefaultReleaseConfig() *ReleaseConfig {
	return &ReleaseConfig{
		Server:  DefaultServer,
		Path:    DefaultPath,
		DocsDir: DefaultDocsDir,
		Branch:  "main",
	}
}

// LoadReleaseConfig loads a release profile from a JSON file
func LoadReleaseConfig(path string) (*ReleaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("config", fmt.Errorf("failed to read config file: %w", err))
	}

	config := DefaultReleaseConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.New("config", fmt.Errorf("failed to parse config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveReleaseConfig saves the profile to a JSON file
func (c *ReleaseConfig) SaveReleaseConfig(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("config", fmt.Errorf("failed to marshal config: %w", err))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("config", fmt.Errorf("failed to write config file: %w", err))
	}

	return nil
}

// Validate checks that the configuration is usable
func (c *ReleaseConfig) Validate() error {
	if c.Server == "" {
		return errors.New("config", fmt.Errorf("release server is required"))
	}
	if c.Path == "" {
		return errors.New("config", fmt.Errorf("remote path is required"))
	}
	if c.DocsDir == "" {
		c.DocsDir = DefaultDocsDir
	}
	if c.Branch == "" {
		c.Branch = "main"
	}
	return nil
}

// LoadSbtOpts resolves extra sbt flags from the environment. A dotenv
// file in the working directory is loaded first when present; variables
// already set in the environment win.
func (c *ReleaseConfig) LoadSbtOpts() {
	if _, err := os.Stat(EnvFile); err == nil {
		// godotenv never overwrites existing environment entries
		_ = godotenv.Load(EnvFile)
	}
	c.SbtOpts = os.Getenv(SbtOptsEnv)
}
