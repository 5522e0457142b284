package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/miradorhq/mirador/internal/common/httpclient"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// configFormatConstraint bounds which config file format versions this
// build can read. Bumping the major version of the file format breaks
// older binaries on purpose.
const configFormatConstraint = "^1.0.0"

// Environment variable overrides for the backend roots.
const (
	envAPIURL   = "MIRADOR_API_URL"
	envAgentURL = "MIRADOR_AGENT_URL"
)

// Config represents the configuration for the Mirador CLI.
// It contains the backend root URLs; the session token lives in its own
// session file managed by the session store.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// APIURL is the primary backend root (auth, CRUD, stats, reports, audit)
	APIURL string `yaml:"api_url"`
	// AgentURL is the analytics agent backend root
	AgentURL string `yaml:"agent_url"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file.
// It uses the OS-specific config directory (e.g., ~/.config/mirador on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "mirador", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file, falling back
// to defaults when no file exists. A .env file in the working directory and
// MIRADOR_API_URL / MIRADOR_AGENT_URL environment variables override the
// file values.
func LoadConfig(file string) error {
	c := Config{
		Version:  "1.0.0",
		APIURL:   httpclient.DefaultPrimaryURL,
		AgentURL: httpclient.DefaultAgentURL,
	}

	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	if data, err := os.ReadFile(file); err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("unable to parse config file: %w", err)
		}
		if err := checkFormatVersion(c.Version); err != nil {
			return err
		}
	}

	// best effort; absence of a .env file is the normal case
	godotenv.Load()

	if v := os.Getenv(envAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(envAgentURL); v != "" {
		c.AgentURL = v
	}

	c.APIURL = morphServer(c.APIURL)
	c.AgentURL = morphServer(c.AgentURL)

	if c.APIURL == "" {
		return errors.New("api_url is required")
	}

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file.
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	if err := os.WriteFile(file, data, os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}

// Endpoints returns the backend roots for the gateway client.
func (cfg *Config) Endpoints() httpclient.Endpoints {
	return httpclient.Endpoints{
		Primary: cfg.APIURL,
		Agent:   cfg.AgentURL,
	}
}

// checkFormatVersion rejects config files written by an incompatible
// future format.
func checkFormatVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("invalid config format version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(configFormatConstraint)
	if err != nil {
		return fmt.Errorf("invalid config format constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("config file format %s is not supported by this build (wanted %s)", version, configFormatConstraint)
	}
	return nil
}

// morphServer ensures the server URL is properly formatted.
// Adds http:// prefix if missing and removes trailing slashes.
func morphServer(server string) string {
	if server == "" {
		return server
	}

	server = strings.TrimRight(server, "/")

	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	return server
}
