// Package config resolves client configuration from, in increasing
// precedence: built-in defaults, the config file under the userdeck home
// directory, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by the client.
const (
	EnvHome     = "USERDECK_HOME"
	EnvAPIURL   = "USERDECK_API_URL"
	EnvTimeout  = "USERDECK_TIMEOUT"
	EnvLogLevel = "USERDECK_LOG_LEVEL"
)

const (
	defaultAPIURL  = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
	configFileName = "config.yaml"
	homeDirName    = ".userdeck"
)

// Config is the resolved client configuration.
type Config struct {
	// APIURL is the base URL of the API host.
	APIURL string `yaml:"api_url"`
	// Timeout bounds every HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`

	// home is the resolved userdeck directory (session file, config file).
	home string
}

// Home returns the userdeck directory the config was resolved against.
func (c Config) Home() string {
	return c.home
}

// Load resolves the configuration. A missing config file is not an error;
// a present but unreadable one is.
func Load() (Config, error) {
	home, err := homeDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:  defaultAPIURL,
		Timeout: defaultTimeout,
		home:    home,
	}

	path := filepath.Join(home, configFileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// homeDir picks USERDECK_HOME when set, otherwise ~/.userdeck.
func homeDir() (string, error) {
	if v := os.Getenv(EnvHome); v != "" {
		return v, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(userHome, homeDirName), nil
}
