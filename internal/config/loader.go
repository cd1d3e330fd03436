package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetwd       = os.Getwd
	osGetenv      = os.Getenv
)

const (
	userConfigDir    = ".config/eventbrite-mcp"
	projectConfigDir = ".eventbrite-mcp"
	configFileName   = "config.yaml"
)

// LoadConfig loads the server configuration by layering defaults, an
// optional config file (project directory first, then the user config
// directory) and the environment. The config file is entirely optional.
func LoadConfig() (Config, error) {
	config := DefaultConfig()

	path, err := findConfigFile()
	if err != nil {
		// Not being able to resolve candidate paths is not fatal; the
		// environment alone can carry everything we need.
		fmt.Fprintf(os.Stderr, "Warning: could not determine config path: %v\n", err)
	} else if path != "" {
		fileConfig, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		config = mergeConfigs(config, fileConfig)
	}

	// Environment always wins over the file.
	if key := osGetenv(EnvAPIKey); key != "" {
		config.APIKey = key
	} else if key := osGetenv(EnvLegacyToken); key != "" {
		config.APIKey = key
	}

	return config, nil
}

// Validate checks that the configuration is complete enough to serve.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("no Eventbrite API token configured: set %s (or the legacy %s), "+
			"or put apiKey in %s/%s", EnvAPIKey, EnvLegacyToken, projectConfigDir, configFileName)
	}
	return nil
}

// findConfigFile returns the first config file that exists among the
// candidate locations, or "" when none does.
func findConfigFile() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	projectPath := filepath.Join(wd, projectConfigDir, configFileName)
	if _, err := os.Stat(projectPath); err == nil {
		return projectPath, nil
	}

	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	userPath := filepath.Join(homeDir, userConfigDir, configFileName)
	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	}

	return "", nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return config, nil
}

// mergeConfigs overlays the non-zero fields of overlay onto base.
func mergeConfigs(base, overlay Config) Config {
	merged := base
	if overlay.APIKey != "" {
		merged.APIKey = overlay.APIKey
	}
	if overlay.SSE.Host != "" {
		merged.SSE.Host = overlay.SSE.Host
	}
	if overlay.SSE.Port != 0 {
		merged.SSE.Port = overlay.SSE.Port
	}
	if overlay.CacheTTL != 0 {
		merged.CacheTTL = overlay.CacheTTL
	}
	return merged
}
