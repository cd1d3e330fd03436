package config

import "time"

// Environment variables the API token is resolved from. EnvAPIKey wins;
// EnvLegacyToken is the name older deployments exported and is still honored.
const (
	EnvAPIKey      = "EVENTBRITE_API_KEY"
	EnvLegacyToken = "EVENTBRITE_TOKEN"
)

// Config is the top-level configuration for the server.
type Config struct {
	// APIKey is the Eventbrite private token. Usually sourced from the
	// environment; the file value is a fallback for local development.
	APIKey string `yaml:"apiKey,omitempty"`

	// SSE configures the optional HTTP/SSE transport.
	SSE SSEConfig `yaml:"sse"`

	// CacheTTL controls how long venue and category responses are kept in
	// the in-memory cache. Zero means the default (5 minutes).
	CacheTTL time.Duration `yaml:"cacheTTL,omitempty"`
}

// SSEConfig holds the listen address for the SSE transport.
type SSEConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// DefaultConfig returns the built-in defaults, before any file or
// environment values are layered on top.
func DefaultConfig() Config {
	return Config{
		SSE: SSEConfig{
			Host: "localhost",
			Port: 8080,
		},
		CacheTTL: 5 * time.Minute,
	}
}
