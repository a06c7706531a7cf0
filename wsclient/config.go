package wsclient

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	TransportCoder   = "coder"
	TransportGorilla = "gorilla"
)

// Config controls how the client connects.
type Config struct {
	// Origin is sent in the Origin header. Empty means the target's own
	// http(s) origin.
	Origin           string        `yaml:"origin" envconfig:"origin"`
	HandshakeTimeout time.Duration `yaml:"handshakeTimeout" envconfig:"handshake_timeout" default:"10s"`
	WriteTimeout     time.Duration `yaml:"writeTimeout" envconfig:"write_timeout" default:"10s"`
	// Transport selects the WebSocket library: "coder" or "gorilla".
	Transport string `yaml:"transport" envconfig:"transport" default:"coder"`
}

// DefaultConfig returns sensible defaults.
// Set a timeout to 0 to disable it.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		Transport:        TransportCoder,
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.HandshakeTimeout < 0 || c.WriteTimeout < 0 {
		return NewError(ErrorInvalidConfig, "timeouts must not be negative")
	}
	switch c.Transport {
	case "", TransportCoder, TransportGorilla:
		return nil
	default:
		return NewError(ErrorInvalidConfig, fmt.Sprintf("unknown transport %q", c.Transport))
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, WrapError(ErrorInvalidConfig, "read config", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, WrapError(ErrorInvalidConfig, "parse config", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv reads PREFIX_ORIGIN, PREFIX_HANDSHAKE_TIMEOUT,
// PREFIX_WRITE_TIMEOUT and PREFIX_TRANSPORT.
func ConfigFromEnv(prefix string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, WrapError(ErrorInvalidConfig, "read environment", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
