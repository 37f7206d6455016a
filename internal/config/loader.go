package config

import (
	"errors"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/khirotaka/toolfault/pkg/toolerr"
)

// DefaultHealthCheckInterval is used when the config omits
// healthCheckInterval (milliseconds).
const DefaultHealthCheckInterval = 30000

// Config represents the root configuration structure
type Config struct {
	Auth                AuthConfig      `yaml:"auth"`
	RateLimit           RateLimitConfig `yaml:"rateLimit"`
	HealthCheckInterval int             `yaml:"healthCheckInterval" validate:"omitempty,gte=5000,lte=300000"`
	Servers             []ServerConfig  `yaml:"servers" validate:"required,min=1,dive"`
}

// AuthConfig lists the API keys the gateway accepts. An empty list disables
// authentication.
type AuthConfig struct {
	Keys []APIKey `yaml:"keys" validate:"dive"`
}

// APIKey is a single gateway credential
type APIKey struct {
	Key          string   `yaml:"key" validate:"required,min=16"`
	Name         string   `yaml:"name" validate:"required,max=50"`
	AllowedTools []string `yaml:"allowedTools"`
}

// AllowsTool reports whether the key may call the named tool. An empty
// allowlist grants access to every tool.
func (k APIKey) AllowsTool(toolName string) bool {
	if len(k.AllowedTools) == 0 {
		return true
	}
	return slices.Contains(k.AllowedTools, toolName)
}

// RateLimitConfig configures the per-caller token bucket. A zero RPS
// disables rate limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" validate:"min=0"`
	Burst int     `yaml:"burst" validate:"min=0"`
}

// ServerConfig represents a single MCP server configuration
type ServerConfig struct {
	Name    string   `yaml:"name" validate:"required,hostname_rfc1123,max=50"`
	Command string   `yaml:"command" validate:"required"`
	Args    []string `yaml:"args"`
	Envs    []EnvVar `yaml:"envs" validate:"dive"`
	Timeout int      `yaml:"timeout" validate:"min=0,max=300000"` // Max 5 minutes
}

// EnvVar represents an environment variable for the server
type EnvVar struct {
	Name  string `yaml:"name" validate:"required,printascii"`
	Value string `yaml:"value"`
}

// LoadConfig loads and validates the configuration from the specified path.
// Every failure is reported as a CONFIGURATION_ERROR with the offending
// fields in the details.
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.ErrCodeConfiguration, "failed to read config file", err).
			WithDetails(map[string]any{"path": path})
	}

	// Expand environment variables
	expandedData := os.ExpandEnv(string(data))

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, toolerr.Wrap(toolerr.ErrCodeConfiguration, "failed to parse config file", err).
			WithDetails(map[string]any{"path": path})
	}

	// Validate config
	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				fields[fe.Namespace()] = fe.Tag()
			}
			return nil, toolerr.Wrap(toolerr.ErrCodeConfiguration, "config validation failed", err).
				WithDetails(map[string]any{"fields": fields})
		}
		return nil, toolerr.Wrap(toolerr.ErrCodeConfiguration, "config validation failed", err)
	}

	// Check for duplicate server names
	serverNames := make(map[string]bool)
	for _, server := range config.Servers {
		if serverNames[server.Name] {
			return nil, toolerr.Newf(toolerr.ErrCodeConfiguration, "duplicate server name found: %s", server.Name).
				WithDetails(map[string]any{"server": server.Name})
		}
		serverNames[server.Name] = true
	}

	if config.HealthCheckInterval == 0 {
		config.HealthCheckInterval = DefaultHealthCheckInterval
	}

	return &config, nil
}
