// Copyright 2025 Sasi Veeramachaneni
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds startup-time configuration for the travel agent
// server. All options are environment-driven; values never appear on
// the wire.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Recognized environment variables.
const (
	EnvHost         = "A2A_HOST"
	EnvPort         = "A2A_PORT"
	EnvPublicHost   = "A2A_PUBLIC_HOST"
	EnvAuthRequired = "AUTH_REQUIRED"

	EnvJWTSecret    = "OAUTH2_JWT_SECRET"
	EnvTokenExpiry  = "OAUTH2_TOKEN_EXPIRY"
	EnvClientID     = "OAUTH2_CLIENT_ID"
	EnvClientSecret = "OAUTH2_CLIENT_SECRET"

	EnvStorageBackend = "STORAGE_BACKEND"
	EnvStorageDSN     = "STORAGE_DSN"

	EnvAIAPIKey  = "AI_API_KEY"
	EnvAIBaseURL = "AI_BASE_URL"
	EnvAIModel   = "AI_MODEL"
	EnvAITimeout = "AI_TIMEOUT"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Storage StorageConfig
	AI      AIConfig
}

// ServerConfig configures the HTTP listener and discovery URL.
type ServerConfig struct {
	// Host is the bind address.
	Host string

	// Port is the listen port.
	Port int

	// PublicHost overrides the host:port advertised in the agent card,
	// for deployments behind a proxy. Includes the scheme, e.g.
	// "https://agent.example.com".
	PublicHost string
}

// AuthConfig configures OAuth2 authentication.
type AuthConfig struct {
	// Enabled toggles request authentication. When disabled the token
	// endpoint is not mounted and all paths are open.
	Enabled bool

	// SigningSecret signs access tokens. Required when Enabled.
	SigningSecret string

	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration

	// ClientID and ClientSecret register the default client at startup.
	ClientID     string
	ClientSecret string
}

// StorageConfig selects the task/session persistence backend.
type StorageConfig struct {
	// Backend is one of "inmemory" (default), "sqlite", "postgres", "mysql".
	Backend string

	// DSN is the driver-specific connection string. For sqlite this is
	// the database file path.
	DSN string
}

// IsInMemory reports whether persistence is disabled.
func (c *StorageConfig) IsInMemory() bool {
	return c.Backend == "" || c.Backend == "inmemory"
}

// Driver returns the database/sql driver name for the backend.
func (c *StorageConfig) Driver() string {
	if c.Backend == "sqlite" {
		return "sqlite3"
	}
	return c.Backend
}

// AIConfig configures the optional LLM completion backend.
type AIConfig struct {
	// APIKey enables AI-generated replies when set. Without it the
	// agent answers from its rule-based responders only.
	APIKey string

	// BaseURL is an OpenAI-compatible chat completions endpoint.
	BaseURL string

	// Model is the model name to request.
	Model string

	// Timeout bounds one completion call.
	Timeout time.Duration
}

// IsEnabled reports whether AI completion is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvPublicHost); v != "" {
		cfg.Server.PublicHost = v
	}
	if v := os.Getenv(EnvAuthRequired); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAuthRequired, err)
		}
		cfg.Auth.Enabled = enabled
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		cfg.Auth.SigningSecret = v
	}
	if v := os.Getenv(EnvTokenExpiry); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTokenExpiry, err)
		}
		cfg.Auth.TokenTTL = time.Duration(seconds) * time.Second
	}
	if v := os.Getenv(EnvClientID); v != "" {
		cfg.Auth.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		cfg.Auth.ClientSecret = v
	}
	if v := os.Getenv(EnvStorageBackend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvStorageDSN); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv(EnvAIAPIKey); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv(EnvAIBaseURL); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv(EnvAIModel); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv(EnvAITimeout); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAITimeout, err)
		}
		cfg.AI.Timeout = time.Duration(seconds) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaults applies default values for unset fields.
func (c *Config) SetDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	c.Auth.Enabled = true
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Auth.ClientID == "" {
		c.Auth.ClientID = "travel-agent-client"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "inmemory"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = 30 * time.Second
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Auth.Enabled && c.Auth.SigningSecret == "" {
		return fmt.Errorf("%s is required when authentication is enabled", EnvJWTSecret)
	}
	if c.Auth.Enabled && c.Auth.ClientSecret == "" {
		return fmt.Errorf("%s is required when authentication is enabled", EnvClientSecret)
	}
	switch c.Storage.Backend {
	case "", "inmemory", "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	if !c.Storage.IsInMemory() && c.Storage.DSN == "" {
		return fmt.Errorf("%s is required for the %s backend", EnvStorageDSN, c.Storage.Backend)
	}
	return nil
}

// BaseURL returns the externally visible server URL for the agent card.
func (c *Config) BaseURL() string {
	if c.Server.PublicHost != "" {
		return c.Server.PublicHost
	}
	host := c.Server.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Server.Port)
}
