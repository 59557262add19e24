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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAuthEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvJWTSecret, "test-signing-secret")
	t.Setenv(EnvClientSecret, "test-client-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setAuthEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "travel-agent-client", cfg.Auth.ClientID)
	assert.Equal(t, "inmemory", cfg.Storage.Backend)
	assert.True(t, cfg.Storage.IsInMemory())
	assert.False(t, cfg.AI.IsEnabled())
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	setAuthEnv(t)
	t.Setenv(EnvHost, "127.0.0.1")
	t.Setenv(EnvPort, "9100")
	t.Setenv(EnvPublicHost, "https://agent.example.com")
	t.Setenv(EnvTokenExpiry, "600")
	t.Setenv(EnvClientID, "acme")
	t.Setenv(EnvStorageBackend, "sqlite")
	t.Setenv(EnvStorageDSN, "/tmp/tasks.db")
	t.Setenv(EnvAIAPIKey, "sk-test")
	t.Setenv(EnvAITimeout, "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "https://agent.example.com", cfg.Server.PublicHost)
	assert.Equal(t, 10*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "acme", cfg.Auth.ClientID)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "sqlite3", cfg.Storage.Driver())
	assert.True(t, cfg.AI.IsEnabled())
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
}

func TestLoad_AuthDisabled(t *testing.T) {
	t.Setenv(EnvAuthRequired, "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing signing secret",
			env:  map[string]string{EnvClientSecret: "secret"},
		},
		{
			name: "missing client secret",
			env:  map[string]string{EnvJWTSecret: "secret"},
		},
		{
			name: "malformed port",
			env: map[string]string{
				EnvJWTSecret:    "secret",
				EnvClientSecret: "secret",
				EnvPort:         "not-a-port",
			},
		},
		{
			name: "malformed expiry",
			env: map[string]string{
				EnvJWTSecret:    "secret",
				EnvClientSecret: "secret",
				EnvTokenExpiry:  "1h",
			},
		},
		{
			name: "unknown storage backend",
			env: map[string]string{
				EnvJWTSecret:      "secret",
				EnvClientSecret:   "secret",
				EnvStorageBackend: "cassandra",
			},
		},
		{
			name: "sql backend without dsn",
			env: map[string]string{
				EnvJWTSecret:      "secret",
				EnvClientSecret:   "secret",
				EnvStorageBackend: "postgres",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestBaseURL(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL())

	cfg.Server.Host = "10.0.0.5"
	cfg.Server.Port = 8080
	assert.Equal(t, "http://10.0.0.5:8080", cfg.BaseURL())

	cfg.Server.PublicHost = "https://agent.example.com"
	assert.Equal(t, "https://agent.example.com", cfg.BaseURL())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_TEST_VALUE=from-file\n"), 0o644))

	t.Setenv("DOTENV_TEST_VALUE", "")
	os.Unsetenv("DOTENV_TEST_VALUE")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("DOTENV_TEST_VALUE"))

	// Missing files are skipped silently.
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
