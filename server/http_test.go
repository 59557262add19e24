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

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SasiVeeramachaneni/travelagent-a2a/auth"
	"github.com/SasiVeeramachaneni/travelagent-a2a/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8000},
		Auth: config.AuthConfig{
			Enabled:       true,
			SigningSecret: "test-signing-secret-at-least-32-bytes",
			TokenTTL:      time.Hour,
			ClientID:      "acme",
			ClientSecret:  "s3cr3t",
		},
		Storage: config.StorageConfig{Backend: "inmemory"},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()
	cfg := newTestConfig()
	comps, err := auth.NewComponentsFromConfig(cfg)
	require.NoError(t, err)

	srv := NewHTTPServer(cfg, newTestExecutor(), WithAuth(comps))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, cfg
}

func fetchToken(t *testing.T, baseURL, clientID, clientSecret string) string {
	t.Helper()
	form := url.Values{
		"grant_type":    {auth.GrantTypeClientCredentials},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	}
	resp, err := http.PostForm(baseURL+auth.TokenEndpointPath, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
		Scope       string `json:"scope"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, auth.DefaultScope, body.Scope)
	return body.AccessToken
}

func TestHTTPServer_PublicEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	paths := []string{
		"/health",
		a2asrv.WellKnownAgentCardPath,
		"/.well-known/agent.json",
	}
	for _, path := range paths {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestHTTPServer_RootInfoPage(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "Travel Agent", info["name"])
	assert.Equal(t, a2asrv.WellKnownAgentCardPath, info["agent_card"])
}

func TestHTTPServer_MissingTokenRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unauthorized", body["error"])
}

func TestHTTPServer_InvalidTokenRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/", strings.NewReader("{}"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Bearer error="invalid_token"`, resp.Header.Get("WWW-Authenticate"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid_token", body["error"])
}

func TestHTTPServer_TokenGrantsAccess(t *testing.T) {
	ts, _ := newTestServer(t)

	token := fetchToken(t, ts.URL, "acme", "s3cr3t")

	rpc := `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","messageId":"m1","role":"user","parts":[{"kind":"text","text":"plan a 3 days trip to Paris with a moderate budget"}]}}}`
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/", strings.NewReader(rpc))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_BadClientCredentials(t *testing.T) {
	ts, _ := newTestServer(t)

	form := url.Values{
		"grant_type":    {auth.GrantTypeClientCredentials},
		"client_id":     {"acme"},
		"client_secret": {"wrong"},
	}
	resp, err := http.PostForm(ts.URL+auth.TokenEndpointPath, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid_client", body["error"])
}

func TestHTTPServer_AuthDisabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.Enabled = false

	srv := NewHTTPServer(cfg, newTestExecutor())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","messageId":"m1","role":"user","parts":[{"kind":"text","text":"hello"}]}}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// No token endpoint when auth is off.
	tokenResp, err := http.PostForm(ts.URL+auth.TokenEndpointPath, url.Values{})
	require.NoError(t, err)
	tokenResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, tokenResp.StatusCode)
}

func TestHTTPServer_MethodNotAllowedOnRoot(t *testing.T) {
	ts, _ := newTestServer(t)
	token := fetchToken(t, ts.URL, "acme", "s3cr3t")

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
