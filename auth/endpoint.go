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

package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// GrantTypeClientCredentials is the only grant this server supports.
const GrantTypeClientCredentials = "client_credentials"

// tokenRequest is the parsed body of a token grant request.
type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
}

// TokenHandler serves the OAuth2 client-credentials grant at
// POST /oauth/token.
//
// Credentials are accepted as a form-encoded or JSON body, or via the
// HTTP Basic Authorization header. Error responses carry the standard
// OAuth2 error codes: unsupported_grant_type and invalid_request with
// 400, invalid_client with 401.
type TokenHandler struct {
	registry *ClientRegistry
	tokens   *TokenService
}

// NewTokenHandler creates the token endpoint handler.
func NewTokenHandler(registry *ClientRegistry, tokens *TokenService) *TokenHandler {
	return &TokenHandler{
		registry: registry,
		tokens:   tokens,
	}
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeAuthError(w, "invalid_request", "Token endpoint only accepts POST", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseTokenRequest(r)
	if err != nil {
		writeAuthError(w, "invalid_request", "Malformed token request body", http.StatusBadRequest)
		return
	}

	// Basic auth is an alternative credential carrier.
	if req.ClientID == "" || req.ClientSecret == "" {
		if id, secret, ok := r.BasicAuth(); ok {
			req.ClientID = id
			req.ClientSecret = secret
		}
	}

	if req.GrantType != GrantTypeClientCredentials {
		writeAuthError(w, "unsupported_grant_type", "Only client_credentials grant is supported", http.StatusBadRequest)
		return
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		writeAuthError(w, "invalid_request", "Missing client credentials", http.StatusBadRequest)
		return
	}

	client, err := h.registry.Validate(req.ClientID, req.ClientSecret)
	if err != nil {
		slog.Debug("Client validation failed", "client_id", req.ClientID, "error", err)
		writeAuthError(w, "invalid_client", "Client authentication failed", http.StatusUnauthorized)
		return
	}

	response, err := h.tokens.Issue(client, splitScopes(req.Scope))
	if err != nil {
		slog.Error("Token issuance failed", "client_id", client.ID, "error", err)
		writeAuthError(w, "server_error", "Failed to issue token", http.StatusInternalServerError)
		return
	}

	slog.Info("Issued access token", "client_id", client.ID, "scope", response.Scope)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(response)
}

// parseTokenRequest reads credentials from a JSON or form body.
func parseTokenRequest(r *http.Request) (*tokenRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &tokenRequest{
		GrantType:    r.PostFormValue("grant_type"),
		ClientID:     r.PostFormValue("client_id"),
		ClientSecret: r.PostFormValue("client_secret"),
		Scope:        r.PostFormValue("scope"),
	}, nil
}

// splitScopes splits a space-separated scope parameter, dropping empties.
func splitScopes(scope string) []string {
	if scope == "" {
		return nil
	}
	return strings.Fields(scope)
}

var _ http.Handler = (*TokenHandler)(nil)
