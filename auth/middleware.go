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
	"net/http"
	"strings"
)

// TokenEndpointPath is where the client-credentials grant is served.
const TokenEndpointPath = "/oauth/token"

// DefaultPublicPaths are reachable without authentication: the
// discovery documents, the token endpoint itself and the health check.
func DefaultPublicPaths() []string {
	return []string{
		"/.well-known/agent-card.json",
		"/.well-known/agent.json",
		TokenEndpointPath,
		"/health",
	}
}

// Stable machine-readable error codes returned on 401 responses.
const (
	CodeUnauthorized = "unauthorized"
	CodeInvalidToken = "invalid_token"
)

// Middleware creates an HTTP middleware that gates protected paths on a
// valid bearer token.
//
// Requests are classified top to bottom, first match wins:
//
//   - path in the public allow-list: pass through unauthenticated
//   - GET on the root path: pass through unauthenticated
//   - otherwise: require "Authorization: Bearer <token>"
//
// A missing or malformed header yields 401 with code "unauthorized"; a
// token that fails verification yields 401 with code "invalid_token".
// Valid claims are stored in the request context and can be retrieved
// with ClaimsFromContext.
func Middleware(verifier TokenVerifier, publicPaths []string) func(http.Handler) http.Handler {
	if publicPaths == nil {
		publicPaths = DefaultPublicPaths()
	}
	publicSet := make(map[string]bool, len(publicPaths))
	for _, path := range publicPaths {
		publicSet[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(publicSet, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// Read-only access to the root path is public.
			if r.Method == http.MethodGet && (r.URL.Path == "/" || r.URL.Path == "") {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := extractBearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeAuthError(w, CodeUnauthorized, "Missing or malformed Authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				writeAuthError(w, CodeInvalidToken, "Token verification failed", http.StatusUnauthorized)
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath checks the allow-list, tolerating trailing slash variants.
func isPublicPath(publicSet map[string]bool, path string) bool {
	if publicSet[path] {
		return true
	}
	if publicSet[strings.TrimSuffix(path, "/")] {
		return true
	}
	return publicSet[path+"/"]
}

// extractBearerToken returns the token from a "Bearer <token>" header,
// or "" when the header is absent or not a bearer credential.
func extractBearerToken(authHeader string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
}

// authError is the JSON body written on auth failures.
type authError struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// writeAuthError writes a structured JSON error response.
func writeAuthError(w http.ResponseWriter, code, description string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authError{Error: code, Description: description})
}
