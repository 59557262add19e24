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

// Package auth provides OAuth2 client-credentials authentication for the
// travel agent's A2A server.
//
// # Architecture
//
// The auth package is layered:
//
//  1. ClientRegistry: known clients with hashed secrets
//  2. TokenService: issues and verifies signed bearer tokens
//  3. TokenHandler: the POST /oauth/token grant endpoint
//  4. HTTP Middleware: gates protected paths on a valid bearer token
//  5. CallInterceptor: bridges validated claims to a2a-go's auth system
//
// Validated claims are stored in the request context and can be
// retrieved with ClaimsFromContext.
package auth

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsContextKey is the context key for storing validated claims.
	ClaimsContextKey contextKey = "travelagent_auth_claims"
)

// Claims is the validated claim set carried by a bearer token.
type Claims struct {
	// ClientID identifies the authenticated client.
	ClientID string `json:"client_id"`

	// GrantedScopes are the scopes this token carries. Always a subset
	// of the owning client's allowed scopes.
	GrantedScopes []string `json:"scopes"`

	// TokenID is the unique token identifier (jti), kept for audit logs.
	TokenID string `json:"jti"`

	// IssuedAt is when the token was minted.
	IssuedAt time.Time `json:"iat"`

	// ExpiresAt is when the token stops verifying.
	ExpiresAt time.Time `json:"exp"`
}

// HasScope checks whether the token carries a specific scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.GrantedScopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ClaimsFromContext extracts claims from a context.
// Returns nil if no claims are present.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(ClaimsContextKey).(*Claims); ok {
		return claims
	}
	return nil
}

// ContextWithClaims returns a new context with the given claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}
