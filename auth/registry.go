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
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sync"
)

// DefaultScope is the scope granted to clients registered without an
// explicit scope list.
const DefaultScope = "a2a:travel-agent"

// Client is a registered OAuth2 client. Fields are set at registration
// and never mutated afterwards, so a Client can be read without locking.
type Client struct {
	// ID is the unique client identifier.
	ID string

	// SecretHash is the SHA-256 hex digest of the client secret.
	// The plaintext secret is never stored.
	SecretHash string

	// DisplayName is a human-readable client name.
	DisplayName string

	// AllowedScopes is the full set of scopes this client may be granted.
	AllowedScopes []string

	// Enabled gates whether the client can authenticate at all.
	Enabled bool
}

// ClientRegistry holds the set of known OAuth2 clients.
//
// The registry is populated at startup from configuration and is
// read-mostly afterwards. Register may still be called at runtime and
// idempotently replaces any existing entry with the same id.
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewClientRegistry creates an empty client registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the registry, hashing the secret before
// storage. Registering an existing id replaces the previous entry.
// An empty scope list grants DefaultScope.
func (r *ClientRegistry) Register(id, secret, displayName string, scopes []string) *Client {
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	client := &Client{
		ID:            id,
		SecretHash:    HashSecret(secret),
		DisplayName:   displayName,
		AllowedScopes: append([]string(nil), scopes...),
		Enabled:       true,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = client

	return client
}

// Validate returns the client only if it exists, is enabled, and the
// presented secret hashes to the stored digest. Unknown ids and wrong
// secrets both compare against a full-length digest so the two failure
// modes are not distinguishable by timing.
func (r *ClientRegistry) Validate(id, secret string) (*Client, error) {
	r.mu.RLock()
	client, ok := r.clients[id]
	r.mu.RUnlock()

	storedHash := unknownClientHash
	if ok {
		storedHash = client.SecretHash
	}

	match := subtle.ConstantTimeCompare([]byte(HashSecret(secret)), []byte(storedHash)) == 1
	if !ok || !match {
		return nil, ErrInvalidClient
	}
	if !client.Enabled {
		return nil, ErrClientDisabled
	}

	return client, nil
}

// Get returns the client with the given id, if registered.
func (r *ClientRegistry) Get(id string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[id]
	return client, ok
}

// HashSecret returns the SHA-256 hex digest of a client secret.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// unknownClientHash is compared against when the client id is unknown,
// keeping Validate's runtime independent of whether the id exists.
var unknownClientHash = HashSecret("")
