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
	"fmt"

	"github.com/SasiVeeramachaneni/travelagent-a2a/config"
)

// Components bundles the authentication pieces the server wires up.
type Components struct {
	Registry *ClientRegistry
	Tokens   *TokenService
	Endpoint *TokenHandler
}

// NewComponentsFromConfig builds the client registry, token service,
// and token endpoint from configuration. The configured default client
// is registered with the default scope.
func NewComponentsFromConfig(cfg *config.Config) (*Components, error) {
	tokens, err := NewTokenService(TokenServiceConfig{
		SigningSecret: cfg.Auth.SigningSecret,
		TTL:           cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	registry := NewClientRegistry()
	registry.Register(cfg.Auth.ClientID, cfg.Auth.ClientSecret, "Travel Agent Client", nil)

	return &Components{
		Registry: registry,
		Tokens:   tokens,
		Endpoint: NewTokenHandler(registry, tokens),
	}, nil
}
