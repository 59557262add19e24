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

import "errors"

// Common authentication errors.
var (
	// ErrUnauthorized is returned when authentication is required but not provided.
	ErrUnauthorized = errors.New("unauthorized: authentication required")

	// ErrInvalidToken is returned when a token cannot be verified.
	// Verification fails closed: forged, expired and mis-audienced tokens
	// all surface as this error.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidClient is returned when client credentials fail validation.
	ErrInvalidClient = errors.New("invalid client credentials")

	// ErrClientDisabled is returned when a known client is disabled.
	ErrClientDisabled = errors.New("client is disabled")

	// ErrUnsupportedGrantType is returned for any grant other than client_credentials.
	ErrUnsupportedGrantType = errors.New("unsupported grant type")

	// ErrMissingCredentials is returned when a token request lacks client credentials.
	ErrMissingCredentials = errors.New("missing client credentials")
)
