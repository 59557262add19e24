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
	"context"

	"github.com/a2aproject/a2a-go/a2asrv"
)

// Interceptor bridges the HTTP auth middleware to a2a-go's
// CallInterceptor. It reads Claims from the request context (set by
// Middleware) and sets the a2a-go CallContext.User field so the
// executor can see the calling client.
type Interceptor struct {
	// RequireAuth when true rejects unauthenticated requests that
	// slipped past the HTTP middleware.
	RequireAuth bool
}

// NewInterceptor creates a new auth interceptor.
func NewInterceptor(requireAuth bool) *Interceptor {
	return &Interceptor{
		RequireAuth: requireAuth,
	}
}

// Before is called before each a2a-go request handler method.
func (i *Interceptor) Before(ctx context.Context, callCtx *a2asrv.CallContext, req *a2asrv.Request) (context.Context, error) {
	claims := ClaimsFromContext(ctx)

	if claims != nil {
		callCtx.User = &AuthenticatedClient{claims: claims}
	} else if i.RequireAuth {
		// The HTTP middleware should make this unreachable; kept as a
		// safety net.
		return ctx, ErrUnauthorized
	}

	return ctx, nil
}

// After is called after each a2a-go request handler method.
func (i *Interceptor) After(ctx context.Context, callCtx *a2asrv.CallContext, resp *a2asrv.Response) error {
	return nil
}

var _ a2asrv.CallInterceptor = (*Interceptor)(nil)

// AuthenticatedClient implements a2asrv.User for an OAuth2 client.
type AuthenticatedClient struct {
	claims *Claims
}

// Name returns the client id.
func (u *AuthenticatedClient) Name() string {
	if u.claims == nil {
		return ""
	}
	return u.claims.ClientID
}

// Authenticated returns true since this represents a validated client.
func (u *AuthenticatedClient) Authenticated() bool {
	return true
}

// Claims returns the underlying token claims.
func (u *AuthenticatedClient) Claims() *Claims {
	return u.claims
}

var _ a2asrv.User = (*AuthenticatedClient)(nil)

// ClaimsFromCallContext extracts Claims from an a2a-go CallContext.
// Returns nil if the caller is not an authenticated OAuth2 client.
func ClaimsFromCallContext(callCtx *a2asrv.CallContext) *Claims {
	if callCtx == nil || callCtx.User == nil {
		return nil
	}
	if user, ok := callCtx.User.(*AuthenticatedClient); ok {
		return user.Claims()
	}
	return nil
}
