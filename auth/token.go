package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Default token parameters. Issuer and audience pin tokens to this
// server so tokens minted elsewhere never verify here.
const (
	DefaultIssuer   = "travel-agent-oauth2"
	DefaultAudience = "travel-agent-a2a"
	DefaultTokenTTL = time.Hour
)

// scopesClaim is the private claim carrying granted scopes.
const scopesClaim = "scopes"

// TokenVerifier verifies bearer tokens and extracts claims.
// Implemented by TokenService; middleware and tests depend on the
// interface so they can swap verifiers.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// TokenServiceConfig configures a TokenService.
type TokenServiceConfig struct {
	// SigningSecret is the symmetric HS256 signing key. Required.
	SigningSecret string

	// TTL is the token lifetime. Defaults to DefaultTokenTTL.
	TTL time.Duration

	// Issuer and Audience override the defaults.
	Issuer   string
	Audience string
}

// SetDefaults applies default values for unset fields.
func (c *TokenServiceConfig) SetDefaults() {
	if c.TTL <= 0 {
		c.TTL = DefaultTokenTTL
	}
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	if c.Audience == "" {
		c.Audience = DefaultAudience
	}
}

// Validate checks that the configuration is usable.
func (c *TokenServiceConfig) Validate() error {
	if c.SigningSecret == "" {
		return fmt.Errorf("signing secret is required")
	}
	return nil
}

// TokenService issues and verifies signed bearer tokens.
//
// Tokens are self-contained HS256 JWTs, so verification is stateless:
// no storage lookup, any instance holding the signing secret can verify.
// The trade-off is that a token cannot be revoked before its expiry;
// the TTL is the only bound.
type TokenService struct {
	key      jwk.Key
	ttl      time.Duration
	issuer   string
	audience string
}

// NewTokenService creates a token service from configuration.
func NewTokenService(cfg TokenServiceConfig) (*TokenService, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token service config: %w", err)
	}

	key, err := jwk.FromRaw([]byte(cfg.SigningSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to create signing key: %w", err)
	}

	return &TokenService{
		key:      key,
		ttl:      cfg.TTL,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// TokenResponse is the wire shape of a successful token grant.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// Issue mints a signed bearer token for an authenticated client.
//
// Granted scopes are the intersection of the requested scopes with the
// client's allowed scopes; when no scopes are requested the full
// allowed set is granted. Requesting a scope the client does not hold
// silently narrows rather than failing, per RFC 6749 section 3.3.
func (s *TokenService) Issue(client *Client, requestedScopes []string) (*TokenResponse, error) {
	granted := grantScopes(client.AllowedScopes, requestedScopes)
	now := time.Now()

	token := jwt.New()
	claims := map[string]any{
		jwt.SubjectKey:    client.ID,
		"client_id":       client.ID,
		scopesClaim:       granted,
		jwt.IssuedAtKey:   now,
		jwt.ExpirationKey: now.Add(s.ttl),
		jwt.JwtIDKey:      uuid.NewString(),
		jwt.IssuerKey:     s.issuer,
		jwt.AudienceKey:   s.audience,
	}
	for name, value := range claims {
		if err := token.Set(name, value); err != nil {
			return nil, fmt.Errorf("failed to set claim %s: %w", name, err)
		}
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.key))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: string(signed),
		TokenType:   "Bearer",
		ExpiresIn:   int(s.ttl.Seconds()),
		Scope:       strings.Join(granted, " "),
	}, nil
}

// Verify parses and validates a bearer token and extracts its claims.
// It verifies the HS256 signature, expiration, issuer and audience.
// All failures surface as ErrInvalidToken; the underlying cause is
// logged at debug level only, so callers cannot distinguish an expired
// token from a forged one.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256, s.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		slog.Debug("Token verification failed", "error", err)
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		ClientID:  token.Subject(),
		TokenID:   token.JwtID(),
		IssuedAt:  token.IssuedAt(),
		ExpiresAt: token.Expiration(),
	}
	if clientID, ok := token.Get("client_id"); ok {
		if id, ok := clientID.(string); ok && id != "" {
			claims.ClientID = id
		}
	}
	if raw, ok := token.Get(scopesClaim); ok {
		claims.GrantedScopes = scopesFromClaim(raw)
	}

	return claims, nil
}

// grantScopes intersects requested scopes with the allowed set,
// defaulting to the full allowed set when none are requested.
func grantScopes(allowed, requested []string) []string {
	if len(requested) == 0 {
		return append([]string(nil), allowed...)
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = true
	}

	granted := make([]string, 0, len(requested))
	for _, s := range requested {
		if allowedSet[s] {
			granted = append(granted, s)
		}
	}
	return granted
}

// scopesFromClaim normalizes the scopes claim, which deserializes as
// []interface{} from JSON but may also arrive as a space-joined string.
func scopesFromClaim(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		scopes := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				scopes = append(scopes, s)
			}
		}
		return scopes
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, " ")
	default:
		return nil
	}
}

var _ TokenVerifier = (*TokenService)(nil)
