package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestTokenHandler(t *testing.T) (*TokenHandler, *TokenService) {
	t.Helper()

	registry := NewClientRegistry()
	registry.Register("acme", "s3cr3t", "Acme Corp", []string{"a2a:travel-agent"})
	service := newTestTokenService(t, time.Hour)

	return NewTokenHandler(registry, service), service
}

func TestTokenHandler_ClientCredentialsGrant(t *testing.T) {
	handler, service := newTestTokenHandler(t)

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {"acme"},
		"client_secret": {"s3cr3t"},
	}
	req := httptest.NewRequest("POST", "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("HTTP status = %v, want %v, body %v", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response TokenResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.TokenType != "Bearer" {
		t.Errorf("token_type = %v, want Bearer", response.TokenType)
	}
	if response.Scope != "a2a:travel-agent" {
		t.Errorf("scope = %v, want a2a:travel-agent", response.Scope)
	}
	if response.ExpiresIn != 3600 {
		t.Errorf("expires_in = %v, want 3600", response.ExpiresIn)
	}

	claims, err := service.Verify(context.Background(), response.AccessToken)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ClientID != "acme" {
		t.Errorf("Claims.ClientID = %v, want acme", claims.ClientID)
	}
}

func TestTokenHandler_JSONBody(t *testing.T) {
	handler, _ := newTestTokenHandler(t)

	body := `{"grant_type":"client_credentials","client_id":"acme","client_secret":"s3cr3t","scope":"a2a:travel-agent"}`
	req := httptest.NewRequest("POST", "/oauth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("HTTP status = %v, want %v, body %v", rr.Code, http.StatusOK, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"scope":"a2a:travel-agent"`) {
		t.Errorf("Response body = %v, should contain granted scope", rr.Body.String())
	}
}

func TestTokenHandler_BasicAuth(t *testing.T) {
	handler, _ := newTestTokenHandler(t)

	form := url.Values{"grant_type": {"client_credentials"}}
	req := httptest.NewRequest("POST", "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("acme", "s3cr3t")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("HTTP status = %v, want %v, body %v", rr.Code, http.StatusOK, rr.Body.String())
	}
}

func TestTokenHandler_Errors(t *testing.T) {
	handler, _ := newTestTokenHandler(t)

	tests := []struct {
		name           string
		method         string
		form           url.Values
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "wrong_grant_type",
			method: "POST",
			form: url.Values{
				"grant_type":    {"authorization_code"},
				"client_id":     {"acme"},
				"client_secret": {"s3cr3t"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "unsupported_grant_type",
		},
		{
			name:   "missing_grant_type",
			method: "POST",
			form: url.Values{
				"client_id":     {"acme"},
				"client_secret": {"s3cr3t"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "unsupported_grant_type",
		},
		{
			name:           "missing_credentials",
			method:         "POST",
			form:           url.Values{"grant_type": {"client_credentials"}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "invalid_request",
		},
		{
			name:   "wrong_secret",
			method: "POST",
			form: url.Values{
				"grant_type":    {"client_credentials"},
				"client_id":     {"acme"},
				"client_secret": {"wrong"},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "invalid_client",
		},
		{
			name:   "unknown_client",
			method: "POST",
			form: url.Values{
				"grant_type":    {"client_credentials"},
				"client_id":     {"nobody"},
				"client_secret": {"s3cr3t"},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "invalid_client",
		},
		{
			name:           "get_not_allowed",
			method:         "GET",
			form:           url.Values{},
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/oauth/token", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("HTTP status = %v, want %v", rr.Code, tt.expectedStatus)
			}
			if !strings.Contains(rr.Body.String(), `"error":"`+tt.expectedCode+`"`) {
				t.Errorf("Response body = %v, should contain error code %v", rr.Body.String(), tt.expectedCode)
			}
		})
	}
}
