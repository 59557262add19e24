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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"

	"github.com/SasiVeeramachaneni/travelagent-a2a/auth"
	"github.com/SasiVeeramachaneni/travelagent-a2a/config"
)

// HTTPServer serves the travel agent over HTTP: JSON-RPC A2A traffic
// at the root, the agent card at the well-known path, the OAuth2 token
// endpoint, and a health check.
type HTTPServer struct {
	cfg    *config.Config
	server *http.Server

	executor      *Executor
	taskStore     a2asrv.TaskStore
	authComps     *auth.Components
	card          *a2a.AgentCard
	rpcHandler    http.Handler
	cardHandler   http.Handler
	tokenEndpoint http.Handler
}

// HTTPServerOption configures the HTTP server.
type HTTPServerOption func(*HTTPServer)

// WithTaskStore sets a persistent task store. Without it a2a-go keeps
// tasks in memory.
func WithTaskStore(store a2asrv.TaskStore) HTTPServerOption {
	return func(s *HTTPServer) {
		s.taskStore = store
	}
}

// WithAuth enables OAuth2 authentication using the given components.
func WithAuth(comps *auth.Components) HTTPServerOption {
	return func(s *HTTPServer) {
		s.authComps = comps
	}
}

// NewHTTPServer creates an HTTP server around the executor.
func NewHTTPServer(cfg *config.Config, executor *Executor, opts ...HTTPServerOption) *HTTPServer {
	s := &HTTPServer{
		cfg:      cfg,
		executor: executor,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.card = buildAgentCard(cfg.BaseURL(), s.authComps != nil)

	handlerOpts := []a2asrv.RequestHandlerOption{}
	if s.taskStore != nil {
		handlerOpts = append(handlerOpts, a2asrv.WithTaskStore(s.taskStore))
	}
	if s.authComps != nil {
		handlerOpts = append(handlerOpts, a2asrv.WithCallInterceptor(auth.NewInterceptor(cfg.Auth.Enabled)))
	}

	requestHandler := a2asrv.NewHandler(executor, handlerOpts...)
	s.rpcHandler = a2asrv.NewJSONRPCHandler(requestHandler)
	s.cardHandler = a2asrv.NewStaticAgentCardHandler(s.card)
	if s.authComps != nil {
		s.tokenEndpoint = s.authComps.Endpoint
	}

	return s
}

// Card returns the agent card served at the well-known path.
func (s *HTTPServer) Card() *a2a.AgentCard {
	return s.card
}

// Handler builds the complete HTTP handler with middleware applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle(a2asrv.WellKnownAgentCardPath, s.cardHandler)
	// Some clients still probe the legacy discovery path.
	mux.Handle("/.well-known/agent.json", s.cardHandler)

	if s.tokenEndpoint != nil {
		mux.Handle(auth.TokenEndpointPath, s.tokenEndpoint)
	}

	var handler http.Handler = mux
	if s.authComps != nil && s.cfg.Auth.Enabled {
		handler = auth.Middleware(s.authComps.Tokens, auth.DefaultPublicPaths())(handler)
	}
	handler = loggingMiddleware(handler)

	return handler
}

// Start runs the server until the context is cancelled.
func (s *HTTPServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("HTTP server starting", "address", addr, "authEnabled", s.cfg.Auth.Enabled)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slog.Info("HTTP server shutting down")
	return s.server.Shutdown(shutdownCtx)
}

// handleRoot serves the JSON-RPC endpoint for POST and a plain info
// page for GET. The GET response is public so browsers and probes can
// confirm the service is up.
func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.rpcHandler.ServeHTTP(w, r)
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name":       s.card.Name,
			"version":    s.card.Version,
			"agent_card": a2asrv.WellKnownAgentCardPath,
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// loggingMiddleware logs requests without wrapping the ResponseWriter,
// which would break http.Flusher for streaming responses.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
