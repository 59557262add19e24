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

// Command travelagent runs the travel agent A2A server.
//
// Usage:
//
//	travelagent serve
//	travelagent serve --port 9000
//	travelagent version
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/SasiVeeramachaneni/travelagent-a2a/agent"
	"github.com/SasiVeeramachaneni/travelagent-a2a/auth"
	"github.com/SasiVeeramachaneni/travelagent-a2a/config"
	"github.com/SasiVeeramachaneni/travelagent-a2a/server"
	"github.com/SasiVeeramachaneni/travelagent-a2a/session"
	"github.com/SasiVeeramachaneni/travelagent-a2a/task"
	"github.com/SasiVeeramachaneni/travelagent-a2a/version"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the A2A server."`

	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (text, json)." default:"text"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(version.Get().String())
	return nil
}

// ServeCmd starts the A2A server.
type ServeCmd struct {
	Host string `help:"Host to bind." placeholder:"HOST"`
	Port int    `help:"Port to listen on." placeholder:"PORT"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}

	var serverOpts []server.HTTPServerOption

	var authComps *auth.Components
	if cfg.Auth.Enabled {
		authComps, err = auth.NewComponentsFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("failed to create auth components: %w", err)
		}
		serverOpts = append(serverOpts, server.WithAuth(authComps))
	}

	// Task store and session service share one database when a SQL
	// backend is configured.
	var db *sql.DB
	if !cfg.Storage.IsInMemory() {
		db, err = sql.Open(cfg.Storage.Driver(), cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("failed to open %s database: %w", cfg.Storage.Backend, err)
		}
		defer db.Close()

		taskStore, err := task.NewSQLStore(db, cfg.Storage.Backend)
		if err != nil {
			return fmt.Errorf("failed to create task store: %w", err)
		}
		serverOpts = append(serverOpts, server.WithTaskStore(taskStore))
		slog.Info("Task persistence enabled", "backend", cfg.Storage.Backend)
	}

	sessions, err := session.NewServiceFromConfig(cfg, db)
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	var ai *agent.AIClient
	if cfg.AI.IsEnabled() {
		ai = agent.NewAIClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout)
		slog.Info("AI responses enabled", "model", cfg.AI.Model)
	} else {
		slog.Info("AI responses disabled, using rule-based planner")
	}

	executor := server.NewExecutor(server.ExecutorConfig{
		Agent:    agent.New(ai),
		Sessions: sessions,
	})

	srv := server.NewHTTPServer(cfg, executor, serverOpts...)

	fmt.Printf("Travel Agent A2A server ready\n")
	fmt.Printf("  Base URL:    %s\n", cfg.BaseURL())
	fmt.Printf("  Agent Card:  %s/.well-known/agent-card.json\n", cfg.BaseURL())
	fmt.Printf("  Health:      %s/health\n", cfg.BaseURL())
	if cfg.Auth.Enabled {
		fmt.Printf("  Token URL:   %s%s\n", cfg.BaseURL(), auth.TokenEndpointPath)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	return srv.Start(ctx)
}

func main() {
	_ = config.LoadDotEnv()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("travelagent"),
		kong.Description("Travel Agent - A2A travel planning server with OAuth2 client credentials auth"),
		kong.UsageOnError(),
	)

	cleanup, err := initLogger(cli.LogLevel, cli.LogFile, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
