// Package main provides the entry point for the contentpipe HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jdelaney/contentpipe-go/internal/agent"
	"github.com/jdelaney/contentpipe-go/internal/config"
	"github.com/jdelaney/contentpipe-go/internal/db"
	"github.com/jdelaney/contentpipe-go/internal/ingest"
	"github.com/jdelaney/contentpipe-go/internal/llm"
	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
	"github.com/jdelaney/contentpipe-go/internal/schema"
	"github.com/jdelaney/contentpipe-go/internal/server"
	"github.com/jdelaney/contentpipe-go/internal/starter"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("contentpipe-server starting",
		"version", version,
		"addr", cfg.ServerAddr,
		"surrealdb_url", cfg.SurrealDBURL,
		"llm_provider", cfg.LLMProvider,
	)

	// Create context cancelled on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Connect to database
	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	dbClient, err := db.NewClient(connectCtx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
	}, logger)
	connectCancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = dbClient.Close(context.Background())
	}()

	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize database schema", "error", err)
		os.Exit(1)
	}
	store := db.NewStore(dbClient)

	// Select the agent backend
	stats := metrics.NewCollector()
	var runner agent.Runner
	if cfg.LLMProvider == config.ProviderMock {
		runner = agent.MockRunner{}
		logger.Info("using mock agent runner")
	} else {
		model, err := llm.NewModel(ctx, cfg)
		if err != nil {
			logger.Error("failed to init model", "error", err)
			os.Exit(1)
		}
		runner = agent.NewModelRunner(model, schema.NewRegistry(),
			agent.WithMaxRetries(cfg.MaxRetries),
			agent.WithLogger(logger),
			agent.WithMetrics(stats),
		)
		logger.Info("model runner initialized", "model", model.Name())
	}

	// Wire services; the hub carries pipeline progress to websocket clients
	hub := server.NewHub(logger)
	pipe := pipeline.NewService(store, runner,
		pipeline.WithLogger(logger),
		pipeline.WithEvents(hub.Broadcast),
	)
	ingester := ingest.NewService(store, logger)
	start := starter.NewService(runner, starter.WithLogger(logger))

	srv := server.New(cfg.ServerAddr, store, ingester, pipe, start, stats, hub, logger)

	fmt.Fprintf(os.Stderr, "contentpipe-server listening on %s\n", cfg.ServerAddr)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
