package main

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"datahub-mcp/internal/catalog"
	"datahub-mcp/internal/config"
	"datahub-mcp/internal/datahub"
	"datahub-mcp/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	logger.Info("initializing datahub session", zap.String("base_url", cfg.BaseURL))

	client := datahub.NewClient(cfg.BaseURL)
	store := datahub.NewTokenStore(cfg.TokenPath, logger)
	session := datahub.NewSession(client, store, logger)
	// The client must be released on every exit path, including a failed
	// startup probe.
	defer session.Close()

	session.Open(ctx)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "datahub-mcp",
		Version: "0.1.0",
	}, nil)

	catalog.NewService(session).AddTools(server)

	return server.Run(ctx, &mcp.StdioTransport{})
}
