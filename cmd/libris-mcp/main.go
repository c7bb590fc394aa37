package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "libris/internal/adapters/mcp"
	"libris/internal/adapters/sqlite"
	"libris/internal/config"
	"libris/internal/shell"
)

func main() {
	dbFlag := flag.String("db", "", "path to the library database (defaults to config)")
	configFlag := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("libris-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.Database.Path = *dbFlag
	}

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("libris-mcp: %v", err)
	}
	defer store.Close()

	env := shell.NewEnv(store, mcpadapter.AutoConfirmer{}, mcpadapter.NopPager{}, nil)
	registry := shell.DefaultRegistry()

	mcpServer := server.NewMCPServer(
		"libris-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterShellTools(mcpServer, env, registry)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("libris-mcp: %v", err)
	}
}
