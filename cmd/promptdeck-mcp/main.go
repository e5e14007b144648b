package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"promptdeck/internal/adapters/assets"
	"promptdeck/internal/adapters/jsonfile"
	mcpadapter "promptdeck/internal/adapters/mcp"
	"promptdeck/internal/adapters/sqlite"
	"promptdeck/internal/config"
	"promptdeck/internal/ports"
)

func main() {
	config.Load()

	dataDir := flag.String("data", config.DataDir(), "data directory")
	storeKind := flag.String("store", config.StoreKind(), "project store backend (sqlite or json)")
	bridge := flag.String("bridge", fmt.Sprintf("http://127.0.0.1:%d", config.HTTPPort()), "remote bridge base URL of the running prompter")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("promptdeck-mcp: %v", err)
	}

	var repo ports.ProjectRepository
	var err error
	switch *storeKind {
	case "json":
		repo, err = jsonfile.Open(config.ProjectsDir(*dataDir))
	default:
		repo, err = sqlite.Open(config.DatabasePath(*dataDir))
	}
	if err != nil {
		log.Fatalf("promptdeck-mcp: %v", err)
	}
	defer repo.Close()

	mcpServer := server.NewMCPServer(
		"promptdeck-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, *bridge)
	mcpadapter.RegisterControlTools(mcpServer, repo, assets.NewStore(*dataDir), *bridge)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("promptdeck-mcp: %v", err)
	}
}
