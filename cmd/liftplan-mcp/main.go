package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftplan/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// liftplan-mcp serves the MCP tools over stdio, proxying to a remote
// LiftPlan server's REST API. Intended to run on the user's machine while
// the server lives on the tailnet.
func main() {
	baseURL := flag.String("url", "http://liftplan", "base URL of the LiftPlan server")
	apiKey := flag.String("api-key", os.Getenv("LIFTPLAN_API_KEY"), "API key for inventory endpoints")
	flag.Parse()

	// Logs go to stderr: stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	engine := mcp.NewHTTPClient(*baseURL, *apiKey)
	srv := mcp.New(engine, Version, log)

	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
