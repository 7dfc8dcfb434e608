// Package mcp implements a Model Context Protocol (MCP) server for tidydocs
// using the mcp-go library.
//
// The server exposes the organization pipeline to AI assistants as three
// tools: analyze a documentation tree, apply the suggested moves, and run a
// health check. Each tool call is stateless: configuration is resolved for
// the requested directory and a fresh engine runs the pipeline, so one server
// can serve any number of project roots.
//
// Communication is stdin/stdout JSON-RPC 2.0 as specified by the MCP
// standard; each tool returns a single JSON document, no streaming.
package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"tidydocs/internal/logging"
)

// ServerVersion is reported during the MCP handshake.
const ServerVersion = "1.0.0"

// Server represents an MCP server instance using mcp-go.
type Server struct {
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(logger *logging.AppLogger) *Server {
	return &Server{logger: logger}
}

// Start initializes the MCP server, registers the tools, and serves on
// stdio until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server")

	s.mcpServer = server.NewMCPServer(
		"tidydocs",
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(analyzeDocsTool(), s.handleAnalyzeDocs)
	s.mcpServer.AddTool(applyMovesTool(), s.handleApplyMoves)
	s.mcpServer.AddTool(healthCheckTool(), s.handleHealthCheck)
}
