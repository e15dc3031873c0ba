// Package mcp exposes lifelog search over the Model Context Protocol. It is
// a thin adapter: tool handlers validate arguments, call the search engine
// or store, and format text results.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing lifelog tools.
type Server struct {
	engine *search.Engine
	store  *lifelog.Store
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(engine *search.Engine, store *lifelog.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine: engine,
		store:  store,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		"limitless-lifelogs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchLifelogsTool, s.handleSearchLifelogs)
	s.mcp.AddTool(listLifelogsTool, s.handleListLifelogs)
	s.mcp.AddTool(getLifelogTool, s.handleGetLifelog)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
