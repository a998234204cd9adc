package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"devreg/pkg/db"
	"devreg/pkg/device/schema"
)

// Server wraps the MCP server with the device registry's operations
type Server struct {
	mcpServer *server.MCPServer
	database  *db.DB
	store     db.DeviceStore
	validator *schema.Validator
}

// NewServer creates a new MCP server over the registry store
func NewServer(database *db.DB, validator *schema.Validator) *Server {
	s := &Server{
		database:  database,
		store:     database.Devices(),
		validator: validator,
	}

	s.mcpServer = server.NewMCPServer(
		"devreg",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
