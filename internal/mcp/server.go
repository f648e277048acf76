// ABOUTME: MCP server exposing one coach account to an assistant over stdio.
// ABOUTME: Wraps the MCP server with storage and the plan generator.
package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access for a single account.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	generator *coach.Generator
	userID    uuid.UUID
	now       func() time.Time
}

// NewServer creates an MCP server bound to userID. gen may be nil, in which
// case generate_plans reports that no model is configured.
func NewServer(repo storage.Repository, gen *coach.Generator, userID uuid.UUID) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "coach",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		generator: gen,
		userID:    userID,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
