package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/vbonduro/planttracker/internal/service"
)

// Server exposes the tracker service as Model Context Protocol tools.
type Server struct {
	mcpServer *mcp.Server
	service   *service.TrackerService
	logger    *slog.Logger
}

func NewServer(svc *service.TrackerService, version string, logger *slog.Logger) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: "planttracker", Version: version}, nil),
		service:   svc,
		logger:    logger,
	}
	s.registerTools()
	return s
}

// Serve runs the server over stdin/stdout until ctx is cancelled or the
// client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
