package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"eventbrite-mcp/internal/config"
	"eventbrite-mcp/internal/eventbrite"
	"eventbrite-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "eventbrite-mcp"

	subsystem = "MCPServer"
)

// Server dispatches MCP tool calls and resource reads to the Eventbrite API
// client. The client is shared read-only across concurrent requests; the
// server itself keeps no per-request state.
type Server struct {
	client *eventbrite.Client
	config config.SSEConfig

	mcp       *server.MCPServer
	sseServer *server.SSEServer
	mu        sync.Mutex
}

// New creates a dispatcher around the given API client and registers the
// tool and resource handlers.
func New(client *eventbrite.Client, sseConfig config.SSEConfig, version string) *Server {
	s := &Server{
		client: client,
		config: sseConfig,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// ServeStdio serves MCP over stdin/stdout until the stream closes or the
// context is cancelled. This is the transport AI assistants launch us with.
func (s *Server) ServeStdio(ctx context.Context) error {
	logging.Info(subsystem, "Serving MCP over stdio")
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// StartSSE starts the HTTP/SSE transport in the background.
func (s *Server) StartSSE(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sseServer != nil {
		return fmt.Errorf("SSE server already started")
	}

	baseURL := fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
	s.sseServer = server.NewSSEServer(
		s.mcp,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logging.Info(subsystem, "Serving MCP over SSE on %s", addr)

	sseServer := s.sseServer
	go func() {
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			logging.Error(subsystem, err, "SSE server error")
		}
	}()

	return nil
}

// Stop shuts down the SSE transport, if running.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	sseServer := s.sseServer
	s.sseServer = nil
	s.mu.Unlock()

	if sseServer == nil {
		return nil
	}

	logging.Info(subsystem, "Stopping SSE server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sseServer.Shutdown(shutdownCtx)
}

// Endpoint returns the SSE endpoint URL clients should connect to.
func (s *Server) Endpoint() string {
	return fmt.Sprintf("http://%s:%d/sse", s.config.Host, s.config.Port)
}

// fetchEventWithVenue fetches an event and, when it carries a venue
// reference but no inline venue, attaches the venue via a secondary lookup.
// Enrichment failures are logged and swallowed; the event is still returned.
func (s *Server) fetchEventWithVenue(ctx context.Context, eventID string) (*eventbrite.Event, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.VenueID != "" && event.Venue == nil {
		venue, err := s.client.GetVenue(ctx, event.VenueID)
		if err != nil {
			logging.Warn(subsystem, "Failed to enrich event %s with venue %s: %v", event.ID, event.VenueID, err)
		} else {
			event.Venue = venue
		}
	}

	return event, nil
}
