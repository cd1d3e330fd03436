package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	eventResourceTemplate = "eventbrite://events/{eventId}"
	eventResourcePrefix   = "eventbrite://events/"
)

// registerResources advertises the single event resource template. There are
// no enumerable static resources; only the template is exposed.
func (s *Server) registerResources() {
	template := mcp.NewResourceTemplate(
		eventResourceTemplate,
		"Eventbrite Event",
		mcp.WithTemplateDescription("JSON document for a single Eventbrite event, venue attached when available"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcp.AddResourceTemplate(template, s.handleEventResource)
}

// handleEventResource reads eventbrite://events/{eventId}. The fetch+enrich
// path is the same one get_event uses; unlike the tool path, adapter errors
// here propagate as protocol-level failures.
func (s *Server) handleEventResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	eventID, err := eventIDFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	event, err := s.fetchEventWithVenue(ctx, eventID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// eventIDFromURI extracts the event id from an event resource URI.
func eventIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, eventResourcePrefix) {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	id := strings.TrimPrefix(uri, eventResourcePrefix)
	if id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	return id, nil
}
