package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"eventbrite-mcp/internal/eventbrite"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the four event-discovery tools. Tool names not in
// this set are rejected by the MCP library with a method-not-found error.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchEventsTool(), s.handleSearchEvents)
	s.mcp.AddTool(getEventTool(), s.handleGetEvent)
	s.mcp.AddTool(getCategoriesTool(), s.handleGetCategories)
	s.mcp.AddTool(getVenueTool(), s.handleGetVenue)
}

func searchEventsTool() mcp.Tool {
	return mcp.NewTool("search_events",
		mcp.WithDescription("Search for events on Eventbrite. The native search endpoint is retired, "+
			"so this lists events of the token's first organization; location, categories and price "+
			"are accepted but currently have no effect on the results."),
		mcp.WithString("query",
			mcp.Description("Free-text search query"),
		),
		mcp.WithObject("location",
			mcp.Description("Geographic filter (currently inert)"),
			mcp.Properties(map[string]interface{}{
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude of the search center",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude of the search center",
				},
				"within": map[string]interface{}{
					"type":        "string",
					"description": "Search radius, e.g. 10km or 10mi",
				},
			}),
		),
		mcp.WithArray("categories",
			mcp.Description("Category IDs to filter by (currently inert)"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
		mcp.WithString("start_date",
			mcp.Description("Earliest event start, ISO-8601"),
		),
		mcp.WithString("end_date",
			mcp.Description("Latest event start, ISO-8601"),
		),
		mcp.WithString("price",
			mcp.Description("Price filter (currently inert)"),
			mcp.Enum("free", "paid"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number to fetch"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Number of events per page"),
		),
	)
}

func getEventTool() mcp.Tool {
	return mcp.NewTool("get_event",
		mcp.WithDescription("Get detailed information about a specific Eventbrite event, "+
			"including its venue when one is attached"),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Eventbrite event ID"),
		),
	)
}

func getCategoriesTool() mcp.Tool {
	return mcp.NewTool("get_categories",
		mcp.WithDescription("List Eventbrite's event categories"),
	)
}

func getVenueTool() mcp.Tool {
	return mcp.NewTool("get_venue",
		mcp.WithDescription("Get detailed information about a specific Eventbrite venue"),
		mcp.WithString("venue_id",
			mcp.Required(),
			mcp.Description("Eventbrite venue ID"),
		),
	)
}

// handleSearchEvents handles the search_events tool call.
func (s *Server) handleSearchEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := searchParamsFromArgs(req)

	result, err := s.client.SearchEvents(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonToolResult(result)
}

// handleGetEvent handles the get_event tool call, enriching the event with
// its venue when the response carries only a venue reference.
func (s *Server) handleGetEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireString("event_id")
	if err != nil || eventID == "" {
		return mcp.NewToolResultError("event_id is required"), nil
	}

	event, err := s.fetchEventWithVenue(ctx, eventID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonToolResult(event)
}

// handleGetCategories handles the get_categories tool call.
func (s *Server) handleGetCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.client.GetCategories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonToolResult(categories)
}

// handleGetVenue handles the get_venue tool call.
func (s *Server) handleGetVenue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	venueID, err := req.RequireString("venue_id")
	if err != nil || venueID == "" {
		return mcp.NewToolResultError("venue_id is required"), nil
	}

	venue, err := s.client.GetVenue(ctx, venueID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonToolResult(venue)
}

// searchParamsFromArgs copies the present optional arguments into
// SearchParams. Absent arguments stay zero-valued; nothing is defaulted.
func searchParamsFromArgs(req mcp.CallToolRequest) eventbrite.SearchParams {
	params := eventbrite.SearchParams{}

	args, ok := req.Params.Arguments.(map[string]interface{})
	if !ok || args == nil {
		return params
	}

	params.Query = optString(args, "query")
	params.StartDate = optString(args, "start_date")
	params.EndDate = optString(args, "end_date")
	params.Price = optString(args, "price")
	params.Page = optInt(args, "page")
	params.PageSize = optInt(args, "page_size")

	if loc, ok := args["location"].(map[string]interface{}); ok {
		location := &eventbrite.Location{
			Within: optString(loc, "within"),
		}
		if lat, ok := loc["latitude"].(float64); ok {
			location.Latitude = lat
		}
		if lon, ok := loc["longitude"].(float64); ok {
			location.Longitude = lon
		}
		params.Location = location
	}

	if raw, ok := args["categories"].([]interface{}); ok {
		for _, item := range raw {
			if id, ok := item.(string); ok {
				params.Categories = append(params.Categories, id)
			}
		}
	}

	return params
}

func optString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// optInt reads a numeric argument. JSON numbers arrive as float64.
func optInt(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// jsonToolResult serializes v as indented JSON text content.
func jsonToolResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
