// Package mcp exposes the movie search operations as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cinescout/cinescout/internal/core"
)

// Server wraps an MCP SDK server with CineScout tool handlers.
type Server struct {
	server *mcpsdk.Server
	source core.MovieSource
	logger *slog.Logger
}

// NewServer creates an MCP server with the search tools registered.
func NewServer(source core.MovieSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "cinescout",
			Version: "0.1.0",
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, source: source, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(searchMoviesTool(), s.handleSearchMovies)
	s.server.AddTool(discoverMoviesTool(), s.handleDiscoverMovies)
	s.server.AddTool(listGenresTool(), s.handleListGenres)
}

// Tool definitions.

func searchMoviesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "search_movies",
		Description: "Search for movies by title. Returns one page of results plus the total page count. Title search cannot be combined with a genre filter.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The movie title to search for",
				},
				"page": map[string]any{
					"type":        "integer",
					"description": "Result page to fetch, starting at 1",
				},
			},
			"required": []any{"query"},
		},
	}
}

func discoverMoviesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "discover_movies",
		Description: "List movies filtered by genre id, without free-text search. Returns one page of results plus the total page count.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"genre_id": map[string]any{
					"type":        "integer",
					"description": "Genre id to filter by (see list_genres); 0 lists all movies",
				},
				"page": map[string]any{
					"type":        "integer",
					"description": "Result page to fetch, starting at 1",
				},
			},
		},
	}
}

func listGenresTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "list_genres",
		Description: "List the movie genres with their numeric ids.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// Tool handlers.

func (s *Server) handleSearchMovies(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Page  int    `json:"page"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Query == "" {
		return toolError("search_movies requires a 'query' string argument"), nil
	}

	result, err := s.source.Search(ctx, core.SearchQuery{Title: args.Query, Page: args.Page})
	if err != nil {
		return toolError(fmt.Sprintf("movie search failed: %v", err)), nil
	}
	return toolJSON(result)
}

func (s *Server) handleDiscoverMovies(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		GenreID int `json:"genre_id"`
		Page    int `json:"page"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	result, err := s.source.Search(ctx, core.SearchQuery{GenreID: args.GenreID, Page: args.Page})
	if err != nil {
		return toolError(fmt.Sprintf("movie discover failed: %v", err)), nil
	}
	return toolJSON(result)
}

func (s *Server) handleListGenres(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	genres, err := s.source.Genres(ctx)
	if err != nil {
		return toolError(fmt.Sprintf("genre list failed: %v", err)), nil
	}
	return toolJSON(genres)
}

// Helper functions.

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}
