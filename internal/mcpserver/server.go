// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Torii tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/torii/internal/apperr"
	"github.com/starford/torii/internal/query"
	"github.com/starford/torii/internal/templeservice"
)

const datasetFormatURI = "torii://dataset-format"

// Server wraps the MCP server with Torii tools.
type Server struct {
	mcp *server.MCPServer
	svc *templeservice.Service
}

// New creates a new MCP server with all Torii tools registered.
func New(svc *templeservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Torii",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_temples",
		mcp.WithDescription("Search Tokyo temples and shrines. Returns the markers, list entries and "+
			"count a map page would show for the given search text and category filter."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring of the name, Japanese name or description")),
		mcp.WithString("filter", mcp.Description("Category filter"), mcp.Enum("all", "buddhist", "shinto", "famous")),
	), s.searchTemples)

	s.mcp.AddTool(mcp.NewTool("get_temple",
		mcp.WithDescription("Read the full record of a temple: description, history, highlights, address and best time to visit."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Temple id as returned by search_temples")),
	), s.getTemple)

	s.mcp.AddTool(mcp.NewTool("list_filters",
		mcp.WithDescription("List the category filter tags accepted by search_temples."),
	), s.listFilters)

	s.mcp.AddTool(mcp.NewTool("get_dataset_contract",
		mcp.WithDescription("Returns the YAML dataset format used to define temple records."),
	), s.getDatasetContract)

	s.mcp.AddResource(
		mcp.NewResource(datasetFormatURI, "Dataset Format Contract",
			mcp.WithResourceDescription("YAML layout and validation rules for temple dataset files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDatasetFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) searchTemples(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := query.ParseFilter(req.GetString("filter", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st := query.New().WithSearch(req.GetString("query", "")).WithFilter(f)

	res := s.svc.Search(ctx, st, templeservice.SourceMCP)
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getTemple(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t, err := s.svc.Temple(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("temple not found: %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(t, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listFilters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags := make([]string, len(query.Filters))
	for i, f := range query.Filters {
		tags[i] = string(f)
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) getDatasetContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DatasetFormatContract), nil
}

func (s *Server) readDatasetFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      datasetFormatURI,
			MIMEType: "text/markdown",
			Text:     DatasetFormatContract,
		},
	}, nil
}
