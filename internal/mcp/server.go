// Package mcp provides an MCP (Model Context Protocol) server over the
// pydex index, so AI agents can query extracted namespaces through tools
// instead of reading the JSON document tree.
package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pydexlabs/pydex/internal/store"
)

// Server wraps the MCP server around an open index store.
type Server struct {
	mcpServer *server.MCPServer
	store     *store.Store
}

// New opens the index database in indexDir and creates an MCP server
// exposing the query tools.
func New(indexDir string) (*Server, error) {
	st, err := store.Open(indexDir)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"pydex",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     st,
	}
	s.registerTools()

	return s, nil
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close releases the underlying store.
func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) registerTools() {
	lookup := mcp.NewTool("pydex_lookup",
		mcp.WithDescription("Look up a package, module, class, or function by fully-qualified dotted namespace."),
		mcp.WithString("namespace",
			mcp.Required(),
			mcp.Description("Dotted namespace, e.g. demo.util.Widget.spin"),
		),
	)
	s.mcpServer.AddTool(lookup, s.handleLookup)

	search := mcp.NewTool("pydex_search",
		mcp.WithDescription("Search indexed entities by declared name substring."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name substring to search for"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 20)"),
		),
	)
	s.mcpServer.AddTool(search, s.handleSearch)

	packages := mcp.NewTool("pydex_packages",
		mcp.WithDescription("List the top-level packages in the index."),
	)
	s.mcpServer.AddTool(packages, s.handlePackages)
}

func (s *Server) handleLookup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	namespace, ok := args["namespace"].(string)
	if !ok || namespace == "" {
		return mcp.NewToolResultError("namespace parameter is required"), nil
	}

	result, err := s.executeLookup(namespace)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	limit := 20
	if l, ok := args["limit"].(float64); ok {
		limit = int(l)
	}

	result, err := s.executeSearch(name, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handlePackages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.executePackages()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) executeLookup(namespace string) (string, error) {
	entity, err := s.store.LookupNamespace(namespace)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("namespace %q not found in index", namespace)
	}
	if err != nil {
		return "", err
	}
	return marshalJSON(entity)
}

func (s *Server) executeSearch(name string, limit int) (string, error) {
	entities, err := s.store.SearchName(name, limit)
	if err != nil {
		return "", err
	}
	if len(entities) == 0 {
		return fmt.Sprintf("no entities matching %q", name), nil
	}
	return marshalJSON(entities)
}

func (s *Server) executePackages() (string, error) {
	names, err := s.store.ListPackages()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "index is empty: run 'pydex extract --db' first", nil
	}
	return strings.Join(names, "\n"), nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
