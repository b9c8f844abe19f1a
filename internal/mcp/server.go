// Package mcp exposes the instance lifecycle over the Model Context
// Protocol so AI agents can inspect and manage the local SDK cache.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kobaltcore/renutil/internal/core/instance"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// Server implements the MCP server over the lifecycle manager.
type Server struct {
	mcpServer *server.MCPServer
	manager   *instance.Manager
}

// NewServer creates a new MCP server.
func NewServer(manager *instance.Manager, buildVersion string) *Server {
	mcpServer := server.NewMCPServer(
		"renutil",
		buildVersion,
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		manager:   manager,
	}
	s.registerTools()
	return s
}

// registerTools registers all renutil tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("renutil_list_installed",
		mcp.WithDescription("List installed Ren'Py versions, most recent first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of versions to return (0 for all)"),
		),
	), s.handleListInstalled)

	s.mcpServer.AddTool(mcp.NewTool("renutil_list_available",
		mcp.WithDescription("List Ren'Py versions available for download, most recent first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of versions to return (0 for all)"),
		),
	), s.handleListAvailable)

	s.mcpServer.AddTool(mcp.NewTool("renutil_install",
		mcp.WithDescription("Download and install a Ren'Py version into the local cache"),
		mcp.WithString("version",
			mcp.Description("The version to install, e.g. 7.4.11"),
			mcp.Required(),
		),
	), s.handleInstall)

	s.mcpServer.AddTool(mcp.NewTool("renutil_uninstall",
		mcp.WithDescription("Remove an installed Ren'Py version from the local cache"),
		mcp.WithString("version",
			mcp.Description("The version to uninstall, e.g. 7.4.11"),
			mcp.Required(),
		),
	), s.handleUninstall)
}

// Start serves MCP over stdio until the context is canceled or input is
// exhausted.
func (s *Server) Start(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

func (s *Server) handleListInstalled(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	versions, err := s.manager.List(ctx, limitArg(request))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.String())
	}
	return jsonResult(out)
}

func (s *Server) handleListAvailable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	releases, err := s.manager.Available(ctx, limitArg(request))
	if err != nil {
		return nil, err
	}

	type entry struct {
		Version string `json:"version"`
		URL     string `json:"url"`
	}
	out := make([]entry, 0, len(releases))
	for _, r := range releases {
		out = append(out, entry{Version: r.Version.String(), URL: r.URL})
	}
	return jsonResult(out)
}

func (s *Server) handleInstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := versionArg(request)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Install(ctx, v); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("installed %s", v))
}

func (s *Server) handleUninstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := versionArg(request)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Uninstall(ctx, v); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("uninstalled %s", v))
}

func versionArg(request mcp.CallToolRequest) (version.Version, error) {
	args := request.GetArguments()
	raw, ok := args["version"].(string)
	if !ok || raw == "" {
		return version.Version{}, fmt.Errorf("version is required")
	}
	return version.Parse(raw)
}

func limitArg(request mcp.CallToolRequest) int {
	args := request.GetArguments()
	if raw, ok := args["limit"].(float64); ok {
		return int(raw)
	}
	return 0
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return textResult(string(data))
}

func textResult(text string) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}, nil
}
