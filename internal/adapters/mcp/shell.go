// Package mcp exposes the shell over the Model Context Protocol so MCP
// clients can browse and mutate the library with the same commands the
// interactive session uses.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"libris/internal/domain"
	"libris/internal/shell"
)

// RegisterShellTools adds the shell-backed tools to the MCP server. The
// environment is shared across calls, matching the single-session model
// of the interactive shell.
func RegisterShellTools(s *server.MCPServer, env *shell.Env, registry *shell.Registry) {
	s.AddTool(execTool(), execHandler(env, registry))
	s.AddTool(listTagsTool(), listTagsHandler(env))
	s.AddTool(readTool(), readHandler(env))
}

// --- exec ---

func execTool() mcp.Tool {
	return mcp.NewTool("exec",
		mcp.WithDescription("Run one shell line against the library VFS, pipes included (e.g. 'ls /tags | sort | head -n 5')."),
		mcp.WithString("line",
			mcp.Description("The command line to execute"),
			mcp.Required(),
		),
	)
}

func execHandler(env *shell.Env, registry *shell.Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		line := req.GetString("line", "")
		if strings.TrimSpace(line) == "" {
			return toolError(fmt.Errorf("line is required"))
		}
		output, err := registry.Run(ctx, env, line)
		if err != nil {
			return toolError(err)
		}
		if output == nil || *output == "" {
			return mcp.NewToolResultText("(no output)"), nil
		}
		return mcp.NewToolResultText(*output), nil
	}
}

// --- list-tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list-tags",
		mcp.WithDescription("List the tag hierarchy. Without a path lists root tags; with one lists its children."),
		mcp.WithString("path",
			mcp.Description("Tag path to list children of (e.g. Work/Project). Omit for root tags."),
		),
	)
}

func listTagsHandler(env *shell.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		tags, err := listTags(ctx, env, path)
		if err != nil {
			return toolError(err)
		}
		if len(tags) == 0 {
			return mcp.NewToolResultText("No tags."), nil
		}
		var sb strings.Builder
		for _, line := range tags {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func listTags(ctx context.Context, env *shell.Env, path string) ([]string, error) {
	var (
		tags []domain.Tag
		err  error
	)
	if path == "" {
		tags, err = env.Lib.RootTags(ctx)
	} else {
		tags, err = env.Lib.ChildTags(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(tags))
	for _, t := range tags {
		lines = append(lines, t.Path)
	}
	return lines, nil
}

// --- read ---

func readTool() mcp.Tool {
	return mcp.NewTool("read",
		mcp.WithDescription("Read a file node from the VFS (a book entry, or a tag's description/color/stats)."),
		mcp.WithString("path",
			mcp.Description("Absolute VFS path, e.g. /books/42 or /tags/Work/stats"),
			mcp.Required(),
		),
	)
}

func readHandler(env *shell.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}
		content, err := env.Tree.ReadFile(ctx, path, nil)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(content), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// AutoConfirmer approves every confirmation; MCP calls are
// non-interactive, so destructive intent is expressed by the arguments.
type AutoConfirmer struct{}

// Confirm always answers yes
func (AutoConfirmer) Confirm(string) bool { return true }

// NopPager discards paged output; an MCP client has no console to page
// on, and the exec tool returns text directly.
type NopPager struct{}

// Page does nothing
func (NopPager) Page(string) error { return nil }
