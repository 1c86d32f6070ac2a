package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	mcpClientName    = "emotionmcp-demo"
	mcpClientVersion = "1.0.0"
)

// MCPClient calls tools on a running emotion-analysis server over SSE.
type MCPClient struct {
	c *client.Client
}

func NewMCPClient(ctx context.Context, serverURL string) (*MCPClient, error) {
	c, err := client.NewSSEMCPClient(serverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", serverURL, err)
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: mcpClientName, Version: mcpClientVersion}

	result, err := c.Initialize(ctx, req)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	slog.Info("[MCPClient] Connected",
		slog.String("server", result.ServerInfo.Name),
		slog.String("version", result.ServerInfo.Version))

	return &MCPClient{c: c}, nil
}

// CallTool invokes name and returns the text of its result.
func (m *MCPClient) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := m.c.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tool %s failed: %w", name, err)
	}

	var parts []string
	for _, content := range res.Content {
		if text, ok := content.(mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	out := strings.Join(parts, "\n")

	if res.IsError {
		return "", errors.New(out)
	}
	return out, nil
}

func (m *MCPClient) Close() error {
	return m.c.Close()
}
