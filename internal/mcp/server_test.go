package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/semtree/internal/mcp"
)

func connect(t *testing.T) (context.Context, *mcpsdk.ClientSession) {
	t.Helper()

	srv, err := mcp.NewServer(mcp.ServerDeps{})
	require.NoError(t, err)

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return ctx, session
}

func text(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)

	tc, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return tc.Text
}

func TestNewServer_ToolsRegistered(t *testing.T) {
	t.Parallel()

	srv, err := mcp.NewServer(mcp.ServerDeps{})
	require.NoError(t, err)

	assert.Equal(t, []string{"semtree_parse", "semtree_query"}, srv.ListToolNames())
}

func TestServer_Run_CancelledContext(t *testing.T) {
	t.Parallel()

	srv, err := mcp.NewServer(mcp.ServerDeps{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, srv.Run(ctx))
}

func TestInMemory_ToolsList(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t)

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}

	assert.ElementsMatch(t, []string{"semtree_parse", "semtree_query"}, names)
}

func TestInMemory_Parse(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: "semtree_parse",
		Arguments: map[string]any{
			"content":  "class A { void F() {} }",
			"language": "C#",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, text(t, result))

	assert.Contains(t, text(t, result), "<method>")
}

func TestInMemory_QueryPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: x\nport: 80\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("port: 81\n"), 0o600))

	ctx, session := connect(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "semtree_query",
		Arguments: map[string]any{"xpath": "//data/port", "paths": []string{dir}},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, text(t, result))

	out := text(t, result)
	assert.Contains(t, out, `"files": 2`)
	assert.Contains(t, out, `"value": "80"`)
	assert.Contains(t, out, `"value": "81"`)
}

func TestInMemory_InvalidInput(t *testing.T) {
	t.Parallel()

	ctx, session := connect(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "semtree_query",
		Arguments: map[string]any{"xpath": "//[", "content": "x = 1", "language": "toml"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "invalid xpath expression")
}
