package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/tracentm/internal/testutils"
	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loader, err := memory.NewFromDefinitions(testutils.APlusDefinition(), testutils.ForkDefinition())
	require.NoError(t, err)
	return NewServer(service.New(loader))
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.mcpServer.GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestRegisteredTools(t *testing.T) {
	s := newTestServer(t)
	tools := s.mcpServer.ListTools()
	assert.Contains(t, tools, "simulate")
	assert.Contains(t, tools, "list_machines")
	assert.Contains(t, tools, "get_machine")
}

func TestSimulateTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "simulate", map[string]any{"machine": "a-plus", "input": "aaaaa", "max_depth": 10})
	require.False(t, res.IsError)

	out, ok := res.StructuredContent.(SimulateResponse)
	require.True(t, ok, "unexpected structured content %T", res.StructuredContent)
	assert.Equal(t, "String accepted in 6 steps.", out.Summary)
	assert.Equal(t, domain.VerdictAccept, out.Report.Verdict)
	assert.Len(t, out.Report.Path, 7)
}

func TestSimulateTool_DefaultDepth(t *testing.T) {
	s := newTestServer(t)

	out, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"machine": "a-plus",
		"input":   "aaaaaaaaaaaaaaaaaaaa",
	})
	require.NoError(t, err)
	assert.Equal(t, "Execution stopped after 10 steps.", out.Summary)
}

func TestSimulateTool_ConfiguredDefaultDepth(t *testing.T) {
	loader, err := memory.NewFromDefinitions(testutils.APlusDefinition())
	require.NoError(t, err)
	s := NewServer(service.New(loader), WithDefaultDepth(3))

	out, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"machine": "a-plus",
		"input":   "aaaaa",
	})
	require.NoError(t, err)
	assert.Equal(t, "Execution stopped after 3 steps.", out.Summary)
}

func TestSimulateTool_Errors(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "simulate", map[string]any{"machine": "missing", "input": "a"})
	assert.True(t, res.IsError)

	_, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"input": "a"})
	assert.Error(t, err)
}

func TestListMachinesTool(t *testing.T) {
	s := newTestServer(t)

	out, err := s.handleListMachines(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-plus", "fork"}, out.Machines)
}

func TestGetMachineTool(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "get_machine", map[string]any{"machine": "fork"})
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var def domain.Definition
	require.NoError(t, json.Unmarshal([]byte(text.Text), &def))
	assert.Equal(t, "fork", def.Name)
	assert.Equal(t, "qrej", def.Reject)

	res = callTool(t, s, "get_machine", map[string]any{"machine": "nope"})
	assert.True(t, res.IsError)
}
