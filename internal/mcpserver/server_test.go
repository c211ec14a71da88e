package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/water-vapor/gpt-oss/internal/tools"
)

func callText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("got %d content parts, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content part is %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandler_ExecutesAndReports(t *testing.T) {
	h := handler(tools.NewPythonTool())

	result, _, err := h(context.Background(), nil, codeArgs{Code: "6 * 7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := callText(t, result); got != "[Execution #1]\n42" {
		t.Errorf("result text = %q, want %q", got, "[Execution #1]\n42")
	}
}

func TestHandler_StatePersistsAcrossCalls(t *testing.T) {
	h := handler(tools.NewPythonTool())

	if _, _, err := h(context.Background(), nil, codeArgs{Code: "x = 5"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, _, err := h(context.Background(), nil, codeArgs{Code: "x + 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := callText(t, result); got != "[Execution #2]\n6" {
		t.Errorf("result text = %q, want %q", got, "[Execution #2]\n6")
	}
}

func TestHandler_NoCode(t *testing.T) {
	h := handler(tools.NewPythonTool())

	result, _, err := h(context.Background(), nil, codeArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := callText(t, result); got != "Error: No code provided" {
		t.Errorf("result text = %q, want the no-code diagnostic", got)
	}
}

func TestHandler_FaultsStayInReport(t *testing.T) {
	h := handler(tools.NewPythonTool())

	result, _, err := h(context.Background(), nil, codeArgs{Code: "1 // 0"})
	if err != nil {
		t.Fatalf("fault leaked as error: %v", err)
	}
	got := callText(t, result)
	if !strings.Contains(got, "division by zero") {
		t.Errorf("result text = %q, want the fault diagnostic inside the report", got)
	}
}

func TestNew_BuildsServerForRegistry(t *testing.T) {
	server := New(tools.DefaultRegistry(), "test")
	if server == nil {
		t.Fatalf("nil server")
	}
}
