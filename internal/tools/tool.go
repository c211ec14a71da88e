// Package tools exposes persistent execution environments as conversation
// tools: named units that consume a request envelope and emit response
// envelopes, plus the registration metadata the surrounding runtime needs to
// advertise them.
package tools

import (
	"context"
	"fmt"

	"github.com/water-vapor/gpt-oss/internal/harmony"
)

// Tool is one callable unit in a conversation.
type Tool interface {
	// Name is the stable identifier the runtime routes requests by.
	Name() string

	// Instruction is the prose shown to the calling agent.
	Instruction() string

	// Config returns the registration metadata for this tool.
	Config() NamespaceConfig

	// Process consumes one request envelope and returns the response
	// envelopes. The code execution tools always return exactly one.
	Process(ctx context.Context, msg harmony.Message) ([]harmony.Message, error)
}

// NamespaceConfig is the registration metadata a conversation runtime needs
// to advertise a tool.
type NamespaceConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Tools       []ToolDescription `json:"tools"`
}

// ToolDescription describes one sub-tool of a namespace. The code execution
// tools expose no sub-tools.
type ToolDescription struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// New returns the canonical tool for the named language.
func New(language string) (Tool, error) {
	switch language {
	case "python":
		return NewPythonTool(), nil
	case "javascript", "js":
		return NewJavaScriptTool(), nil
	case "tengo":
		return NewTengoTool(), nil
	default:
		return nil, fmt.Errorf("unknown language %q (supported: python, javascript, tengo)", language)
	}
}
