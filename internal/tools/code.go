package tools

import (
	"context"

	"github.com/water-vapor/gpt-oss/internal/harmony"
	"github.com/water-vapor/gpt-oss/internal/repl"
)

// noCodeDiagnostic is returned without invoking the executor when a request
// carries no code text at all. Whitespace-only code still executes (and
// reports an empty-bodied label).
const noCodeDiagnostic = "Error: No code provided"

const pythonInstruction = `Execute Python code with persistent state. IMPORTANT: This Python environment maintains state across calls within this conversation.
- Variables, functions, and loaded definitions persist between executions
- Expression results are automatically displayed (REPL behavior)
- The last expression value is available as _ (underscore)
- You can reference variables from previous executions
- The environment resets when the conversation ends`

const javascriptInstruction = `Execute JavaScript code with persistent state. IMPORTANT: This JavaScript environment maintains state across calls within this conversation.
- Top-level variables and functions persist between executions
- The completion value of each fragment is automatically displayed when defined and non-null
- The last displayed value is available as _ (underscore)
- Use print(...) or console.log(...) for output
- The environment resets when the conversation ends`

const tengoInstruction = `Execute Tengo code with persistent state. IMPORTANT: This Tengo environment maintains state across calls within this conversation.
- Variables persist between executions (functions do not survive across calls)
- Use print(...) for output; expression results are not displayed automatically
- Standard modules are available via import: math, text, times, rand, json
- The environment resets when the conversation ends`

// CodeTool adapts a persistent execution environment into a conversation
// tool.
type CodeTool struct {
	name        string
	description string
	instruction string
	env         repl.Executor
}

// NewCodeTool wraps an executor as a conversation tool.
func NewCodeTool(name, description, instruction string, env repl.Executor) *CodeTool {
	return &CodeTool{
		name:        name,
		description: description,
		instruction: instruction,
		env:         env,
	}
}

// NewPythonTool returns the canonical "python" tool on a fresh environment.
func NewPythonTool() *CodeTool {
	return NewCodeTool(
		"python",
		"Execute Python code with persistent state across calls",
		pythonInstruction,
		repl.NewPythonExecutor(repl.DefaultConfig()),
	)
}

// NewJavaScriptTool returns the canonical "javascript" tool on a fresh
// environment.
func NewJavaScriptTool() *CodeTool {
	return NewCodeTool(
		"javascript",
		"Execute JavaScript code with persistent state across calls",
		javascriptInstruction,
		repl.NewJSExecutor(repl.DefaultConfig()),
	)
}

// NewTengoTool returns the canonical "tengo" tool on a fresh environment.
func NewTengoTool() *CodeTool {
	return NewCodeTool(
		"tengo",
		"Execute Tengo code with persistent state across calls",
		tengoInstruction,
		repl.NewTengoExecutor(repl.DefaultConfig()),
	)
}

// Name returns the tool identifier.
func (t *CodeTool) Name() string { return t.name }

// Instruction returns the prose shown to the calling agent.
func (t *CodeTool) Instruction() string { return t.instruction }

// Config returns the registration metadata. The sub-tool list is always
// empty for code execution tools.
func (t *CodeTool) Config() NamespaceConfig {
	return NamespaceConfig{
		Name:        t.name,
		Description: t.description,
		Tools:       []ToolDescription{},
	}
}

// Process runs the request's code against the persistent environment. The
// response is authored by the tool, addressed to the assistant, and echoes
// the request's channel when one was set. Execution faults never surface as
// errors here: the report text carries them.
func (t *CodeTool) Process(_ context.Context, msg harmony.Message) ([]harmony.Message, error) {
	code := msg.Text()
	output := noCodeDiagnostic
	if code != "" {
		output = t.env.Execute(code)
	}

	reply := harmony.NewMessage(harmony.Author{Role: harmony.RoleTool, Name: t.name}, output).
		WithRecipient("assistant")
	if msg.Channel != "" {
		reply = reply.WithChannel(msg.Channel)
	}
	return []harmony.Message{reply}, nil
}
