package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// JSExecutor is a persistent JavaScript environment on a single goja
// runtime. Top-level bindings accumulate across calls; the completion value
// of each fragment is displayed when defined and non-null, and bound to "_".
type JSExecutor struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	stdout strings.Builder
	count  int
	config Config
}

// NewJSExecutor creates a JavaScript executor with print and console.log
// wired into the per-call output buffer.
func NewJSExecutor(config Config) *JSExecutor {
	e := &JSExecutor{vm: goja.New(), config: config}
	e.install()
	return e
}

// install wires print and console.log into the executor's output buffer.
// Called on construction and again by Reset on the fresh runtime.
func (e *JSExecutor) install() {
	printFunc := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}
		e.stdout.WriteString(strings.Join(args, " "))
		e.stdout.WriteByte('\n')
		return goja.Undefined()
	}
	_ = e.vm.Set("print", printFunc)

	console := e.vm.NewObject()
	_ = console.Set("log", printFunc)
	_ = e.vm.Set("console", console)
}

// Language returns "javascript".
func (e *JSExecutor) Language() string { return "javascript" }

// Reset replaces the runtime with a fresh one. The execution counter is
// unaffected.
func (e *JSExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm = goja.New()
	e.stdout.Reset()
	e.install()
}

// Execute runs one fragment on the persistent runtime and returns the
// report. Syntax errors and thrown exceptions are rendered into the report;
// an exception keeps whatever bindings were established before it was
// thrown.
func (e *JSExecutor) Execute(code string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.count++
	if strings.TrimSpace(code) == "" {
		return composeReport(e.count, e.config.MaxOutputChars, "", "", "")
	}
	e.stdout.Reset()

	val, err := e.vm.RunString(code)
	if err != nil {
		return composeReport(e.count, e.config.MaxOutputChars, e.stdout.String(), "", renderJSFault(err))
	}

	var value string
	if val != nil && !goja.IsUndefined(val) && !goja.IsNull(val) {
		value = formatJSValue(val)
		_ = e.vm.Set("_", val)
	}
	return composeReport(e.count, e.config.MaxOutputChars, e.stdout.String(), value, "")
}

// renderJSFault formats a fault as report text. Thrown exceptions include
// the engine's stack rendering.
func renderJSFault(err error) string {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return ex.String()
	}
	return err.Error()
}

// formatJSValue renders a completion value for display: strings are quoted,
// arrays rendered element-wise, plain objects as compact JSON, everything
// else via the engine's string conversion.
func formatJSValue(val goja.Value) string {
	switch v := val.Export().(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprintf("%v", item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	default:
		return val.String()
	}
}
