package repl

import (
	"errors"
	"strings"
	"sync"

	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// resultSlot receives the value of a trailing bare expression. The dashes
// cannot appear inside a lexed identifier, so submitted code can never bind
// or reference this name.
const resultSlot = "__repl-last-expr-value__"

// inputFilename labels parse positions and tracebacks for submitted fragments.
const inputFilename = "<input>"

// PythonExecutor is a persistent environment for the Starlark dialect of
// Python. Variables, functions, and the last-value binding "_" accumulate in
// a single namespace across calls; the value of a trailing bare expression
// is displayed in the report and bound to "_".
type PythonExecutor struct {
	mu      sync.Mutex
	globals starlark.StringDict
	count   int
	config  Config
	opts    *syntax.FileOptions
}

// NewPythonExecutor creates a Python executor with freshly seeded globals.
func NewPythonExecutor(config Config) *PythonExecutor {
	return &PythonExecutor{
		globals: newPythonGlobals(),
		config:  config,
		opts: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
	}
}

// newPythonGlobals seeds the bootstrap namespace: module markers plus the
// bundled json, math, and time modules.
func newPythonGlobals() starlark.StringDict {
	return starlark.StringDict{
		"__name__":    starlark.String("__main__"),
		"__package__": starlark.None,
		"json":        starlarkjson.Module,
		"math":        starlarkmath.Module,
		"time":        starlarktime.Module,
	}
}

// Language returns "python".
func (e *PythonExecutor) Language() string { return "python" }

// Reset reseeds the global namespace. The execution counter is unaffected.
func (e *PythonExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals = newPythonGlobals()
}

// Execute runs one fragment against the persistent namespace and returns the
// report. Empty input only advances the counter. Parse faults skip execution
// entirely; runtime faults keep whatever state was mutated before the fault.
func (e *PythonExecutor) Execute(code string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.count++
	if strings.TrimSpace(code) == "" {
		return composeReport(e.count, e.config.MaxOutputChars, "", "", "")
	}

	var stdout strings.Builder
	thread := &starlark.Thread{
		Name: "repl",
		Print: func(_ *starlark.Thread, msg string) {
			stdout.WriteString(msg)
			stdout.WriteByte('\n')
		},
	}

	f, err := e.opts.Parse(inputFilename, code, 0)
	if err != nil {
		return composeReport(e.count, e.config.MaxOutputChars, stdout.String(), "", renderStarlarkFault(err))
	}
	expectResult := rewriteTrailingExpr(f)

	err = starlark.ExecREPLChunk(f, thread, e.globals)

	// Harvest the slot before deciding success or failure: a fault in an
	// earlier statement leaves the slot unbound, in which case "_" keeps its
	// previous value.
	var value string
	if expectResult {
		if result, ok := e.globals[resultSlot]; ok {
			delete(e.globals, resultSlot)
			e.globals["_"] = result
			if result != starlark.None {
				value = result.String()
			}
		}
	}

	if err != nil {
		return composeReport(e.count, e.config.MaxOutputChars, stdout.String(), value, renderStarlarkFault(err))
	}
	return composeReport(e.count, e.config.MaxOutputChars, stdout.String(), value, "")
}

// rewriteTrailingExpr replaces a trailing bare-expression statement with an
// assignment to the reserved result slot, leaving every other statement
// untouched. It reports whether a rewrite happened.
func rewriteTrailingExpr(f *syntax.File) bool {
	if len(f.Stmts) == 0 {
		return false
	}
	last, ok := f.Stmts[len(f.Stmts)-1].(*syntax.ExprStmt)
	if !ok {
		return false
	}
	f.Stmts[len(f.Stmts)-1] = &syntax.AssignStmt{
		Op:  syntax.EQ,
		LHS: &syntax.Ident{Name: resultSlot},
		RHS: last.X,
	}
	return true
}

// renderStarlarkFault formats a parse, resolve, or evaluation fault as
// report text. Evaluation faults carry the full backtrace.
func renderStarlarkFault(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Backtrace()
	}
	return err.Error()
}
