// Package repl implements persistent, REPL-like code execution environments.
//
// An environment owns a mutable namespace that survives across calls. Each
// call submits one source fragment; the environment runs it against the
// accumulated state and returns a textual report labeled with a
// monotonically increasing execution counter. Parse and runtime faults are
// rendered into the report rather than returned, so a caller always receives
// a report and never an error.
package repl

import "fmt"

// Executor is a persistent execution environment for one scripting language.
//
// Implementations serialize calls internally: at most one Execute runs
// against an environment at a time, and output captured during one call
// never appears in another call's report. There is no timeout or
// cancellation: a fragment that blocks forever hangs its environment.
type Executor interface {
	// Execute runs one source fragment against the persistent namespace and
	// returns the execution report.
	Execute(code string) string

	// Language returns the language identifier ("python", "javascript",
	// "tengo").
	Language() string

	// Reset restores the namespace to its bootstrap state. The execution
	// counter keeps increasing across resets.
	Reset()
}

// Config holds the tunable knobs shared by all executors.
type Config struct {
	// MaxOutputChars caps the report body (everything below the counter
	// label). 0 disables truncation.
	MaxOutputChars int
}

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return Config{
		MaxOutputChars: 10000,
	}
}

// NewExecutor returns a fresh executor for the named language.
func NewExecutor(language string, config Config) (Executor, error) {
	switch language {
	case "python":
		return NewPythonExecutor(config), nil
	case "javascript", "js":
		return NewJSExecutor(config), nil
	case "tengo":
		return NewTengoExecutor(config), nil
	default:
		return nil, fmt.Errorf("unknown language %q (supported: python, javascript, tengo)", language)
	}
}
