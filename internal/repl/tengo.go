package repl

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// tengoModules are the stdlib modules importable from submitted fragments.
// The fmt module is deliberately absent: it prints to the process stdout,
// bypassing per-call capture. Printing goes through the injected print and
// println functions instead.
var tengoModules = []string{"math", "text", "times", "rand", "json"}

// TengoExecutor is a persistent Tengo environment. Tengo compiles each
// fragment as a whole script, so there is no trailing-expression value or
// "_" binding; fragments communicate through print output and persisted
// globals. Values that cannot round-trip between scripts (functions in
// particular) persist as their string rendering.
type TengoExecutor struct {
	mu     sync.Mutex
	vars   map[string]any
	stdout strings.Builder
	count  int
	config Config
}

// NewTengoExecutor creates a Tengo executor with an empty namespace.
func NewTengoExecutor(config Config) *TengoExecutor {
	return &TengoExecutor{vars: make(map[string]any), config: config}
}

// Language returns "tengo".
func (e *TengoExecutor) Language() string { return "tengo" }

// Reset clears the persisted globals. The execution counter is unaffected.
func (e *TengoExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars = make(map[string]any)
}

// Execute compiles and runs one fragment with the persisted globals
// re-added, then harvests the script's globals back out. Harvesting also
// happens after a runtime fault so that statements which ran before the
// fault keep their effect.
func (e *TengoExecutor) Execute(code string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.count++
	if strings.TrimSpace(code) == "" {
		return composeReport(e.count, e.config.MaxOutputChars, "", "", "")
	}
	e.stdout.Reset()

	script := tengo.NewScript([]byte(code))
	script.SetImports(stdlib.GetModuleMap(tengoModules...))
	for name, value := range e.vars {
		if err := script.Add(name, toTengoValue(value)); err != nil {
			continue
		}
	}
	// After the replayed globals so the print functions always win.
	e.addBuiltins(script)

	compiled, err := script.Compile()
	if err != nil {
		return composeReport(e.count, e.config.MaxOutputChars, e.stdout.String(), "", err.Error())
	}

	runErr := compiled.Run()
	e.harvest(compiled)

	if runErr != nil {
		return composeReport(e.count, e.config.MaxOutputChars, e.stdout.String(), "", runErr.Error())
	}
	return composeReport(e.count, e.config.MaxOutputChars, e.stdout.String(), "", "")
}

// addBuiltins injects print and println, both writing a space-joined,
// newline-terminated line into the per-call output buffer.
func (e *TengoExecutor) addBuiltins(script *tengo.Script) {
	write := func(args ...tengo.Object) (tengo.Object, error) {
		for i, arg := range args {
			if i > 0 {
				e.stdout.WriteString(" ")
			}
			e.stdout.WriteString(tengoObjectString(arg))
		}
		e.stdout.WriteString("\n")
		return tengo.UndefinedValue, nil
	}
	_ = script.Add("print", &tengo.UserFunction{Name: "print", Value: write})
	_ = script.Add("println", &tengo.UserFunction{Name: "println", Value: write})
}

// harvest persists the script's globals for the next call.
func (e *TengoExecutor) harvest(compiled *tengo.Compiled) {
	for _, v := range compiled.GetAll() {
		name := v.Name()
		if name == "" || name == "print" || name == "println" {
			continue
		}
		e.vars[name] = fromTengoObject(v.Object())
	}
}

// toTengoValue maps a persisted value back into something Script.Add
// accepts.
func toTengoValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string, int, float64, bool, []any, map[string]any:
		return val
	case int64:
		return int(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// fromTengoObject maps a Tengo object to a plain Go value for persistence.
func fromTengoObject(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		arr := make([]any, len(v.Value))
		for i, item := range v.Value {
			arr[i] = fromTengoObject(item)
		}
		return arr
	case *tengo.Map:
		m := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			m[k] = fromTengoObject(item)
		}
		return m
	case *tengo.Undefined:
		return nil
	default:
		return obj.String()
	}
}

// tengoObjectString renders an object for print output: strings bare,
// everything else via its canonical rendering.
func tengoObjectString(obj tengo.Object) string {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return fmt.Sprintf("%d", v.Value)
	case *tengo.Float:
		return fmt.Sprintf("%g", v.Value)
	case *tengo.Bool:
		if v.IsFalsy() {
			return "false"
		}
		return "true"
	case *tengo.Undefined:
		return "undefined"
	default:
		return obj.String()
	}
}
