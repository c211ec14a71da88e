package repl

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestPythonExecutor_SessionExample(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())

	steps := []struct {
		code string
		want string
	}{
		{"x = 5", "[Execution #1]"},
		{"x + 1", "[Execution #2]\n6"},
		{"", "[Execution #3]"},
		{"_", "[Execution #4]\n6"},
	}
	for _, step := range steps {
		if got := env.Execute(step.code); got != step.want {
			t.Errorf("Execute(%q) = %q, want %q", step.code, got, step.want)
		}
	}
}

func TestPythonExecutor_CounterCountsEmptyCalls(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	inputs := []string{"", "   ", "\n\t\n", ""}
	for i, code := range inputs {
		want := fmt.Sprintf("[Execution #%d]", i+1)
		if got := env.Execute(code); got != want {
			t.Errorf("call %d: Execute(%q) = %q, want %q", i+1, code, got, want)
		}
	}
}

func TestPythonExecutor_CounterSurvivesReset(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	env.Execute("x = 1")
	env.Execute("x")
	env.Reset()
	if got := env.Execute(""); got != "[Execution #3]" {
		t.Errorf("counter after reset = %q, want %q", got, "[Execution #3]")
	}
}

func TestPythonExecutor_ResetClearsBindings(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	env.Execute("x = 1")
	env.Reset()
	got := env.Execute("x")
	if !strings.Contains(got, "undefined: x") {
		t.Errorf("x still resolvable after reset: %q", got)
	}
}

func TestPythonExecutor_PrintCapture(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	got := env.Execute("print(\"hello\")\nprint(\"world\")")
	want := "[Execution #1]\nhello\nworld"
	if got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
}

func TestPythonExecutor_TrailingStatementKinds(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"assignment has no value line", "y = 2", "[Execution #1]"},
		{"definition has no value line", "def f():\n    return 3", "[Execution #1]"},
		{"loop has no value line", "total = 0\nfor i in range(4):\n    total += i", "[Execution #1]"},
		{"bare expression displays", "1 + 2", "[Execution #1]\n3"},
		{"internal expressions ignored", "a = len(\"abc\")\nb = a * 2", "[Execution #1]"},
		{"string repr is quoted", "\"hi\"", "[Execution #1]\n\"hi\""},
		{"false still displays", "False", "[Execution #1]\nFalse"},
		{"zero still displays", "0", "[Execution #1]\n0"},
		{"none is hidden", "None", "[Execution #1]"},
		{"print plus expression", "print(\"side\")\n40 + 2", "[Execution #1]\nside\n42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewPythonExecutor(DefaultConfig())
			if got := env.Execute(tt.code); got != tt.want {
				t.Errorf("Execute(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestPythonExecutor_BindingsPersistAcrossCalls(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	env.Execute("def double(n):\n    return n * 2")
	env.Execute("base = 21")
	got := env.Execute("double(base)")
	want := "[Execution #3]\n42"
	if got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
}

func TestPythonExecutor_RebindingWins(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	env.Execute("x = 1")
	env.Execute("x = 2")
	got := env.Execute("x")
	want := "[Execution #3]\n2"
	if got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
}

func TestPythonExecutor_SyntaxErrorSkipsExecution(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	env.Execute("a = 1")

	got := env.Execute("a = 2 +")
	if !strings.Contains(got, "[Execution #2]") {
		t.Errorf("report missing counter label: %q", got)
	}
	if !strings.Contains(got, inputFilename+":1") {
		t.Errorf("report missing parse position: %q", got)
	}

	// The failed fragment must not have mutated anything.
	got = env.Execute("a")
	want := "[Execution #3]\n1"
	if got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
}

func TestPythonExecutor_RuntimeFaultKeepsPartialState(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())

	got := env.Execute("a = 1\nb = 1 // 0")
	if !strings.Contains(got, "Traceback (most recent call last)") {
		t.Errorf("report missing traceback: %q", got)
	}
	if !strings.Contains(got, "division by zero") {
		t.Errorf("report missing fault text: %q", got)
	}

	// a was bound before the fault; b never was.
	got = env.Execute("a")
	if want := "[Execution #2]\n1"; got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
	got = env.Execute("b")
	if !strings.Contains(got, "undefined: b") {
		t.Errorf("b unexpectedly bound: %q", got)
	}
}

func TestPythonExecutor_UnderscoreSemantics(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())

	steps := []struct {
		code string
		want string
	}{
		{"3 * 3", "[Execution #1]\n9"},
		// A non-expression trailing statement leaves _ alone.
		{"q = 10", "[Execution #2]"},
		{"_", "[Execution #3]\n9"},
		// None updates _ but displays nothing.
		{"None", "[Execution #4]"},
		{"_", "[Execution #5]"},
	}
	for _, step := range steps {
		if got := env.Execute(step.code); got != step.want {
			t.Errorf("Execute(%q) = %q, want %q", step.code, got, step.want)
		}
	}
}

func TestPythonExecutor_ResultSlotInvisible(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())
	env.Execute("1 + 1")
	// Only _ joins the namespace; the capture slot is removed after each call.
	if _, ok := env.globals[resultSlot]; ok {
		t.Errorf("capture slot leaked into globals")
	}
	if _, ok := env.globals["_"]; !ok {
		t.Errorf("last-value binding missing from globals")
	}
}

func TestPythonExecutor_SeededGlobals(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())

	got := env.Execute("__name__")
	if want := "[Execution #1]\n\"__main__\""; got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
	got = env.Execute("math.sqrt(16)")
	if want := "[Execution #2]\n4.0"; got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
	got = env.Execute("json.encode({\"a\": 1})")
	if want := "[Execution #3]\n\"{\\\"a\\\":1}\""; got != want {
		t.Errorf("Execute = %q, want %q", got, want)
	}
}

func TestPythonExecutor_ConcurrentOutputIsolation(t *testing.T) {
	env := NewPythonExecutor(DefaultConfig())

	const calls = 8
	reports := make([]string, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = env.Execute(fmt.Sprintf("print(\"marker-%d\")", i))
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, report := range reports {
		lines := strings.Split(report, "\n")
		if len(lines) != 2 {
			t.Fatalf("call %d: report has %d lines, want 2: %q", i, len(lines), report)
		}
		want := fmt.Sprintf("marker-%d", i)
		if lines[1] != want {
			t.Errorf("call %d captured %q, want %q", i, lines[1], want)
		}
		if seen[lines[0]] {
			t.Errorf("duplicate counter label %q", lines[0])
		}
		seen[lines[0]] = true
	}
}

func TestPythonExecutor_Truncation(t *testing.T) {
	env := NewPythonExecutor(Config{MaxOutputChars: 16})
	got := env.Execute("print(\"a\" * 100)")
	if !strings.HasSuffix(got, truncationNotice) {
		t.Errorf("long output not truncated: %q", got)
	}
	if len(got) > len("[Execution #1]\n")+16+len(truncationNotice) {
		t.Errorf("truncated report still too long: %d chars", len(got))
	}
}
