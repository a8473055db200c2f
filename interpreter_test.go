package simpscript

import (
	"errors"
	"strings"
	"testing"
)

// fakeIO is a test double for LineInput/LineOutput (§1's host collaborators).
type fakeIO struct {
	lines []string
	out   strings.Builder
}

func (f *fakeIO) ReadLine() (string, error) {
	if len(f.lines) == 0 {
		return "", errors.New("no more input")
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeIO) Write(s string) { f.out.WriteString(s) }

func run(t *testing.T, src string) (Value, string) {
	t.Helper()
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	v, err := ip.Run(src)
	if err != nil {
		t.Fatalf("unexpected error running %q: %v", src, err)
	}
	return v, io.out.String()
}

func Test_Interpreter_ArithmeticAndShow(t *testing.T) {
	_, out := run(t, `show 1 + 2 * 3`)
	if out != "7" {
		t.Fatalf("expected %q, got %q", "7", out)
	}
}

func Test_Interpreter_ShownlAddsNewline(t *testing.T) {
	_, out := run(t, `shownl "done"`)
	if out != "done\n" {
		t.Fatalf("expected trailing newline, got %q", out)
	}
}

func Test_Interpreter_AssignmentCreatesThenUpdates(t *testing.T) {
	_, out := run(t, "x = 1\nx = x + 1\nshow x")
	if out != "2" {
		t.Fatalf("expected 2, got %q", out)
	}
}

func Test_Interpreter_IfElse(t *testing.T) {
	_, out := run(t, `
if 1 greater than 2
    show "no"
else
    show "yes"
endif
`)
	if out != "yes" {
		t.Fatalf("expected yes, got %q", out)
	}
}

func Test_Interpreter_WhileLoop(t *testing.T) {
	_, out := run(t, `
i = 0
while i less than 3
    show i
    i = i + 1
endwhile
`)
	if out != "012" {
		t.Fatalf("expected 012, got %q", out)
	}
}

func Test_Interpreter_ForLoopScopeDoesNotLeak(t *testing.T) {
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run("for i = 0; i less than 3; i = i + 1 show i endfor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, getErr := ip.Globals.Get("i"); getErr == nil {
		t.Fatalf("for-loop variable i must not leak into the global environment")
	}
}

func Test_Interpreter_FunctionCallAndReturn(t *testing.T) {
	_, out := run(t, `
function add(a, b)
    return a + b
endfunction
show add(2, 3)
`)
	if out != "5" {
		t.Fatalf("expected 5, got %q", out)
	}
}

func Test_Interpreter_ClosureCapturesDefiningEnvironment(t *testing.T) {
	_, out := run(t, `
function makeAdder(n)
    function adder(x)
        return x + n
    endfunction
    return adder
endfunction
add5 = makeAdder(5)
show add5(10)
`)
	if out != "15" {
		t.Fatalf("expected 15, got %q", out)
	}
}

func Test_Interpreter_RepeatedCallsToReturnedClosureShareMutableState(t *testing.T) {
	// spec.md §8 scenario 5 verbatim: make() returns inc, and calling the
	// same returned handle repeatedly must observe n incrementing 1, 2, 3,
	// not reset each call. This stresses §9 Open Question 4's fix directly:
	// the closure frame must be a real, persistent, shared environment.
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`
function make()
    n = 0
    function inc()
        n = n + 1
        return n
    endfunction
    return inc
endfunction
counter = make()
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counterVal, getErr := ip.Globals.Get("counter")
	if getErr != nil {
		t.Fatalf("unexpected error fetching counter: %v", getErr)
	}

	for i, want := range []int64{1, 2, 3} {
		v, callErr := ip.call(counterVal.AsFunction(), nil, "counter")
		if callErr != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, callErr)
		}
		if v.Tag != IntValue || v.AsInt() != want {
			t.Fatalf("call %d: expected %d, got %+v", i+1, want, v)
		}
	}
}

func Test_Interpreter_ArrayMutationIsVisibleViaOtherBinding(t *testing.T) {
	_, out := run(t, `
a = [1, 2, 3]
b = a
b[0] = 99
show a[0]
`)
	if out != "99" {
		t.Fatalf("expected arrays to be shared by reference, got %q", out)
	}
}

func Test_Interpreter_AndOr_AreNotShortCircuiting(t *testing.T) {
	// Both sides of AND/OR must evaluate even when the result is already
	// determined (§9 Open Question 2): a side effect on the right must be
	// observable even though the left alone decides the OR's truth value.
	_, out := run(t, `
counter = 0
function bump()
    counter = counter + 1
    return 1 equals 1
endfunction
result = (1 equals 1) or bump()
show counter
`)
	if out != "1" {
		t.Fatalf("expected the right-hand side of OR to evaluate regardless, got %q", out)
	}
}

func Test_Interpreter_UndefinedVariable_IsRuntimeError(t *testing.T) {
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`show neverDefined`)
	if err == nil {
		t.Fatalf("expected an error for an undefined variable")
	}
	if !strings.Contains(err.Error(), "RUNTIME ERROR") {
		t.Fatalf("expected a formatted runtime error, got: %v", err)
	}
}

func Test_Interpreter_DivisionByZero_IsRuntimeError(t *testing.T) {
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`show 1 / 0`)
	if err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
}

func Test_Interpreter_ArityMismatch_IsRuntimeError(t *testing.T) {
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`
function one(a)
    return a
endfunction
show one(1, 2)
`)
	if err == nil {
		t.Fatalf("expected an arity error")
	}
}

func Test_Interpreter_RuntimeErrorFromNestedCall_KeepsInnermostPosition(t *testing.T) {
	// A fault raised inside a function called from another function must
	// not be re-stamped with the outer call site's position at each
	// intervening frame: runtimeFault re-panics unchanged through ip.call
	// until the single top-level recover in Run.
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`
function inner()
    show neverDefined
endfunction
function outer()
    show inner()
endfunction
show outer()
`)
	if err == nil {
		t.Fatalf("expected an error for an undefined variable raised inside a nested call")
	}
	msg := err.Error()
	if strings.Count(msg, "RUNTIME ERROR") != 1 {
		t.Fatalf("expected exactly one RUNTIME ERROR header, got: %q", msg)
	}
	if !strings.Contains(msg, "3:") {
		t.Fatalf("expected the error positioned at inner()'s line (3), got: %q", msg)
	}
}

func Test_Interpreter_AskReadsFromLineInput(t *testing.T) {
	io := &fakeIO{lines: []string{"world"}}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`shownl "hello " + ask`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if io.out.String() != "hello world\n" {
		t.Fatalf("unexpected output: %q", io.out.String())
	}
}

func Test_Interpreter_TraceHookFiresPerTopLevelStatement(t *testing.T) {
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	var traced []Node
	ip.SetTrace(func(stmt Node) { traced = append(traced, stmt) })
	_, err := ip.Run("x = 1\nshow x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(traced) != 2 {
		t.Fatalf("expected 2 traced top-level statements, got %d", len(traced))
	}
}
