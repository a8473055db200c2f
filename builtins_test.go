package simpscript

import (
	"strings"
	"testing"
)

func Test_Builtins_Size_Array(t *testing.T) {
	_, out := run(t, `show size([1, 2, 3, 4])`)
	if out != "4" {
		t.Fatalf("expected 4, got %q", out)
	}
}

func Test_Builtins_Size_String(t *testing.T) {
	_, out := run(t, `show size("hello")`)
	if out != "5" {
		t.Fatalf("expected 5, got %q", out)
	}
}

func Test_Builtins_Size_WrongTypeIsTypeError(t *testing.T) {
	io := &fakeIO{}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`show size(5)`)
	if err == nil {
		t.Fatalf("expected a type error for size() of a non-array/string")
	}
	if !strings.Contains(err.Error(), "size() expects an array or string") {
		t.Fatalf("expected size()'s TypeError message, got: %v", err)
	}
}

func Test_Builtins_Nextl_IsNewlineConstant(t *testing.T) {
	_, out := run(t, `show "a" + nextl + "b"`)
	if out != "a\nb" {
		t.Fatalf("expected %q, got %q", "a\\nb", out)
	}
}

func Test_Builtins_AskKeyword_ReadsOneLine(t *testing.T) {
	io := &fakeIO{lines: []string{"line one"}}
	ip := NewInterpreter(io, io)
	_, err := ip.Run(`show ask`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if io.out.String() != "line one" {
		t.Fatalf("unexpected output: %q", io.out.String())
	}
}

func Test_Builtins_AskGlobalBinding_IsCallableDirectly(t *testing.T) {
	// The ASK keyword shadows the identifier at the grammar level, so the
	// global "ask" binding registered by registerBuiltins is unreachable
	// through ordinary call syntax; it is still a first-class Callable
	// usable through the Go-level API (e.g. by an embedding host).
	io := &fakeIO{lines: []string{"direct"}}
	ip := NewInterpreter(io, io)
	v, err := ip.Globals.Get("ask")
	if err != nil {
		t.Fatalf("expected ask to be bound in the global environment: %v", err)
	}
	result, err := ip.call(v.AsFunction(), nil, "ask")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsString() != "direct" {
		t.Fatalf("expected %q, got %q", "direct", result.AsString())
	}
}

func Test_Builtins_NonKeywordBuiltinsAreOrdinaryShadowableGlobals(t *testing.T) {
	// `size` (unlike `show`/`shownl`/`ask`, which are reserved keywords) is
	// an ordinary identifier bound in the global environment, so a user
	// function of the same name shadows it like any other global (§6).
	_, out := run(t, `
function size(x)
    return x + 100
endfunction
show size(1)
`)
	if out != "101" {
		t.Fatalf("expected the user definition to shadow the built-in, got %q", out)
	}
}
