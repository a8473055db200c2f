// errors.go — user-facing diagnostics with a caret-annotated source snippet.
//
// Directly grounded on daios-ai-msg/errors.go's WrapErrorWithSource /
// prettyErrorStringLabeled: recognize a diagnosable error type, and render
// a "KIND ERROR at L:C: message" header followed by up to one line of
// source context before and after the offending line, with a caret under
// the column.
package simpscript

import (
	"fmt"
	"strings"
)

// ParseError is a grammar violation (§7). The parser records it and
// synchronizes (§4.2); the top-level Parse call returns the first one to
// its caller, which formats it (Run does so via WrapErrorWithSource).
// Col is the 0-based column produced by the lexer.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// RuntimeError wraps any §7 runtime error kind (UndefinedVariableError,
// TypeError, IndexError, ArityError, DivisionByZeroError) with the source
// position of the AST node that raised it.
type RuntimeError struct {
	Line int
	Col  int
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Err.Error())
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// WrapErrorWithSource recognizes *LexError, *ParseError, and *RuntimeError
// and returns an error whose message is a caret-annotated snippet of src.
// Any other error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettySnippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettySnippet(src, "PARSE ERROR", e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", prettySnippet(src, "RUNTIME ERROR", e.Line, e.Col+1, e.Err.Error()))
	default:
		return err
	}
}

func prettySnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
