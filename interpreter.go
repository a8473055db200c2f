// interpreter.go — owns the global environment and drives evaluation (§4.6).
//
// Grounded on daios-ai-msg/interpreter.go's Core/Global split ("Entry
// points differ only in which environment they target") simplified to one
// global environment, and on its fail/rtErr/recover() control-flow idiom
// (see the former builtin_core.go/std_core.go) for return and runtime-fault
// propagation: returnSignal and runtimeFault are typed panics caught at
// well-defined boundaries, the Go-idiomatic realization of §9's "dedicated
// non-error signal... unwinding only to the nearest function-call
// boundary."
//
// The core never performs I/O directly (§1): it reads one line at a time
// through LineInput and writes through LineOutput, both supplied by the
// host (file driver, REPL, or a test double).
package simpscript

import "fmt"

// LineInput is the "line-input provider" collaborator (§1, §6 `ask`).
type LineInput interface {
	ReadLine() (string, error)
}

// LineOutput is the "line-output sink" collaborator (§1, §6 `show`/`shownl`).
type LineOutput interface {
	Write(s string)
}

// returnSignal is the internal, non-error control-flow marker for `return`
// (§4.3 Return, §7). It must be caught only at a function-call boundary.
type returnSignal struct {
	value Value
}

// runtimeFault carries a §7 runtime error out to the top-level entry point.
// If a returnSignal escapes to Run/REPL without being caught by a function
// call, that is itself a fatal host-level error (§7), reported the same way.
type runtimeFault struct {
	err error
}

// Interpreter owns the global environment, the built-in registry, and the
// host I/O collaborators, and provides the entry points AST nodes use to
// recurse (§4.6).
type Interpreter struct {
	Globals *Environment
	Input   LineInput
	Output  LineOutput

	// trace, if set, is called once per top-level Program statement before
	// it evaluates (the CLI driver's --trace flag; see cmd/simpscript).
	trace func(stmt Node)
}

// NewInterpreter constructs an interpreter with a fresh global environment
// and the standard built-ins installed (§4.6, §6).
func NewInterpreter(in LineInput, out LineOutput) *Interpreter {
	ip := &Interpreter{
		Globals: NewGlobalEnvironment(),
		Input:   in,
		Output:  out,
	}
	registerBuiltins(ip)
	return ip
}

// SetTrace installs a per-statement trace hook (supplemental CLI feature;
// see SPEC_FULL.md §C).
func (ip *Interpreter) SetTrace(fn func(stmt Node)) { ip.trace = fn }

func (ip *Interpreter) writeOutput(s string, newline bool) {
	if newline {
		ip.Output.Write(s + "\n")
	} else {
		ip.Output.Write(s)
	}
}

func (ip *Interpreter) readInput() (string, error) {
	return ip.Input.ReadLine()
}

// fail raises a runtimeFault carrying a RuntimeError positioned at
// (line, col). Every AST node calls this instead of returning (Value,
// error), which keeps Node.Evaluate's signature a plain Value as §4.3
// specifies while still aborting the current evaluation (§7's propagation
// policy).
func (ip *Interpreter) fail(line, col int, err error) {
	panic(runtimeFault{err: &RuntimeError{Line: line, Col: col, Err: err}})
}

// call applies a Callable to args, implementing the native/user-function
// dispatch of §4.4's "Call dispatch" and the four-step user-function
// invocation protocol of §4.6.
func (ip *Interpreter) call(c *Callable, args []Value, callSiteName string) (Value, error) {
	name := c.Name
	if name == "" {
		name = callSiteName
	}
	if len(args) != c.arity() {
		return Value{}, &ArityError{Name: name, Expected: c.arity(), Got: len(args)}
	}

	if c.IsNative() {
		return c.NativeFn(ip, args)
	}

	// 1. New environment whose parent is the closure's captured
	//    environment, not the caller's current environment.
	frame := NewEnclosedEnvironment(c.Closure)

	// 2. Bind each parameter; a short args slice (should not happen once
	//    arity is checked above) binds the rest to nil defensively, per
	//    §4.6 step 2.
	for i, param := range c.Params {
		if i < len(args) {
			frame.Define(param, args[i])
		} else {
			frame.Define(param, Nil)
		}
	}

	// 3. Evaluate the body, catching a returnSignal raised anywhere within
	//    it; otherwise the body's own last-statement value is the result.
	result, err := ip.runCatchingReturn(c.Body, frame)
	return result, err
}

// runCatchingReturn evaluates body in env, catching only returnSignal at
// this boundary (the nearest function call, per §4.3/§9). A runtimeFault
// is re-panicked unchanged: it is already a fully-positioned *RuntimeError
// stamped once at its origin, and must unwind past every intervening call
// frame untouched to the single top-level recover in Run (mirroring
// _examples/original_source/src/Value.cpp's UserFunction::call, which
// catches only ReturnValue and lets RuntimeError propagate through every
// enclosing frame).
func (ip *Interpreter) runCatchingReturn(body Node, env *Environment) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch sig := r.(type) {
			case returnSignal:
				result, err = sig.value, nil
			case runtimeFault:
				panic(sig)
			default:
				panic(r)
			}
		}
	}()
	result = body.Evaluate(ip, env)
	return result, nil
}

// Run parses and evaluates src against the global environment, returning
// the Program's result value. Parse errors and runtime faults are both
// returned as a single formatted error (via WrapErrorWithSource).
func (ip *Interpreter) Run(src string) (value Value, err error) {
	program, perr := Parse(src)
	if perr != nil {
		return Nil, WrapErrorWithSource(perr, src)
	}

	defer func() {
		if r := recover(); r != nil {
			switch sig := r.(type) {
			case runtimeFault:
				value, err = Nil, WrapErrorWithSource(sig.err, src)
			case returnSignal:
				// A return escaping every function call boundary is a
				// fatal host-level error (§7), not a recoverable one.
				value, err = Nil, fmt.Errorf("fatal: return outside of a function")
			default:
				panic(r)
			}
		}
	}()

	value = program.Evaluate(ip, ip.Globals)
	return value, nil
}
