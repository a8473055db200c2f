// builtins.go — the closed built-in table (§6).
//
// Grounded on daios-ai-msg/builtin_core.go and std_core.go's
// RegisterNative-style registration (arity-checked native dispatch,
// returning a Value or raising a runtime fault), simplified to this
// spec's five built-ins: there is no type-checked ParamSpec machinery to
// carry over since this value domain has no structural type system
// (Non-goal, DESIGN.md).
package simpscript

// registerBuiltins installs §6's closed built-in table into ip.Globals.
func registerBuiltins(ip *Interpreter) {
	define := func(name string, arity int, fn func(ip *Interpreter, args []Value) (Value, error)) {
		ip.Globals.Define(name, FunctionVal(&Callable{Name: name, NativeFn: fn, Arity: arity}))
	}

	define("show", 1, func(ip *Interpreter, args []Value) (Value, error) {
		ip.writeOutput(ToString(args[0]), false)
		return Nil, nil
	})

	define("shownl", 1, func(ip *Interpreter, args []Value) (Value, error) {
		ip.writeOutput(ToString(args[0]), true)
		return Nil, nil
	})

	// Also reachable directly as a primary expression via the ASK keyword
	// (see Input in ast.go and primary() in parser.go); bound here as well
	// so it is a first-class Value like the rest of §6's table.
	define("ask", 0, func(ip *Interpreter, _ []Value) (Value, error) {
		line, err := ip.readInput()
		if err != nil {
			return Value{}, err
		}
		return StringVal(line), nil
	})

	define("size", 1, func(_ *Interpreter, args []Value) (Value, error) {
		switch args[0].Tag {
		case ArrayValue:
			return IntVal(int64(len(args[0].AsArray()))), nil
		case StringValue:
			return IntVal(int64(len(args[0].AsString()))), nil
		default:
			return Value{}, &TypeError{"size() expects an array or string"}
		}
	})

	ip.Globals.Define("nextl", StringVal("\n"))
}
