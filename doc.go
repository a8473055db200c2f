// Package simpscript implements the core of a tree-walking interpreter for
// a small, natural-language-flavored imperative scripting language: a
// lexer with two-word operator fusion ("greater than", "at least"), a
// recursive-descent parser producing a typed AST, and a tree-walking
// evaluator over a tagged value domain with lexically nested environments,
// user-defined closures, and a small closed set of native built-ins.
//
// The package performs no I/O of its own. Callers supply a LineInput and a
// LineOutput to NewInterpreter and drive evaluation with Interpreter.Run;
// see cmd/simpscript for a file-running and REPL driver built on top of it.
package simpscript
