// value.go — the runtime value domain (§3, §4.4).
//
// Value follows MindScript's tagged-struct shape (daios-ai-msg/interpreter.go:
// `type Value struct { Tag ValueTag; Data interface{} }`), trimmed to this
// language's seven-variant domain: no maps, no structural types, no modules.
// Arrays are deliberately represented as a plain Go slice so that copying a
// Value struct still shares the backing array — see DESIGN.md's Open
// Question 1 (array-by-reference).
package simpscript

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueTag discriminates the runtime kind held by a Value.
type ValueTag int

const (
	NilValue ValueTag = iota
	BoolValue
	IntValue
	FloatValue
	StringValue
	ArrayValue
	FunctionValue
)

// Value is the universal runtime carrier. The active field of Data is
// determined by Tag:
//
//	NilValue      -> nil
//	BoolValue     -> bool
//	IntValue      -> int64
//	FloatValue    -> float64
//	StringValue   -> string
//	ArrayValue    -> []Value   (shared backing array; see DESIGN.md)
//	FunctionValue -> *Callable
type Value struct {
	Tag  ValueTag
	Data interface{}
}

var Nil = Value{Tag: NilValue}

func BoolVal(b bool) Value          { return Value{Tag: BoolValue, Data: b} }
func IntVal(n int64) Value          { return Value{Tag: IntValue, Data: n} }
func FloatVal(f float64) Value      { return Value{Tag: FloatValue, Data: f} }
func StringVal(s string) Value      { return Value{Tag: StringValue, Data: s} }
func ArrayVal(xs []Value) Value     { return Value{Tag: ArrayValue, Data: xs} }
func FunctionVal(c *Callable) Value { return Value{Tag: FunctionValue, Data: c} }

func (v Value) AsBool() bool          { return v.Data.(bool) }
func (v Value) AsInt() int64          { return v.Data.(int64) }
func (v Value) AsFloat() float64      { return v.Data.(float64) }
func (v Value) AsString() string      { return v.Data.(string) }
func (v Value) AsArray() []Value      { return v.Data.([]Value) }
func (v Value) AsFunction() *Callable { return v.Data.(*Callable) }

func (v Value) isNumeric() bool { return v.Tag == IntValue || v.Tag == FloatValue }

func (v Value) asFloat64() float64 {
	if v.Tag == IntValue {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}

// Truthy implements §4.4's truthiness coercion.
func Truthy(v Value) bool {
	switch v.Tag {
	case NilValue:
		return false
	case BoolValue:
		return v.AsBool()
	case IntValue:
		return v.AsInt() != 0
	case FloatValue:
		return v.AsFloat() != 0.0
	case StringValue:
		return v.AsString() != ""
	case ArrayValue:
		return len(v.AsArray()) != 0
	case FunctionValue:
		return true
	default:
		return false
	}
}

// ToString implements §4.4's toString.
func ToString(v Value) string {
	switch v.Tag {
	case NilValue:
		return "nil"
	case BoolValue:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case IntValue:
		return strconv.FormatInt(v.AsInt(), 10)
	case FloatValue:
		return strconv.FormatFloat(v.AsFloat(), 'g', -1, 64)
	case StringValue:
		return v.AsString()
	case ArrayValue:
		elems := v.AsArray()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = ToString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case FunctionValue:
		return "<function>"
	default:
		return "<unknown>"
	}
}

// TypeError / IndexError / ArityError / DivisionByZero are the runtime error
// kinds distinguished by §7, raised by value operations and caught by the
// interpreter's call/eval boundary (see errors.go, interpreter.go).
type TypeError struct{ Msg string }

func (e *TypeError) Error() string { return e.Msg }

type IndexError struct{ Msg string }

func (e *IndexError) Error() string { return e.Msg }

type DivisionByZeroError struct{ Msg string }

func (e *DivisionByZeroError) Error() string { return e.Msg }

// ArityError is raised when a call's argument count does not match the
// callable's declared arity (§4.3 FunctionCall, §4.4 call dispatch).
type ArityError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Name, e.Expected, e.Got)
}

// Add implements §4.4's '+': string concatenation (via toString) if either
// side is a string, else numeric addition with float promotion.
func Add(l, r Value) (Value, error) {
	if l.Tag == StringValue || r.Tag == StringValue {
		return StringVal(ToString(l) + ToString(r)), nil
	}
	if !l.isNumeric() || !r.isNumeric() {
		return Value{}, &TypeError{fmt.Sprintf("cannot add %s and %s", tagName(l.Tag), tagName(r.Tag))}
	}
	if l.Tag == FloatValue || r.Tag == FloatValue {
		return FloatVal(l.asFloat64() + r.asFloat64()), nil
	}
	return IntVal(l.AsInt() + r.AsInt()), nil
}

func arithmetic(l, r Value, op string, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (Value, error) {
	if !l.isNumeric() || !r.isNumeric() {
		return Value{}, &TypeError{fmt.Sprintf("cannot %s %s and %s", op, tagName(l.Tag), tagName(r.Tag))}
	}
	if l.Tag == FloatValue || r.Tag == FloatValue {
		return FloatVal(floatOp(l.asFloat64(), r.asFloat64())), nil
	}
	return IntVal(intOp(l.AsInt(), r.AsInt())), nil
}

func Sub(l, r Value) (Value, error) {
	return arithmetic(l, r, "subtract", func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

func Mul(l, r Value) (Value, error) {
	return arithmetic(l, r, "multiply", func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

// Div implements §4.4's '/': both numeric, promote on mixed, DivisionByZero
// when the right operand is exactly zero.
func Div(l, r Value) (Value, error) {
	if !l.isNumeric() || !r.isNumeric() {
		return Value{}, &TypeError{fmt.Sprintf("cannot divide %s and %s", tagName(l.Tag), tagName(r.Tag))}
	}
	if r.asFloat64() == 0 {
		return Value{}, &DivisionByZeroError{"division by zero"}
	}
	if l.Tag == FloatValue || r.Tag == FloatValue {
		return FloatVal(l.asFloat64() / r.asFloat64()), nil
	}
	return IntVal(l.AsInt() / r.AsInt()), nil
}

// Mod implements §4.4's '%': both operands must be integers.
func Mod(l, r Value) (Value, error) {
	if l.Tag != IntValue || r.Tag != IntValue {
		return Value{}, &TypeError{"'%' requires integer operands"}
	}
	if r.AsInt() == 0 {
		return Value{}, &DivisionByZeroError{"modulo by zero"}
	}
	return IntVal(l.AsInt() % r.AsInt()), nil
}

// Negate implements unary '-' (§4.3 UnaryOp NEGATIVE).
func Negate(v Value) (Value, error) {
	switch v.Tag {
	case IntValue:
		return IntVal(-v.AsInt()), nil
	case FloatValue:
		return FloatVal(-v.AsFloat()), nil
	default:
		return Value{}, &TypeError{fmt.Sprintf("cannot negate %s", tagName(v.Tag))}
	}
}

// Equals implements §4.4 '=='/'!=': numeric variants compare by float value
// regardless of int/float tag; differing non-numeric tags are unequal;
// arrays compare elementwise; functions by handle identity.
func Equals(l, r Value) bool {
	if l.isNumeric() && r.isNumeric() {
		return l.asFloat64() == r.asFloat64()
	}
	if l.Tag != r.Tag {
		return false
	}
	switch l.Tag {
	case NilValue:
		return true
	case BoolValue:
		return l.AsBool() == r.AsBool()
	case StringValue:
		return l.AsString() == r.AsString()
	case ArrayValue:
		la, ra := l.AsArray(), r.AsArray()
		if len(la) != len(ra) {
			return false
		}
		for i := range la {
			if !Equals(la[i], ra[i]) {
				return false
			}
		}
		return true
	case FunctionValue:
		return l.AsFunction() == r.AsFunction()
	default:
		return false
	}
}

// Less implements '<' (§4.4): numeric-numeric by float, string-string
// lexicographic, anything else is a TypeError. '<=', '>', '>=' are derived
// from Less/Equals to preserve the identities spec §4.4 requires.
func Less(l, r Value) (bool, error) {
	if l.isNumeric() && r.isNumeric() {
		return l.asFloat64() < r.asFloat64(), nil
	}
	if l.Tag == StringValue && r.Tag == StringValue {
		return l.AsString() < r.AsString(), nil
	}
	return false, &TypeError{fmt.Sprintf("cannot compare %s and %s", tagName(l.Tag), tagName(r.Tag))}
}

// LessEq, Greater, GreaterEq preserve §4.4's identities:
//
//	<=  is  ( < ) || ( == )
//	 >  is  !( <= )
//	>=  is  !( < )
func LessEq(l, r Value) (bool, error) {
	lt, err := Less(l, r)
	if err != nil {
		return false, err
	}
	return lt || Equals(l, r), nil
}

func Greater(l, r Value) (bool, error) {
	le, err := LessEq(l, r)
	if err != nil {
		return false, err
	}
	return !le, nil
}

func GreaterEq(l, r Value) (bool, error) {
	lt, err := Less(l, r)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

func tagName(t ValueTag) string {
	switch t {
	case NilValue:
		return "nil"
	case BoolValue:
		return "boolean"
	case IntValue:
		return "integer"
	case FloatValue:
		return "float"
	case StringValue:
		return "string"
	case ArrayValue:
		return "array"
	case FunctionValue:
		return "function"
	default:
		return "value"
	}
}
