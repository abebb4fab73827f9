// Package command implements a line-oriented command subsystem: a
// tokenizer/parser for shell-like command lines, a registry of named
// callbacks, and a bounded history ring with readline-style navigation.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a tagged union over the four argument types the parser can
// produce: string, int, float64, and bool. It mirrors the original
// engine's CommandValue variant; Go has no variant type, so this wraps
// an interface{} behind a narrow API instead of exposing it directly.
type Value struct {
	raw interface{}
}

// StringValue, IntValue, FloatValue and BoolValue build a Value from a
// concrete Go type.
func StringValue(s string) Value  { return Value{raw: s} }
func IntValue(i int) Value        { return Value{raw: i} }
func FloatValue(f float64) Value  { return Value{raw: f} }
func BoolValue(b bool) Value      { return Value{raw: b} }

// Kind reports which concrete type a Value currently holds.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Kind returns which concrete type this value holds.
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case int:
		return KindInt
	case float64:
		return KindFloat
	case bool:
		return KindBool
	default:
		return KindString
	}
}

// String renders the value's canonical string form; AsString returns
// the same text.
func (v Value) String() string {
	switch t := v.raw.(type) {
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// AsString returns the value coerced to a string. Every kind has a
// lossless string form, so this never fails.
func (v Value) AsString() string { return v.String() }

// AsInt coerces the value to an int: passthrough for KindInt, a parsed
// int for a string holding a decimal integer, truncation for KindFloat,
// and 0/1 for KindBool. Returns false for a string that is not a whole
// decimal integer (including one such as "3.5").
func (v Value) AsInt() (int, bool) {
	switch t := v.raw.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// AsFloat coerces the value to a float64, analogous to AsInt.
func (v Value) AsFloat() (float64, bool) {
	switch t := v.raw.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsBool coerces the value to a bool. A nonzero int/float is true. A
// string is true only for the literals "true", "1", or "yes"
// (case-insensitive); anything else is false. This mirrors the
// original engine's CommandArgs::GetNamed<bool> string coercion rules.
func (v Value) AsBool() bool {
	switch t := v.raw.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(t) {
		case "true", "1", "yes":
			return true
		default:
			return false
		}
	default:
		return false
	}
}
