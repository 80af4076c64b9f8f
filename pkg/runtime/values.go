package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindStr
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStr:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the closed set of values an Asa program can produce.
type Value interface {
	Kind() Kind
	isValue()
}

// IntValue is a signed 32-bit integer. Arithmetic wraps on overflow.
type IntValue struct {
	Val int32
}

func (v IntValue) Kind() Kind { return KindInt }
func (IntValue) isValue()     {}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()     {}

type StrValue struct {
	Val string
}

func (v StrValue) Kind() Kind { return KindStr }
func (StrValue) isValue()     {}

func Int(v int32) IntValue  { return IntValue{Val: v} }
func Bool(v bool) BoolValue { return BoolValue{Val: v} }
func Str(v string) StrValue { return StrValue{Val: v} }
func True() BoolValue       { return BoolValue{Val: true} }

// Compare orders two values of the same kind: -1, 0 or 1. Booleans order
// false before true. ok is false when the kinds differ.
func Compare(a, b Value) (cmp int, ok bool) {
	switch av := a.(type) {
	case IntValue:
		bv, same := b.(IntValue)
		if !same {
			return 0, false
		}
		return compareOrdered(av.Val, bv.Val), true
	case StrValue:
		bv, same := b.(StrValue)
		if !same {
			return 0, false
		}
		return compareOrdered(av.Val, bv.Val), true
	case BoolValue:
		bv, same := b.(BoolValue)
		if !same {
			return 0, false
		}
		return compareOrdered(boolRank(av.Val), boolRank(bv.Val)), true
	default:
		return 0, false
	}
}

func compareOrdered[T int32 | int | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Format renders a value with its variant tag, e.g. Int(123) or
// Str("hello world").
func Format(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return "Int(" + strconv.FormatInt(int64(val.Val), 10) + ")"
	case BoolValue:
		return "Bool(" + strconv.FormatBool(val.Val) + ")"
	case StrValue:
		return "Str(" + strconv.Quote(val.Val) + ")"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

// Plain renders the bare value: 123, true, hello world.
func Plain(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(int64(val.Val), 10)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case StrValue:
		return val.Val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Native converts a value to the matching Go scalar (int32, bool or string).
func Native(v Value) any {
	switch val := v.(type) {
	case IntValue:
		return val.Val
	case BoolValue:
		return val.Val
	case StrValue:
		return val.Val
	default:
		return nil
	}
}
