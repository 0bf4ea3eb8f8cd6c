package wpconfig

import "strconv"

type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// Value is a resolved constant. The zero Value is an empty string.
type Value struct {
	kind Kind
	str  string
	b    bool
	n    int
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, b: b} }
func IntValue(n int) Value       { return Value{kind: KindInt, n: n} }

func (v Value) Kind() Kind { return v.kind }

// String returns the textual form of the value regardless of its kind.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.Itoa(v.n)
	default:
		return v.str
	}
}

func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.n != 0
	default:
		return ParseBool(v.str)
	}
}

func (v Value) Int() int {
	switch v.kind {
	case KindInt:
		return v.n
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	default:
		return ParseInt(v.str)
	}
}

// Interface returns the value as string, bool or int.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.n
	default:
		return v.str
	}
}
