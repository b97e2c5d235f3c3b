package isf

import (
	"strconv"
	"strings"
)

// ValueKind is the dynamic type of a header value.
type ValueKind int

const (
	IntValue ValueKind = iota + 1
	FloatValue
	StringValue
)

// Value is a header value: an integer, a float or a string.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

func Int(v int64) Value      { return Value{kind: IntValue, i: v} }
func Float64(v float64) Value { return Value{kind: FloatValue, f: v} }
func String(s string) Value  { return Value{kind: StringValue, s: s} }

// ParseValue coerces a raw header value: integer first, then float, else
// the trimmed string.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(v)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Float64(v)
	}
	return String(s)
}

func (v Value) Kind() ValueKind { return v.kind }

// AsInt returns v as an integer. Floats are accepted when integral.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case IntValue:
		return v.i, true
	case FloatValue:
		if v.f == float64(int64(v.f)) {
			return int64(v.f), true
		}
	}
	return 0, false
}

// AsFloat returns v as a float. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case IntValue:
		return float64(v.i), true
	case FloatValue:
		return v.f, true
	}
	return 0, false
}

// String returns the textual form of v.
func (v Value) String() string {
	switch v.kind {
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	case FloatValue:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}
