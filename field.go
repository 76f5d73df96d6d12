package influxline

import (
	"strconv"

	"github.com/influxline/influxline/internal/escape"
)

// A FieldValue is one of the scalar values a field can hold: a boolean,
// a 64-bit float, a 64-bit signed integer or a string. Values are
// created with BoolValue, FloatValue, IntValue or StringValue and are
// immutable. The zero value renders like BoolValue(false).
type FieldValue struct {
	kind fieldKind
	b    bool
	f    float64
	i    int64
	s    escape.StringLiteral
}

type fieldKind uint8

const (
	fieldBool fieldKind = iota
	fieldFloat
	fieldInt
	fieldString
)

// BoolValue creates a boolean field value.
func BoolValue(v bool) FieldValue {
	return FieldValue{kind: fieldBool, b: v}
}

// FloatValue creates a 64-bit floating point field value.
func FloatValue(v float64) FieldValue {
	return FieldValue{kind: fieldFloat, f: v}
}

// IntValue creates a 64-bit signed integer field value.
func IntValue(v int64) FieldValue {
	return FieldValue{kind: fieldInt, i: v}
}

// StringValue creates a string field value. The string is kept raw;
// quote escaping happens when the value is rendered.
func StringValue(v string) FieldValue {
	return FieldValue{kind: fieldString, s: escape.StringLiteral(v)}
}

// appendTo appends the value's wire token to dst: "t" or "f" for
// booleans, the shortest round-tripping decimal form for floats, the
// decimal digits followed by "i" for integers, and the quote-escaped
// string enclosed in double quotes.
func (v FieldValue) appendTo(dst []byte) []byte {
	switch v.kind {
	case fieldFloat:
		return strconv.AppendFloat(dst, v.f, 'f', -1, 64)
	case fieldInt:
		dst = strconv.AppendInt(dst, v.i, 10)
		return append(dst, 'i')
	case fieldString:
		dst = append(dst, '"')
		dst = v.s.Append(dst)
		return append(dst, '"')
	default:
		if v.b {
			return append(dst, 't')
		}
		return append(dst, 'f')
	}
}

// String returns the value's wire token.
func (v FieldValue) String() string {
	return string(v.appendTo(nil))
}
