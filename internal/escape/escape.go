// Package escape renders raw strings with the escaping rules of the
// position they occupy in a line protocol line.
//
// Each position has its own delimiter set, so each position gets its
// own type: a string escaped for the measurement position must never
// end up where a tag key is expected. The types wrap the raw,
// unescaped text; comparisons and ordering work on raw content, and
// escaping happens only when rendering.
package escape

import "strings"

const (
	measurementDelimiters   = ", "
	tagPartDelimiters       = ",= "
	stringLiteralDelimiters = `"`
)

// Measurement is a raw measurement name. Rendering escapes commas and
// spaces.
type Measurement string

// TagPart is a raw tag key, tag value or field key. Rendering escapes
// commas, equals signs and spaces.
type TagPart string

// StringLiteral is the raw body of a string field value. Rendering
// escapes double quotes only: the renderer always encloses the value
// in quotes, so the remaining delimiters never terminate it.
type StringLiteral string

// Append appends the escaped form of m to dst and returns the
// extended slice.
func (m Measurement) Append(dst []byte) []byte {
	return appendEscaped(dst, string(m), measurementDelimiters)
}

// Append appends the escaped form of t to dst and returns the
// extended slice.
func (t TagPart) Append(dst []byte) []byte {
	return appendEscaped(dst, string(t), tagPartDelimiters)
}

// Append appends the escaped form of s to dst and returns the
// extended slice. The enclosing quotes are not written here.
func (s StringLiteral) Append(dst []byte) []byte {
	return appendEscaped(dst, string(s), stringLiteralDelimiters)
}

// appendEscaped copies s to dst in a single pass, prepending a
// backslash to every occurrence of a delimiter. Backslashes already
// present in s are copied through unchanged.
func appendEscaped(dst []byte, s, delimiters string) []byte {
	for {
		i := strings.IndexAny(s, delimiters)
		if i == -1 {
			return append(dst, s...)
		}
		dst = append(dst, s[:i]...)
		dst = append(dst, '\\', s[i])
		s = s[i+1:]
	}
}
