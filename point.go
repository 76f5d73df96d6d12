package influxline

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/influxline/influxline/internal/escape"
)

// A Point is a single measurement event: a measurement name, zero or
// more tags, one or more fields and an optional timestamp. Points are
// produced by a PointBuilder, are immutable afterwards and are safe
// for concurrent use.
type Point struct {
	measurement  escape.Measurement
	tags         []tag
	fields       []field
	timestamp    int64
	hasTimestamp bool
}

type tag struct {
	key   escape.TagPart
	value escape.TagPart
}

type field struct {
	key   escape.TagPart
	value FieldValue
}

// NewPoint creates a builder for a point of the given measurement.
func NewPoint(measurement string) *PointBuilder {
	return &PointBuilder{measurement: escape.Measurement(measurement)}
}

// AppendLineProtocol appends the point's line protocol representation
// to dst and returns the extended slice. The representation is a
// single line without a trailing newline: the escaped measurement,
// ",key=value" for each tag in key order, a space and the fields in
// key order separated by commas, and the timestamp if one was set.
func (p *Point) AppendLineProtocol(dst []byte) []byte {
	dst = p.measurement.Append(dst)

	for _, t := range p.tags {
		dst = append(dst, ',')
		dst = t.key.Append(dst)
		dst = append(dst, '=')
		dst = t.value.Append(dst)
	}

	for i, f := range p.fields {
		if i == 0 {
			dst = append(dst, ' ')
		} else {
			dst = append(dst, ',')
		}
		dst = f.key.Append(dst)
		dst = append(dst, '=')
		dst = f.value.appendTo(dst)
	}

	if p.hasTimestamp {
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, p.timestamp, 10)
	}

	return dst
}

// WriteTo writes the point's line protocol representation to w.
func (p *Point) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.AppendLineProtocol(nil))
	return int64(n), err
}

// String returns the point's line protocol representation.
func (p *Point) String() string {
	return string(p.AppendLineProtocol(nil))
}

// A PointBuilder incrementally assembles a Point. Create one with
// NewPoint.
//
// A builder is single-owner: it must not be shared between goroutines,
// and it must not be used again after Build. Build moves the
// accumulated state into the resulting Point, or into the returned
// error, and any later method call on the builder panics.
type PointBuilder struct {
	measurement  escape.Measurement
	tags         map[string]string
	fields       map[string]FieldValue
	timestamp    int64
	hasTimestamp bool
	consumed     bool
}

// Tag sets a tag, replacing any existing tag with the same key.
func (b *PointBuilder) Tag(key, value string) *PointBuilder {
	b.checkUsable()
	if b.tags == nil {
		b.tags = map[string]string{}
	}
	b.tags[key] = value
	return b
}

// Field sets a field, replacing any existing field with the same key.
func (b *PointBuilder) Field(key string, value FieldValue) *PointBuilder {
	b.checkUsable()
	if b.fields == nil {
		b.fields = map[string]FieldValue{}
	}
	b.fields[key] = value
	return b
}

// Timestamp sets the point's timestamp, replacing any previous one.
// The value is the number of nanoseconds since the Unix epoch. Without
// a timestamp the server assigns one on arrival.
func (b *PointBuilder) Timestamp(ns int64) *PointBuilder {
	b.checkUsable()
	b.timestamp = ns
	b.hasTimestamp = true
	return b
}

// Build consumes the builder and returns the finished point, with tags
// and fields ordered by key. It fails with a *MissingFieldsError when
// no field was set; a point without fields has no line protocol
// representation. A failed Build hands the builder back through the
// error, so the caller may add a field and retry or discard it.
func (b *PointBuilder) Build() (*Point, error) {
	b.checkUsable()

	if len(b.fields) == 0 {
		return nil, &MissingFieldsError{Builder: b}
	}
	b.consumed = true

	tags := make([]tag, 0, len(b.tags))
	for k, v := range b.tags {
		tags = append(tags, tag{key: escape.TagPart(k), value: escape.TagPart(v)})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].key < tags[j].key })

	fields := make([]field, 0, len(b.fields))
	for k, v := range b.fields {
		fields = append(fields, field{key: escape.TagPart(k), value: v})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })

	return &Point{
		measurement:  b.measurement,
		tags:         tags,
		fields:       fields,
		timestamp:    b.timestamp,
		hasTimestamp: b.hasTimestamp,
	}, nil
}

func (b *PointBuilder) checkUsable() {
	if b.consumed {
		panic("influxline: PointBuilder used after Build")
	}
}

// MissingFieldsError is returned by PointBuilder.Build when the
// builder holds no fields. It carries the builder so callers can
// inspect the accumulated state, or add a field and build again.
type MissingFieldsError struct {
	Builder *PointBuilder
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("a point must have at least one field: measurement %q has none", string(e.Builder.measurement))
}
