package influxline_test

import (
	"strings"
	"testing"

	"github.com/influxline/influxline"

	"github.com/stretchr/testify/require"
)

func TestPointBuilderTagsAndFields(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("swap").
		Tag("host", "server01").
		Tag("name", "disk0").
		Field("in", influxline.IntValue(3)).
		Field("out", influxline.IntValue(4)).
		Timestamp(1).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(t, "swap,host=server01,name=disk0 in=3i,out=4i 1", point.String(), "wrong line")
}

func TestPointNoTagsOrTimestamp(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m0").
		Field("f0", influxline.FloatValue(1.0)).
		Field("f1", influxline.IntValue(2)).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(t, "m0 f0=1,f1=2i", point.String(), "wrong line")
}

func TestPointNoTimestamp(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m0").
		Tag("t0", "v0").
		Tag("t1", "v1").
		Field("f1", influxline.IntValue(2)).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(t, "m0,t0=v0,t1=v1 f1=2i", point.String(), "wrong line")
}

func TestPointNoFields(t *testing.T) {
	t.Parallel()

	_, err := influxline.NewPoint("m0").Tag("t0", "v0").Build()

	var missing *influxline.MissingFieldsError
	require.ErrorAs(t, err, &missing, "build must fail without fields")
	require.NotNil(t, missing.Builder, "error must carry the builder state")
}

func TestPointSortedOutput(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m").
		Tag("zz", "1").
		Tag("aa", "2").
		Tag("mm", "3").
		Field("z", influxline.IntValue(1)).
		Field("a", influxline.IntValue(2)).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(t, "m,aa=2,mm=3,zz=1 a=2i,z=1i", point.String(), "tags and fields must be sorted by key")
}

func TestPointLastWriteWins(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m").
		Tag("t", "old").
		Tag("t", "new").
		Field("f", influxline.IntValue(1)).
		Field("f", influxline.IntValue(2)).
		Timestamp(1).
		Timestamp(9).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(t, "m,t=new f=2i 9", point.String(), "repeated keys must keep the last value")
}

func TestPointEscaping(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("cpu load,1m").
		Tag("host name", "us,west=1").
		Field("no te", influxline.StringValue(`it said "hi", twice`)).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(
		t,
		`cpu\ load\,1m,host\ name=us\,west\=1 no\ te="it said \"hi\", twice"`,
		point.String(),
		"wrong escaping",
	)
}

func TestPointNegativeTimestamp(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m").
		Field("f", influxline.BoolValue(true)).
		Timestamp(-5).
		Build()

	require.NoError(t, err, "unexpected build error")
	require.Equal(t, "m f=t -5", point.String(), "wrong line")
}

func TestPointWriteTo(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m").Field("f", influxline.IntValue(1)).Build()
	require.NoError(t, err, "unexpected build error")

	var sb strings.Builder
	n, err := point.WriteTo(&sb)

	require.NoError(t, err, "unexpected write error")
	require.Equal(t, point.String(), sb.String(), "WriteTo and String must agree")
	require.Equal(t, int64(len(sb.String())), n, "wrong number of bytes reported")
}

func TestPointAppendLineProtocol(t *testing.T) {
	t.Parallel()

	point, err := influxline.NewPoint("m").Field("f", influxline.IntValue(1)).Build()
	require.NoError(t, err, "unexpected build error")

	dst := []byte("keep ")
	dst = point.AppendLineProtocol(dst)

	require.Equal(t, "keep m f=1i", string(dst), "line not appended to dst")
}

func TestPointBuilderConsumed(t *testing.T) {
	t.Parallel()

	b := influxline.NewPoint("m").Field("f", influxline.IntValue(1))
	_, err := b.Build()
	require.NoError(t, err, "unexpected build error")

	require.Panics(t, func() { b.Tag("t", "v") }, "no panic on Tag after Build")
	require.Panics(t, func() { b.Field("f", influxline.IntValue(2)) }, "no panic on Field after Build")
	require.Panics(t, func() { b.Timestamp(1) }, "no panic on Timestamp after Build")
	require.Panics(t, func() { _, _ = b.Build() }, "no panic on second Build")
}

func TestPointBuilderRecoveredFromError(t *testing.T) {
	t.Parallel()

	_, err := influxline.NewPoint("m").Build()

	var missing *influxline.MissingFieldsError
	require.ErrorAs(t, err, &missing, "build must fail without fields")

	point, err := missing.Builder.Field("f", influxline.IntValue(1)).Build()
	require.NoError(t, err, "builder from the error must be usable")
	require.Equal(t, "m f=1i", point.String(), "wrong line after recovery")
}
