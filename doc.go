/*
Package influxline renders typed data points to InfluxDB line protocol
and writes them to a server implementing the InfluxDB 2.x write API.

Points are assembled with a builder and rendered deterministically:
tags and fields appear in key order and every part is escaped for the
position it occupies, so the output is unambiguous to a line-oriented
parser. A point must have at least one field; that is the only way
building one can fail.

	client := influxline.NewClient("http://localhost:8086")

	point, err := influxline.NewPoint("cpu").
		Tag("host", "server01").
		Field("usage", influxline.FloatValue(0.5)).
		Build()
	if err != nil {
		// the builder had no fields
	}

	err = client.Write(ctx, "0000111100001111", "1111000011110000", point)

Write sends all given points in a single request, in the order given.
Retrying failed writes is left to the caller.
*/
package influxline
