package influxline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const defaultUserAgent = "influxline"

// Client writes points to a server implementing the InfluxDB 2.x write
// API. It is safe for concurrent use.
type Client struct {
	// BaseURL is the server's base URL in "protocol://host:port" form,
	// without a trailing slash. Required.
	BaseURL string
	// HTTPClient is the HTTP client used for requests.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// UserAgent is sent as the User-Agent header of each request.
	// Defaults to "influxline".
	UserAgent string
	// Compression is the gzip level applied to request bodies, such as
	// gzip.BestSpeed. The default, gzip.NoCompression, sends bodies
	// uncompressed.
	Compression int
}

// NewClient creates a client for the server at the given base URL.
//
//	client := influxline.NewClient("http://localhost:8086")
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Write renders each point to line protocol and sends the result to
// the given organization and bucket in one request. Points are
// rendered lazily, one line at a time in the order given; the batch is
// never reordered, dropped or buffered whole. Response handling is the
// same as for WriteLineProtocol.
func (c *Client) Write(ctx context.Context, org, bucket string, points ...*Point) error {
	pr, pw := io.Pipe()

	go func() {
		var buf []byte
		for _, p := range points {
			buf = p.AppendLineProtocol(buf[:0])
			buf = append(buf, '\n')
			if _, err := pw.Write(buf); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.Close()
	}()

	err := c.WriteLineProtocol(ctx, org, bucket, pr)
	// Unblocks the renderer when the request ended before consuming
	// the whole body.
	pr.Close()
	return err
}

// WriteLineProtocol sends already rendered line protocol data to the
// given organization and bucket in one request. When Compression is
// set the body is gzip-encoded on the fly and the request marked with
// Content-Encoding: gzip.
//
// A response with a non-success status code is reported as a
// *RequestError carrying the status code and the response body text.
// Failures of the request itself are returned wrapped.
func (c *Client) WriteLineProtocol(ctx context.Context, org, bucket string, body io.Reader) error {
	q := url.Values{}
	q.Set("org", org)
	q.Set("bucket", bucket)
	writeURL := c.BaseURL + "/api/v2/write?" + q.Encode()

	compressed := c.Compression != gzip.NoCompression
	if compressed {
		body = gzipped(body, c.Compression)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, writeURL, body)
	if err != nil {
		return fmt.Errorf("create write request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("User-Agent", c.userAgent())
	if compressed {
		req.Header.Set("Content-Encoding", "gzip")
	}

	res, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		text, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("read write response: %w", err)
		}
		return &RequestError{StatusCode: res.StatusCode, Body: string(text)}
	}

	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return defaultUserAgent
}

// gzipped compresses body through a pipe so requests stream without
// buffering the whole payload.
func gzipped(body io.Reader, level int) io.Reader {
	pr, pw := io.Pipe()

	go func() {
		zw, err := gzip.NewWriterLevel(pw, level)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(zw, body); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(zw.Close())
	}()

	return pr
}

// RequestError is returned when the server responds to a write with a
// non-success status code.
type RequestError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Body is the raw response body text.
	Body string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}
