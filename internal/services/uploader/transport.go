package uploader

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/harshit2704/capture-sync/env"
	"github.com/harshit2704/capture-sync/internal/services/encoder"
)

const (
	DefaultEndpoint = "https://www.clippr.ai/api/upload"
)

// Transport sends an encoded body to the upload endpoint. It reports sent
// byte counts through progress while the body is being written and returns
// the response status code once the server has answered.
type Transport interface {
	Upload(ctx context.Context, body encoder.Body, progress func(sent, total int64)) (int, error)
}

type httpTransport struct {
	client   *http.Client
	endpoint string
}

func NewHTTPTransport(client *http.Client) Transport {
	return &httpTransport{
		client:   client,
		endpoint: env.GetOptional(env.UploadEndpoint, DefaultEndpoint),
	}
}

func (t *httpTransport) Upload(ctx context.Context, body encoder.Body, progress func(sent, total int64)) (int, error) {
	total := int64(len(body.Content))
	reader := &progressReader{
		reader: bytes.NewReader(body.Content),
		total:  total,
		report: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, reader)
	if err != nil {
		return 0, err
	}

	req.ContentLength = total
	req.Header.Set("Content-Type", body.ContentType)
	req.Header.Set("Content-Length", strconv.FormatInt(total, 10))

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// only the status code matters to the state machine
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// progressReader reports cumulative sent bytes as the request body is
// consumed, which keeps progress counts non-decreasing within an attempt.
type progressReader struct {
	reader io.Reader
	total  int64
	sent   int64
	report func(sent, total int64)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.sent += int64(n)
		r.report(r.sent, r.total)
	}
	return n, err
}
