package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"petcare/internal/ports/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper es un S3 mínimo (Head/Get/Put) con path-style.
type mockRoundTripper struct {
	mu    sync.Mutex
	state map[string]stored
	puts  int
}

type stored struct {
	body        []byte
	contentType string
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	empty := io.NopCloser(bytes.NewReader(nil))

	switch req.Method {
	case http.MethodHead:
		if st, ok := m.state[key]; ok {
			return &http.Response{StatusCode: http.StatusOK, Body: empty, Header: http.Header{
				"Content-Length": {fmt.Sprintf("%d", len(st.body))},
				"Content-Type":   {st.contentType},
				"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
			}}, nil
		}
		return &http.Response{StatusCode: http.StatusNotFound, Body: empty, Header: http.Header{}}, nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		m.puts++
		m.state[key] = stored{body: body, contentType: req.Header.Get("Content-Type")}
		return &http.Response{StatusCode: http.StatusOK, Body: empty, Header: http.Header{"ETag": {"\"etag\""}}}, nil
	case http.MethodGet:
		if st, ok := m.state[key]; ok {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(st.body)), Header: http.Header{
				"Content-Length": {fmt.Sprintf("%d", len(st.body))},
				"Content-Type":   {st.contentType},
				"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
			}}, nil
		}
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)),
			Header:     http.Header{"Content-Type": {"application/xml"}},
		}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: empty, Header: http.Header{}}, nil
}

func newMockStore(t *testing.T) (*Store, *mockRoundTripper) {
	t.Helper()
	rt := &mockRoundTripper{state: map[string]stored{}}
	s, err := New(context.Background(), Config{
		Bucket:          "petcare-reports",
		Region:          "us-east-1",
		Endpoint:        "https://mock.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: rt},
	})
	require.NoError(t, err)
	return s, rt
}

func TestStore_PutGetHead(t *testing.T) {
	s, rt := newMockStore(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "reports/o/p/r.pdf", "application/pdf", []byte("%PDF-1.3 hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(14), info.Size)

	head, err := s.Head(ctx, "reports/o/p/r.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", head.ContentType)
	assert.Equal(t, int64(14), head.Size)

	_, data, err := s.Get(ctx, "reports/o/p/r.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 hello", string(data))

	_, err = s.Put(ctx, "reports/o/p/r.pdf", "application/pdf", []byte("other"))
	assert.ErrorIs(t, err, blob.ErrExists)
	assert.Equal(t, 1, rt.puts)
}

func TestStore_NotFound(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.Head(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	_, _, err = s.Get(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
