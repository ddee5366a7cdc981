// Package httpclient es el cliente JSON de los adapters que hablan con APIs
// REST externas (Identity Toolkit). Mide cada llamada por upstream.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"petcare/internal/platform/metrics"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20
)

var ErrNilClient = errors.New("httpclient: nil client")

// Client hace requests JSON contra un único BaseURL.
type Client struct {
	http    *http.Client
	baseURL string
	name    string
	metrics *metrics.Metrics
}

type Option func(*Client)

func WithTransport(tr http.RoundTripper) Option { return func(c *Client) { c.http.Transport = tr } }
func WithMetrics(m *metrics.Metrics) Option     { return func(c *Client) { c.metrics = m } }

// New valida baseURL y arma el cliente. name etiqueta las métricas del upstream.
func New(name, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		name:    name,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// HTTPError representa una respuesta no-2xx. Body viene recortado.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// PostJSON envía in como JSON a path (relativo a BaseURL) y decodifica la
// respuesta en out si no es nil. Un status no-2xx devuelve *HTTPError.
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, in, out any) error {
	if c == nil || c.http == nil {
		return ErrNilClient
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Upstream(c.name, "error", time.Since(start))
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.Upstream(c.name, strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}
