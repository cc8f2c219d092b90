package gateway

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// payloadRecorder keeps the raw body of the last response that passed
// through it, so upstream errors can be shown to the operator verbatim.
type payloadRecorder struct {
	base http.RoundTripper

	mu   sync.Mutex
	body []byte
	err  error
}

func newPayloadRecorder(base http.RoundTripper) *payloadRecorder {
	if base == nil {
		base = http.DefaultTransport
	}
	return &payloadRecorder{base: base}
}

func (p *payloadRecorder) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := p.base.RoundTrip(r)
	if err != nil {
		p.record(nil, err)
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		err = fmt.Errorf("reading response body: %w", err)
		p.record(nil, err)
		return nil, err
	}
	p.record(body, nil)
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

func (p *payloadRecorder) record(body []byte, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.body = body
	p.err = err
}

func (p *payloadRecorder) reset() {
	p.record(nil, nil)
}

// last returns what the most recent round trip produced.
func (p *payloadRecorder) last() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.body, p.err
}

// limitedTransport allows round trips with a maximum rate.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// newLimitedTransport wraps base with a limiter.
// maxRate - maximum number of requests per second, <= 0 means unlimited.
func newLimitedTransport(base http.RoundTripper, maxRate float64) http.RoundTripper {
	limit := rate.Inf
	if maxRate > 0 {
		limit = rate.Limit(maxRate)
	}
	return &limitedTransport{
		base:    base,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// RoundTrip blocks until the call rate is within limit, then executes the request.
func (t *limitedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("waiting for request limiter: %w", err)
	}
	return t.base.RoundTrip(r)
}
