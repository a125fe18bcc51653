package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/nikbrunner/dropdown/internal/source"
)

// ErrRequest marks transport-level failures.
var ErrRequest = errors.New("remote request failed")

// Request describes how to shape a remote search call. Payload is the
// static body for POST requests; BuildPayload, when set, wins and derives
// the body from the query.
type Request struct {
	URL          string
	Method       string
	Payload      any
	BuildPayload func(q source.Query) any
}

// Transport issues a shaped request and returns the raw response body.
// The controller owns request shaping and response normalization; the
// transport owns only the call mechanics.
type Transport interface {
	Do(ctx context.Context, req Request, q source.Query) ([]byte, error)
}

// HTTPTransport implements Transport over net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates an HTTPTransport with a 30 second timeout.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do issues the request. GET requests encode the query as URL parameters;
// other methods send a JSON body.
func (t *HTTPTransport) Do(ctx context.Context, req Request, q source.Query) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var httpReq *http.Request
	var err error

	if method == http.MethodGet {
		endpoint, parseErr := url.Parse(req.URL)
		if parseErr != nil {
			return nil, fmt.Errorf("parse url: %w", parseErr)
		}
		params := endpoint.Query()
		params.Set("q", q.Keyword)
		params.Set("page", strconv.Itoa(q.Page))
		if q.PerPage > 0 {
			params.Set("per_page", strconv.Itoa(q.PerPage))
		}
		endpoint.RawQuery = params.Encode()

		httpReq, err = http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
	} else {
		payload := req.Payload
		if req.BuildPayload != nil {
			payload = req.BuildPayload(q)
		}
		if payload == nil {
			payload = map[string]any{"q": q.Keyword, "page": q.Page}
		}
		body, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return nil, fmt.Errorf("marshal payload: %w", marshalErr)
		}

		httpReq, err = http.NewRequestWithContext(ctx, method, req.URL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
	}
	return body, nil
}

// HTTPSource adapts a Transport into a DataSource: it shapes the request
// and normalizes whatever comes back.
type HTTPSource struct {
	Transport Transport
	Request   Request
}

// Fetch implements source.DataSource.
func (h *HTTPSource) Fetch(ctx context.Context, q source.Query) (source.Page, error) {
	raw, err := h.Transport.Do(ctx, h.Request, q)
	if err != nil {
		return source.Page{}, err
	}
	return ParseResponse(raw), nil
}
