package getnet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// SessionPath is the WebCheckout session endpoint, relative to the base URL.
const SessionPath = "/api/session"

// maxBody bounds how much of an upstream answer is read.
const maxBody = 1 << 20

var ErrMissingBaseURL = errors.New("getnet: base URL is not configured")

// UpstreamFormatError means the gateway answered with something that is not
// JSON. Raw holds the body for diagnosis.
type UpstreamFormatError struct {
	HTTPStatus int
	Raw        string
	Err        error
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("getnet: upstream returned non-JSON (http %d): %v", e.HTTPStatus, e.Err)
}

func (e *UpstreamFormatError) Unwrap() error { return e.Err }

// TransportError means the gateway could not be reached or read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "getnet: transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Doer is the part of *http.Client the client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the gateway's session API. It holds no per-request state.
type Client struct {
	baseURL string
	http    Doer
	logger  *zap.Logger
}

// NewClient builds a client for baseURL. A nil doer gets an http.Client with
// the default transport wrapped for tracing.
func NewClient(baseURL string, doer Doer, logger *zap.Logger) *Client {
	if doer == nil {
		doer = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    doer,
		logger:  logger,
	}
}

// CreateSession posts one session request. A decoded answer is returned even
// when the gateway declined; check Succeeded. Errors are either
// *TransportError or *UpstreamFormatError.
func (c *Client) CreateSession(ctx context.Context, in SessionRequest) (*SessionResponse, error) {
	if c.baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	ctx, span := otel.Tracer("getnet").Start(ctx, "getnet.CreateSession")
	defer span.End()
	span.SetAttributes(attribute.String("payment.reference", in.Payment.Reference))

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SessionPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		span.RecordError(err)
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	var out SessionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		span.SetStatus(codes.Error, "non-json response")
		c.logger.Warn("getnet returned non-JSON",
			zap.Int("http_status", resp.StatusCode),
			zap.String("body", truncate(string(raw), 512)))
		return nil, &UpstreamFormatError{HTTPStatus: resp.StatusCode, Raw: string(raw), Err: err}
	}
	out.HTTPStatus = resp.StatusCode
	out.Raw = json.RawMessage(raw)

	span.SetAttributes(
		attribute.String("getnet.status", out.Status.Status),
		attribute.Int("http.status_code", resp.StatusCode),
	)
	c.logger.Info("getnet session answered",
		zap.String("reference", in.Payment.Reference),
		zap.String("status", out.Status.Status),
		zap.String("reason", string(out.Status.Reason)),
		zap.String("request_id", out.RequestID.String()),
		zap.Int("http_status", resp.StatusCode))

	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
