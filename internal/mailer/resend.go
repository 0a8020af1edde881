package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const DefaultResendURL = "https://api.resend.com"

// SendError is a non-2xx answer from the mail API.
type SendError struct {
	HTTPStatus int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mailer: resend answered %d: %s", e.HTTPStatus, e.Body)
}

// ResendTransport sends through the Resend HTTP API.
type ResendTransport struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type ResendOption func(*ResendTransport)

// WithResendURL points the transport at another API root, e.g. a test server.
func WithResendURL(u string) ResendOption {
	return func(t *ResendTransport) { t.baseURL = strings.TrimSuffix(u, "/") }
}

func WithHTTPClient(c *http.Client) ResendOption {
	return func(t *ResendTransport) { t.http = c }
}

func WithLogger(l *zap.Logger) ResendOption {
	return func(t *ResendTransport) { t.logger = l }
}

func NewResendTransport(apiKey string, opts ...ResendOption) *ResendTransport {
	t := &ResendTransport{
		apiKey:  apiKey,
		baseURL: DefaultResendURL,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	from := msg.FromAddr
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, msg.FromAddr)
	}
	body, err := json.Marshal(resendEmail{From: from, To: msg.To, Subject: msg.Subject, HTML: msg.HTML})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		t.logger.Error("resend rejected email",
			zap.Int("http_status", resp.StatusCode),
			zap.String("body", string(raw)))
		return &SendError{HTTPStatus: resp.StatusCode, Body: string(raw)}
	}
	t.logger.Info("email sent", zap.String("via", "resend"), zap.String("subject", msg.Subject))
	return nil
}
