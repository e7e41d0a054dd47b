// Package upstream is the typed client for the e-commerce REST API the
// storefront fronts. It is stateless: the caller passes the shopper's
// credential on every authenticated call.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/platform/config"
	"storefront/internal/platform/metrics"
	"storefront/pkg/platform/circuit"
	"storefront/pkg/requestcontext"
)

// CredentialHeader carries the bearer credential. The upstream does not use
// Authorization.
const CredentialHeader = "token"

const maxResponseBytes = 4 << 20

// Client talks to the upstream API.
type Client struct {
	baseURL       string
	http          *http.Client
	breaker       *circuit.Breaker
	retryAttempts int
	retryBackoff  time.Duration
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	propagator    propagation.TextMapPropagator
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer("storefront/internal/upstream") }
}

// New builds a client from cfg.
func New(cfg config.UpstreamConfig, opts ...Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = config.DefaultUpstreamBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:       base,
		http:          &http.Client{Timeout: timeout},
		retryAttempts: max(cfg.RetryAttempts, 0),
		retryBackoff:  cfg.RetryBackoff,
		logger:        slog.Default(),
		tracer:        otel.Tracer("storefront/internal/upstream"),
		propagator:    otel.GetTextMapPropagator(),
		breaker: circuit.New("upstream",
			circuit.WithFailureThreshold(cfg.BreakerThreshold),
			circuit.WithSuccessThreshold(1),
			circuit.WithCooldown(cfg.BreakerCooldown),
		),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// call describes one logical upstream operation.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// do runs cl with retries (idempotent methods only) behind the breaker and
// returns the raw success body.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "upstream."+cl.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", cl.method),
			attribute.String("url.path", cl.path),
		),
	)
	defer span.End()

	body, err := c.attempt(ctx, cl)

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	c.metrics.ObserveUpstream(cl.op, outcome, time.Since(start))
	return body, err
}

func (c *Client) attempt(ctx context.Context, cl call) ([]byte, error) {
	attempts := 1
	if idempotent(cl.method) {
		attempts += c.retryAttempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			c.metrics.IncUpstreamRetry(cl.op)
			if err := sleep(ctx, c.retryBackoff*time.Duration(i)); err != nil {
				break
			}
		}
		if !c.breaker.Allow() {
			return nil, &Error{Kind: NetworkFailure, Operation: cl.op, Err: ErrCircuitOpen}
		}

		body, err := c.once(ctx, cl)
		if err == nil {
			if _, change := c.breaker.RecordSuccess(); change.Closed {
				c.metrics.SetCircuitOpen(false)
				c.logger.InfoContext(ctx, "upstream circuit closed")
			}
			return body, nil
		}
		lastErr = err

		var ue *Error
		if !errors.As(err, &ue) || !ue.Retryable() {
			// The upstream answered; it is healthy even if it said no.
			c.breaker.RecordSuccess()
			return nil, err
		}
		if ctx.Err() != nil {
			// Caller went away; not the upstream's fault.
			break
		}
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.metrics.SetCircuitOpen(true)
			c.logger.WarnContext(ctx, "upstream circuit opened",
				"request_id", requestcontext.RequestID(ctx),
				"operation", cl.op,
			)
		}
	}

	c.logger.WarnContext(ctx, "upstream call failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", cl.op,
		"error", lastErr,
	)
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, cl call) ([]byte, error) {
	var reader io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", cl.op, err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set(CredentialHeader, cl.token)
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, Operation: cl.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, Operation: cl.op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{
			Kind:      kindForStatus(resp.StatusCode),
			Operation: cl.op,
			Status:    resp.StatusCode,
			Message:   errorMessage(body),
		}
	}
	return body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// decodeFailure wraps an undecodable success body as a server failure.
func decodeFailure(op string, err error) error {
	return &Error{Kind: ServerFailure, Operation: op, Message: "unexpected response shape", Err: err}
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(max(page, 1)))
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}
